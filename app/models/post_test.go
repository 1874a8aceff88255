package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPost() *Post {
	return &Post{
		Slug: "design-system",
		Author: Author{
			Name:      "Diego Fernandes",
			Role:      "CTO @Rocketseat",
			AvatarURL: "https://github.com/diego3g.png",
		},
		PublishedAt: time.Date(2024, 1, 1, 14, 5, 0, 0, time.UTC),
		Content: Fragments{
			Paragraph{Content: "Fala galeraa 👋"},
			Link{Content: "jane.design/doctorcare"},
		},
	}
}

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Post)
		wantErr bool
	}{
		{
			name:    "valid post",
			mutate:  func(p *Post) {},
			wantErr: false,
		},
		{
			name:    "missing slug",
			mutate:  func(p *Post) { p.Slug = "" },
			wantErr: true,
		},
		{
			name:    "missing author name",
			mutate:  func(p *Post) { p.Author.Name = "" },
			wantErr: true,
		},
		{
			name:    "avatar is not a url",
			mutate:  func(p *Post) { p.Author.AvatarURL = "not a url" },
			wantErr: true,
		},
		{
			name:    "zero publication time",
			mutate:  func(p *Post) { p.PublishedAt = time.Time{} },
			wantErr: true,
		},
		{
			name:    "no content",
			mutate:  func(p *Post) { p.Content = nil },
			wantErr: true,
		},
		{
			name: "duplicate fragment text",
			mutate: func(p *Post) {
				p.Content = append(p.Content, Link{Content: "Fala galeraa 👋"})
			},
			wantErr: true,
		},
		{
			name: "unknown fragment kind is accepted",
			mutate: func(p *Post) {
				p.Content = append(p.Content, Unknown{Type: "image", Content: "cover.png"})
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := validPost()
			tt.mutate(post)
			err := post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
