package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Author is the person a post is attributed to.
type Author struct {
	Name      string `yaml:"name" json:"name" validate:"required"`
	Role      string `yaml:"role" json:"role" validate:"required"`
	AvatarURL string `yaml:"avatarUrl" json:"avatarUrl" validate:"required,url"`
}

// Post holds the read-only props a post component is rendered from.
type Post struct {
	Slug        string    `yaml:"slug" json:"slug" validate:"required"`
	Author      Author    `yaml:"author" json:"author"`
	PublishedAt time.Time `yaml:"publishedAt" json:"publishedAt" validate:"required"`
	Content     Fragments `yaml:"content" json:"content" validate:"required,min=1"`
}

// Instance is one mounted copy of a post component together with its
// private comment state.
type Instance struct {
	ID        string       `json:"id"`
	PostSlug  string       `json:"postSlug"`
	State     CommentState `json:"state"`
	MountedAt time.Time    `json:"mountedAt"`
}
