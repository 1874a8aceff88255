package services

import (
	"fmt"

	"postfeed/app/models"
	"postfeed/app/repositories"
)

// PostService exposes the post catalog
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// GetPost retrieves a post by slug
func (s *PostService) GetPost(slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", slug, err)
	}
	return post, nil
}

// ListPosts retrieves every post in catalog order
func (s *PostService) ListPosts() ([]*models.Post, error) {
	posts, err := s.postRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}
