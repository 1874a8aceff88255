package repositories

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"postfeed/app/models"

	"gopkg.in/yaml.v3"
)

//go:embed seed/posts.yaml
var seedCatalog []byte

type catalogFile struct {
	Posts []*models.Post `yaml:"posts"`
}

// CatalogPostRepository implements PostRepository over a read-only catalog
// decoded from YAML. Posts keep catalog order.
type CatalogPostRepository struct {
	posts  []*models.Post
	bySlug map[string]*models.Post
}

// LoadCatalog decodes and validates a YAML post catalog.
func LoadCatalog(r io.Reader) (*CatalogPostRepository, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode post catalog: %w", err)
	}

	repo := &CatalogPostRepository{
		posts:  make([]*models.Post, 0, len(file.Posts)),
		bySlug: make(map[string]*models.Post, len(file.Posts)),
	}
	for i, post := range file.Posts {
		if post == nil {
			return nil, fmt.Errorf("post %d is empty", i)
		}
		if err := post.Validate(); err != nil {
			return nil, fmt.Errorf("invalid post %d (%s): %w", i, post.Slug, err)
		}
		if _, dup := repo.bySlug[post.Slug]; dup {
			return nil, fmt.Errorf("duplicate post slug %q", post.Slug)
		}
		repo.bySlug[post.Slug] = post
		repo.posts = append(repo.posts, post)
	}
	return repo, nil
}

// LoadCatalogFile loads the catalog at path, or the built-in catalog when
// path is empty.
func LoadCatalogFile(path string) (*CatalogPostRepository, error) {
	if path == "" {
		return LoadCatalog(bytes.NewReader(seedCatalog))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open post catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// List returns every post in catalog order
func (r *CatalogPostRepository) List() ([]*models.Post, error) {
	out := make([]*models.Post, len(r.posts))
	copy(out, r.posts)
	return out, nil
}

// GetBySlug retrieves a post by slug
func (r *CatalogPostRepository) GetBySlug(slug string) (*models.Post, error) {
	post, ok := r.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return post, nil
}
