package repositories

import "postfeed/app/models"

// PostRepository defines read access to the post catalog
type PostRepository interface {
	List() ([]*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
}

// InstanceRepository defines storage for mounted post instances
type InstanceRepository interface {
	Create(inst *models.Instance) error
	GetByID(id string) (*models.Instance, error)
	// Update loads the instance, applies fn and stores the result in one
	// transaction. An error from fn aborts the write.
	Update(id string, fn func(inst *models.Instance) error) (*models.Instance, error)
	Delete(id string) error
}
