package mock

import (
	"encoding/json"
	"sync"

	"postfeed/app/models"
	"postfeed/app/repositories"
)

type PostRepository struct {
	posts []*models.Post
	mutex sync.RWMutex
}

type InstanceRepository struct {
	instances map[string][]byte
	mutex     sync.Mutex
}

func NewPostRepository(posts ...*models.Post) *PostRepository {
	return &PostRepository{posts: posts}
}

func NewInstanceRepository() *InstanceRepository {
	return &InstanceRepository{
		instances: make(map[string][]byte),
	}
}

// PostRepository implementation
func (m *PostRepository) List() ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	out := make([]*models.Post, len(m.posts))
	copy(out, m.posts)
	return out, nil
}

func (m *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, post := range m.posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// InstanceRepository implementation. Instances are stored encoded so callers
// never share state with the store.
func (m *InstanceRepository) Create(inst *models.Instance) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	data, err := json.Marshal(inst)
	if err != nil {
		return err
	}
	m.instances[inst.ID] = data
	return nil
}

func (m *InstanceRepository) load(id string) (*models.Instance, error) {
	data, exists := m.instances[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	var inst models.Instance
	if err := json.Unmarshal(data, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

func (m *InstanceRepository) GetByID(id string) (*models.Instance, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.load(id)
}

func (m *InstanceRepository) Update(id string, fn func(inst *models.Instance) error) (*models.Instance, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	inst, err := m.load(id)
	if err != nil {
		return nil, err
	}
	if err := fn(inst); err != nil {
		return nil, err
	}
	data, err := json.Marshal(inst)
	if err != nil {
		return nil, err
	}
	m.instances[id] = data
	return inst, nil
}

func (m *InstanceRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.instances[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.instances, id)
	return nil
}
