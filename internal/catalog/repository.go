package catalog

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("vehicle not found")

// Repository defines read access to the vehicle catalog. The payment flow
// only ever needs GetBySlug; the listing endpoints use the rest.
type Repository interface {
	List() ([]Vehicle, error)
	ListByCategory(category string) ([]Vehicle, error)
	GetBySlug(slug string) (Vehicle, error)
	GetByID(id int) (Vehicle, error)
}

// InMemoryRepository serves a fixed set of vehicles. Used by tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	vehicles []Vehicle
}

func NewInMemoryRepository(seed []Vehicle) *InMemoryRepository {
	repo := &InMemoryRepository{vehicles: make([]Vehicle, len(seed))}
	copy(repo.vehicles, seed)
	return repo
}

func (r *InMemoryRepository) List() ([]Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Vehicle, len(r.vehicles))
	copy(out, r.vehicles)
	return out, nil
}

func (r *InMemoryRepository) ListByCategory(category string) ([]Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Vehicle, 0)
	for _, v := range r.vehicles {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(slug string) (Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.vehicles {
		if v.Slug == slug {
			return v, nil
		}
	}
	return Vehicle{}, ErrNotFound
}

func (r *InMemoryRepository) GetByID(id int) (Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return Vehicle{}, ErrNotFound
}
