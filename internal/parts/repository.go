package parts

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("part not found")

type Repository interface {
	List() ([]Part, error)
	ListByCategory(category string) ([]Part, error)
	GetByID(id int) (Part, error)
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	parts []Part
}

func NewInMemoryRepository(seed []Part) *InMemoryRepository {
	return &InMemoryRepository{parts: append([]Part(nil), seed...)}
}

func (r *InMemoryRepository) List() ([]Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Part(nil), r.parts...), nil
}

func (r *InMemoryRepository) ListByCategory(category string) ([]Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Part, 0)
	for _, p := range r.parts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.parts {
		if p.ID == id {
			return p, nil
		}
	}
	return Part{}, ErrNotFound
}
