package finance

import (
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("finance application not found")
	ErrInvalidStatus = errors.New("invalid application status")
	ErrMissingFields = errors.New("missing required application fields")
)

type Repository interface {
	Create(app Application) (Application, error)
	GetByID(id int) (Application, error)
	ListByUser(userID int) ([]Application, error)
	ListAll() ([]Application, error)
	UpdateStatus(id int, status, updatedAt string) (Application, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	apps   []Application
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(app Application) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app.ID = r.nextID
	r.nextID++
	r.apps = append(r.apps, app)
	return app, nil
}

func (r *InMemoryRepository) GetByID(id int) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, app := range r.apps {
		if app.ID == id {
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Application, 0)
	for i := len(r.apps) - 1; i >= 0; i-- {
		if r.apps[i].UserID == userID {
			out = append(out, r.apps[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Application, 0, len(r.apps))
	for i := len(r.apps) - 1; i >= 0; i-- {
		out = append(out, r.apps[i])
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(id int, status, updatedAt string) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, app := range r.apps {
		if app.ID == id {
			app.Status = status
			app.UpdatedAt = updatedAt
			r.apps[i] = app
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}
