package activity

import "sync"

// Repository defines persistence for audit records.
type Repository interface {
	Append(rec Record) (Record, error)
	ListByUser(userID int, limit int) ([]Record, error)
	ListRecent(limit int) ([]Record, error)
}

// InMemoryRepository keeps records in a slice, newest last. It backs tests
// and the in-memory wiring.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []Record
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Append(rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	r.nextID++
	r.records = append(r.records, rec)
	return rec, nil
}

func (r *InMemoryRepository) ListByUser(userID int, limit int) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListRecent(limit int) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
