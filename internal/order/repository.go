package order

import (
	"sync"
	"time"
)

// Repository defines persistence operations for orders.
//
// The three mutating methods besides Create are compare-and-set style:
// they only apply while the order is still in the pending order status and
// return ErrConflict otherwise, so two concurrent terminal transitions can
// never both win.
type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListRecent(limit int) ([]Order, error)
	// ListByIDs returns the orders whose id appears in ids, in the same
	// order. An empty ids slice yields an empty result without a query.
	ListByIDs(ids []int) ([]Order, error)

	// MarkPaymentCompleted moves a pending order to completed/processing
	// and stores the transaction id.
	MarkPaymentCompleted(id int, transactionID string) (Order, error)
	// MarkPaymentFailed records a failed attempt. The order status stays
	// pending so the purchaser may retry.
	MarkPaymentFailed(id int) (Order, error)
	// Cancel moves a pending order to cancelled and stores the fee.
	Cancel(id int, fee float64) (Order, error)
}

// InMemoryRepository is the map-backed implementation used by tests. Its
// mutex provides the same per-order exclusivity the SQL implementation
// gets from conditional updates.
type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[int]Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{orders: make(map[int]Order), nextID: 1}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextID
	r.nextID++
	now := time.Now().UTC().Format(time.RFC3339)
	ord.CreatedAt = now
	ord.UpdatedAt = now
	r.orders[ord.ID] = ord
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for id := 1; id < r.nextID; id++ {
		if ord, ok := r.orders[id]; ok && ord.UserID == userID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListRecent(limit int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for id := r.nextID - 1; id >= 1 && len(out) < limit; id-- {
		if ord, ok := r.orders[id]; ok {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0, len(ids))
	for _, id := range ids {
		if ord, ok := r.orders[id]; ok {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) MarkPaymentCompleted(id int, transactionID string) (Order, error) {
	return r.mutatePending(id, func(ord *Order) {
		ord.PaymentStatus = PaymentCompleted
		ord.OrderStatus = StatusProcessing
		ord.TransactionID = &transactionID
	})
}

func (r *InMemoryRepository) MarkPaymentFailed(id int) (Order, error) {
	return r.mutatePending(id, func(ord *Order) {
		ord.PaymentStatus = PaymentFailed
	})
}

func (r *InMemoryRepository) Cancel(id int, fee float64) (Order, error) {
	return r.mutatePending(id, func(ord *Order) {
		ord.OrderStatus = StatusCancelled
		ord.CancellationFee = fee
	})
}

func (r *InMemoryRepository) mutatePending(id int, apply func(*Order)) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if ord.OrderStatus != StatusPending {
		return Order{}, ErrConflict
	}
	apply(&ord)
	ord.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.orders[id] = ord
	return ord, nil
}
