package order

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `"orderID", "userID", "vehicleID", "totalAmount", "cancellationFee", "paymentStatus", "orderStatus", "paymentMethod", "transactionID", "billingName", "billingEmail", "billingPhone", "billingAddress", "createdAt", "updatedAt"`

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	row := r.db.QueryRow(`INSERT INTO orders ("userID", "vehicleID", "totalAmount", "cancellationFee", "paymentStatus", "orderStatus", "paymentMethod", "billingName", "billingEmail", "billingPhone", "billingAddress", "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING `+orderColumns,
		ord.UserID, ord.VehicleID, ord.TotalAmount, ord.CancellationFee, ord.PaymentStatus, ord.OrderStatus, ord.PaymentMethod,
		ord.BillingName, ord.BillingEmail, ord.BillingPhone, ord.BillingAddress, now, now)
	return scanOrder(row)
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE "orderID" = $1`, id)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE "userID" = $1 ORDER BY "createdAt" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *PostgresRepository) ListRecent(limit int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders ORDER BY "orderID" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListByIDs returns the orders whose id appears in ids, in the same order.
func (r *PostgresRepository) ListByIDs(ids []int) ([]Order, error) {
	if len(ids) == 0 {
		return []Order{}, nil
	}
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders
		WHERE "orderID" = ANY($1::int[])
		ORDER BY array_position($1::int[], "orderID")`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *PostgresRepository) MarkPaymentCompleted(id int, transactionID string) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	row := r.db.QueryRow(`UPDATE orders
		SET "paymentStatus" = $2, "orderStatus" = $3, "transactionID" = $4, "updatedAt" = $5
		WHERE "orderID" = $1 AND "orderStatus" = 'pending'
		RETURNING `+orderColumns,
		id, PaymentCompleted, StatusProcessing, transactionID, now)
	return r.scanConditional(row, id)
}

func (r *PostgresRepository) MarkPaymentFailed(id int) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	row := r.db.QueryRow(`UPDATE orders
		SET "paymentStatus" = $2, "updatedAt" = $3
		WHERE "orderID" = $1 AND "orderStatus" = 'pending'
		RETURNING `+orderColumns,
		id, PaymentFailed, now)
	return r.scanConditional(row, id)
}

func (r *PostgresRepository) Cancel(id int, fee float64) (Order, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	row := r.db.QueryRow(`UPDATE orders
		SET "orderStatus" = $2, "cancellationFee" = $3, "updatedAt" = $4
		WHERE "orderID" = $1 AND "orderStatus" = 'pending'
		RETURNING `+orderColumns,
		id, StatusCancelled, fee, now)
	return r.scanConditional(row, id)
}

// scanConditional distinguishes a missing row from a row that was already
// in a terminal state when a conditional update matched nothing.
func (r *PostgresRepository) scanConditional(row rowScanner, id int) (Order, error) {
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		var exists int
		if checkErr := r.db.QueryRow(`SELECT 1 FROM orders WHERE "orderID" = $1`, id).Scan(&exists); checkErr == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, ErrConflict
	}
	return ord, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	err := row.Scan(&ord.ID, &ord.UserID, &ord.VehicleID, &ord.TotalAmount, &ord.CancellationFee,
		&ord.PaymentStatus, &ord.OrderStatus, &ord.PaymentMethod, &ord.TransactionID,
		&ord.BillingName, &ord.BillingEmail, &ord.BillingPhone, &ord.BillingAddress,
		&ord.CreatedAt, &ord.UpdatedAt)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func scanOrders(rows *sql.Rows) ([]Order, error) {
	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}
