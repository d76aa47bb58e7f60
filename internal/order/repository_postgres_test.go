package order

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"orderID", "userID", "vehicleID", "totalAmount", "cancellationFee",
		"paymentStatus", "orderStatus", "paymentMethod", "transactionID",
		"billingName", "billingEmail", "billingPhone", "billingAddress",
		"createdAt", "updatedAt",
	})
}

func TestMarkPaymentCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := orderRows().AddRow(
		42, 7, 1, 110000.0, 0.0,
		"completed", "processing", "cash", "CASH_0011223344556677",
		"Jamie Doe", "jamie@example.com", "555-0100", "1 Main St",
		"2026-08-01T00:00:00Z", "2026-08-01T00:00:05Z")
	mock.ExpectQuery("UPDATE orders").
		WithArgs(42, "completed", "processing", "CASH_0011223344556677", sqlmock.AnyArg()).
		WillReturnRows(rows)

	ord, err := repo.MarkPaymentCompleted(42, "CASH_0011223344556677")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.OrderStatus != StatusProcessing || ord.PaymentStatus != PaymentCompleted {
		t.Fatalf("unexpected state: %s/%s", ord.OrderStatus, ord.PaymentStatus)
	}
	if ord.TransactionID == nil || *ord.TransactionID != "CASH_0011223344556677" {
		t.Fatalf("transaction id not stored: %v", ord.TransactionID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// the conditional update matches nothing once another request already moved
// the order out of pending; that must surface as a conflict
func TestMarkPaymentCompleted_Conflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE orders").
		WithArgs(42, "completed", "processing", "CC_00112233445566778899aabb", sqlmock.AnyArg()).
		WillReturnRows(orderRows())
	mock.ExpectQuery("SELECT 1 FROM orders").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	_, err = repo.MarkPaymentCompleted(42, "CC_00112233445566778899aabb")
	if err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancel_MissingOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE orders").
		WithArgs(99, "cancelled", 500.0, sqlmock.AnyArg()).
		WillReturnRows(orderRows())
	mock.ExpectQuery("SELECT 1 FROM orders").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	_, err = repo.Cancel(99, 500.0)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancel_StoresFee(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := orderRows().AddRow(
		5, 7, 2, 2200.0, 500.0,
		"pending", "cancelled", "cash", nil,
		"Jamie Doe", "jamie@example.com", "555-0100", "1 Main St",
		"2026-08-01T00:00:00Z", "2026-08-01T00:01:00Z")
	mock.ExpectQuery("UPDATE orders").
		WithArgs(5, "cancelled", 500.0, sqlmock.AnyArg()).
		WillReturnRows(rows)

	ord, err := repo.Cancel(5, 500.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.OrderStatus != StatusCancelled || ord.CancellationFee != 500.0 {
		t.Fatalf("unexpected state: %s fee=%v", ord.OrderStatus, ord.CancellationFee)
	}
	if ord.TransactionID != nil {
		t.Fatalf("expected nil transaction id, got %v", *ord.TransactionID)
	}
}
