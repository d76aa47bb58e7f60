package activity

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

type failingRepo struct{}

func (f *failingRepo) Append(rec Record) (Record, error) {
	return Record{}, errors.New("connection refused")
}

func (f *failingRepo) ListByUser(userID int, limit int) ([]Record, error) { return nil, nil }
func (f *failingRepo) ListRecent(limit int) ([]Record, error)             { return nil, nil }

func TestRecord_Appends(t *testing.T) {
	repo := NewInMemoryRepository()
	rec := NewRecorder(repo, zap.NewNop())

	rec.Record(7, TypePaymentSuccessful, "paid", map[string]any{"amount": 110000.0}, Origin{IP: "10.0.0.1", UserAgent: "test"})

	got, err := repo.ListByUser(7, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].ActivityType != TypePaymentSuccessful {
		t.Errorf("unexpected type %q", got[0].ActivityType)
	}
	if got[0].IPAddress != "10.0.0.1" {
		t.Errorf("unexpected ip %q", got[0].IPAddress)
	}
	if got[0].Metadata["amount"] != 110000.0 {
		t.Errorf("unexpected metadata %v", got[0].Metadata)
	}
	if got[0].CreatedAt == "" {
		t.Error("createdAt not set")
	}
}

// a storage failure must not reach the caller
func TestRecord_SwallowsStorageFailure(t *testing.T) {
	rec := NewRecorder(&failingRepo{}, zap.NewNop())
	rec.Record(1, TypeLogin, "logged in", nil, Origin{})
}

func TestListRecent_NewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	rec := NewRecorder(repo, zap.NewNop())
	rec.Record(1, TypeLogin, "first", nil, Origin{})
	rec.Record(2, TypeLogin, "second", nil, Origin{})

	got, err := repo.ListRecent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Description != "second" {
		t.Fatalf("unexpected order: %+v", got)
	}
}
