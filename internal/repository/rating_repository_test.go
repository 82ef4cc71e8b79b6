package repository

import (
	"testing"

	"github.com/gamehub/backend/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New() error: %v", err)
	}
	return s
}

func TestRatingRepository_UpsertCreatesThenUpdates(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))

	first, err := repo.Upsert("u1", "s1", 4)
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if first.Rating != 4 {
		t.Fatalf("expected rating 4, got %d", first.Rating)
	}

	second, err := repo.Upsert("u1", "s1", 2)
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same record updated in place, got new id %s", second.ID)
	}
	if second.Rating != 2 {
		t.Fatalf("expected rating 2, got %d", second.Rating)
	}

	ratings, err := repo.ListByServer("s1")
	if err != nil {
		t.Fatalf("ListByServer() error: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("expected exactly one rating per (user, server), got %d", len(ratings))
	}
}

func TestRatingRepository_AggregateForServer(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))

	if _, err := repo.Upsert("u1", "s1", 5); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if _, err := repo.Upsert("u2", "s1", 4); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if _, err := repo.Upsert("u3", "s1", 4); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if _, err := repo.Upsert("u1", "other", 1); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	avg, count, err := repo.AggregateForServer("s1")
	if err != nil {
		t.Fatalf("AggregateForServer() error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 ratings, got %d", count)
	}
	// 13/3 = 4.333..., rounded to one decimal
	if avg != 4.3 {
		t.Fatalf("expected average 4.3, got %v", avg)
	}
}

func TestRatingRepository_AggregateEmptyServer(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))

	avg, count, err := repo.AggregateForServer("s1")
	if err != nil {
		t.Fatalf("AggregateForServer() error: %v", err)
	}
	if avg != 0 || count != 0 {
		t.Fatalf("expected zero aggregate, got avg=%v count=%d", avg, count)
	}
}

func TestRatingRepository_UpsertKeepsCountStable(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))

	for _, v := range []int{1, 3, 5} {
		if _, err := repo.Upsert("u1", "s1", v); err != nil {
			t.Fatalf("Upsert() error: %v", err)
		}
	}

	avg, count, err := repo.AggregateForServer("s1")
	if err != nil {
		t.Fatalf("AggregateForServer() error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count to stay 1 across repeat upserts, got %d", count)
	}
	if avg != 5 {
		t.Fatalf("expected latest value 5, got %v", avg)
	}
}

func TestRatingRepository_DeleteChecksOwner(t *testing.T) {
	repo := NewRatingRepository(newTestStore(t))

	rating, err := repo.Upsert("u1", "s1", 3)
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	if _, err := repo.Delete(rating.ID, "someone-else"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign rating, got %v", err)
	}

	deleted, err := repo.Delete(rating.ID, "u1")
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if deleted.ID != rating.ID {
		t.Fatalf("expected deleted record %s, got %s", rating.ID, deleted.ID)
	}

	if _, err := repo.GetByUserAndServer("u1", "s1"); err != ErrNotFound {
		t.Fatalf("expected rating gone, got %v", err)
	}
}
