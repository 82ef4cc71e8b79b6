package repository

import (
	"testing"
	"time"

	"github.com/gamehub/backend/internal/models"
)

func seedServer(t *testing.T, repo *ServerRepository, id, name string, status models.ServerStatus, suspended bool) {
	t.Helper()
	if err := repo.Create(&models.Server{
		ID:          id,
		Name:        name,
		InviteLink:  "https://discord.gg/" + id,
		Status:      status,
		Suspended:   suspended,
		Tags:        []string{},
		SubmittedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
}

func TestServerRepository_ListByStatus(t *testing.T) {
	repo := NewServerRepository(newTestStore(t))
	seedServer(t, repo, "a", "Alpha", models.ServerApproved, false)
	seedServer(t, repo, "b", "Beta", models.ServerPending, false)
	seedServer(t, repo, "c", "Gamma", models.ServerApproved, true)

	approved, err := repo.ListByStatus(models.ServerApproved)
	if err != nil {
		t.Fatalf("ListByStatus() error: %v", err)
	}
	if len(approved) != 2 {
		t.Fatalf("expected 2 approved servers (suspension does not filter), got %d", len(approved))
	}
}

func TestServerRepository_SetStatusIdempotent(t *testing.T) {
	repo := NewServerRepository(newTestStore(t))
	seedServer(t, repo, "a", "Alpha", models.ServerPending, false)

	if _, err := repo.SetStatus("a", models.ServerApproved); err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}
	server, err := repo.SetStatus("a", models.ServerApproved)
	if err != nil {
		t.Fatalf("expected repeat SetStatus to succeed, got %v", err)
	}
	if server.Status != models.ServerApproved {
		t.Fatalf("expected status approved, got %s", server.Status)
	}
}

func TestServerRepository_SuspendAndUnsuspend(t *testing.T) {
	repo := NewServerRepository(newTestStore(t))
	seedServer(t, repo, "a", "Alpha", models.ServerApproved, false)

	server, err := repo.Suspend("a", "spam", "mod")
	if err != nil {
		t.Fatalf("Suspend() error: %v", err)
	}
	if !server.Suspended || server.SuspensionReason != "spam" || server.SuspendedBy != "mod" || server.SuspendedAt == nil {
		t.Fatalf("suspension fields not stamped: %+v", server)
	}
	if server.Status != models.ServerApproved {
		t.Fatalf("suspension must not change review status, got %s", server.Status)
	}

	server, err = repo.Unsuspend("a")
	if err != nil {
		t.Fatalf("Unsuspend() error: %v", err)
	}
	if server.Suspended || server.SuspensionReason != "" || server.SuspendedBy != "" || server.SuspendedAt != nil {
		t.Fatalf("suspension fields not cleared: %+v", server)
	}
}

func TestServerRepository_Search(t *testing.T) {
	repo := NewServerRepository(newTestStore(t))
	seedServer(t, repo, "a", "Gaming FR", models.ServerApproved, false)
	seedServer(t, repo, "b", "Gaming EN", models.ServerApproved, true)
	seedServer(t, repo, "c", "Musique", models.ServerApproved, false)

	results, err := repo.Search("gaming", nil)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}

	suspended := true
	results, err = repo.Search("gaming", &suspended)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "b" {
		t.Fatalf("expected only the suspended match, got %+v", results)
	}
}

func TestServerRepository_DeleteMissing(t *testing.T) {
	repo := NewServerRepository(newTestStore(t))
	seedServer(t, repo, "a", "Alpha", models.ServerApproved, false)

	if err := repo.Delete("a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := repo.Delete("a"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServerRepository_SetRatingStats(t *testing.T) {
	repo := NewServerRepository(newTestStore(t))
	seedServer(t, repo, "a", "Alpha", models.ServerApproved, false)

	server, err := repo.SetRatingStats("a", 4.3, 3)
	if err != nil {
		t.Fatalf("SetRatingStats() error: %v", err)
	}
	if server.AverageRating != 4.3 || server.TotalRatings != 3 {
		t.Fatalf("unexpected aggregate: %+v", server)
	}
}
