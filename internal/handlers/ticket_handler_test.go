package handlers

import (
	"net/http"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/gamehub/backend/internal/models"
)

func createTicket(t *testing.T, env *testEnv, cookie *http.Cookie) models.Ticket {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/tickets", `{"subject": "Aide", "message": "Mon serveur n'apparaît pas"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var ticket models.Ticket
	if err := json.Unmarshal(w.Body.Bytes(), &ticket); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	return ticket
}

func TestTicketCreate_Defaults(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice", models.RoleUser)

	ticket := createTicket(t, env, alice)
	if ticket.Status != models.TicketOpen {
		t.Fatalf("expected open, got %s", ticket.Status)
	}
	if ticket.Priority != models.PriorityNormal {
		t.Fatalf("expected default priority normal, got %s", ticket.Priority)
	}
	if ticket.Responses == nil {
		t.Fatal("expected responses to default to an empty list")
	}
}

func TestTicketGet_OwnerOrStaff(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice", models.RoleUser)
	other := env.seedUser(t, "u2", "bob", models.RoleUser)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)

	ticket := createTicket(t, env, alice)

	if w := env.do(t, http.MethodGet, "/api/tickets/"+ticket.ID, "", other); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/tickets/"+ticket.ID, "", alice); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/tickets/"+ticket.ID, "", mod); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff, got %d", w.Code)
	}
}

func TestTicketPatch_StatusChangeNotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice", models.RoleUser)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)

	ticket := createTicket(t, env, alice)
	before := env.notificationCount(t, "u1")

	w := env.do(t, http.MethodPatch, "/api/tickets/"+ticket.ID, `{"status": "resolved"}`, mod)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if n := env.notificationCount(t, "u1") - before; n != 1 {
		t.Fatalf("expected 1 status notification, got %d", n)
	}

	// Same status again: no change, no notification.
	w = env.do(t, http.MethodPatch, "/api/tickets/"+ticket.ID, `{"status": "resolved"}`, mod)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if n := env.notificationCount(t, "u1") - before; n != 1 {
		t.Fatalf("expected no extra notification for a no-op status, got %d", n)
	}
}

func TestTicketPatch_InvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice", models.RoleUser)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)

	ticket := createTicket(t, env, alice)

	w := env.do(t, http.MethodPatch, "/api/tickets/"+ticket.ID, `{"status": "done"}`, mod)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTicketDelete_ExactlyOneOr404(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice", models.RoleUser)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)

	first := createTicket(t, env, alice)
	second := createTicket(t, env, alice)

	if w := env.do(t, http.MethodDelete, "/api/tickets/"+first.ID, "", mod); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/tickets/"+first.ID, "", mod); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}

	tickets, err := env.tickets.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(tickets) != 1 || tickets[0].ID != second.ID {
		t.Fatalf("expected only the second ticket left, got %+v", tickets)
	}
}

func TestTicketRespond_FlagsStaffMessages(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice", models.RoleUser)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)

	ticket := createTicket(t, env, alice)
	before := env.notificationCount(t, "u1")

	w := env.do(t, http.MethodPost, "/api/tickets/"+ticket.ID+"/responses", `{"message": "On regarde"}`, mod)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Ticket
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(updated.Responses) != 1 || !updated.Responses[0].IsAdmin {
		t.Fatalf("expected one staff-flagged response, got %+v", updated.Responses)
	}
	if n := env.notificationCount(t, "u1") - before; n != 1 {
		t.Fatalf("expected the owner to be notified once, got %d", n)
	}
}
