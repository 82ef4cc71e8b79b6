package handlers

import (
	"net/http"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/gamehub/backend/internal/models"
)

const validSubmitBody = `{
	"name": "Mon serveur",
	"inviteLink": "https://discord.gg/abc123",
	"description": "Un serveur communautaire francophone avec des events chaque semaine et un staff actif."
}`

func TestListApproved_FiltersByStatusOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedServerRecord(t, "approved", "u1", models.ServerApproved, false)
	env.seedServerRecord(t, "approved-suspended", "u1", models.ServerApproved, true)
	env.seedServerRecord(t, "pending", "u1", models.ServerPending, false)
	env.seedServerRecord(t, "rejected", "u1", models.ServerRejected, false)

	w := env.do(t, http.MethodGet, "/api/servers", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var servers []models.Server
	if err := json.Unmarshal(w.Body.Bytes(), &servers); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(servers) != 2 {
		t.Fatalf("expected the two approved servers (suspended included), got %d", len(servers))
	}
	for _, s := range servers {
		if s.Status != models.ServerApproved {
			t.Fatalf("non-approved server leaked into public listing: %+v", s)
		}
	}
}

func TestSubmit_DefaultsToPending(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.seedUser(t, "u1", "alice", models.RoleUser)

	w := env.do(t, http.MethodPost, "/api/servers", validSubmitBody, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var server models.Server
	if err := json.Unmarshal(w.Body.Bytes(), &server); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if server.Status != models.ServerPending {
		t.Fatalf("expected status pending, got %s", server.Status)
	}
	if server.Suspended {
		t.Fatal("expected new submission not suspended")
	}
	if server.Tags == nil {
		t.Fatal("expected tags to default to an empty list, got null")
	}
	if server.SubmittedBy != "u1" {
		t.Fatalf("expected submitter u1, got %s", server.SubmittedBy)
	}
}

func TestSubmit_BlacklistedUserRejectedBeforeWrite(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.seedUser(t, "u1", "alice", models.RoleUser)
	if _, err := env.users.SetBlacklisted("u1", true, "spam", "admin"); err != nil {
		t.Fatalf("SetBlacklisted() error: %v", err)
	}

	w := env.do(t, http.MethodPost, "/api/servers", validSubmitBody, cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "blacklisté") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}

	servers, err := env.servers.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(servers) != 0 {
		t.Fatalf("expected nothing written for blacklisted submitter, got %d servers", len(servers))
	}
}

func TestSubmit_InvalidPayload(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.seedUser(t, "u1", "alice", models.RoleUser)

	w := env.do(t, http.MethodPost, "/api/servers", `{"name": "x", "inviteLink": "https://discord.gg/x", "description": "court"}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestApprove_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "owner", models.RoleUser)
	cookie := env.seedUser(t, "mod", "mod", models.RoleModerator)
	env.seedServerRecord(t, "s1", "owner", models.ServerPending, false)

	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/api/servers/s1/approve", "", cookie)
		if w.Code != http.StatusOK {
			t.Fatalf("approve #%d: expected 200, got %d: %s", i+1, w.Code, w.Body.String())
		}
	}

	server, err := env.servers.Get("s1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if server.Status != models.ServerApproved {
		t.Fatalf("expected approved, got %s", server.Status)
	}
	// Each approval notifies the submitter again.
	if n := env.notificationCount(t, "owner"); n != 2 {
		t.Fatalf("expected 2 notifications, got %d", n)
	}
}

func TestSuspend_StampsReasonAndNotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "owner", models.RoleUser)
	cookie := env.seedUser(t, "mod", "mod", models.RoleModerator)
	env.seedServerRecord(t, "s1", "owner", models.ServerApproved, false)

	w := env.do(t, http.MethodPost, "/api/servers/s1/suspend", `{"reason": "spam"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	server, err := env.servers.Get("s1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !server.Suspended || server.SuspensionReason != "spam" || server.SuspendedBy != "mod" {
		t.Fatalf("suspension not stamped: %+v", server)
	}
	if server.Status != models.ServerApproved {
		t.Fatalf("suspension must not change status, got %s", server.Status)
	}
	if n := env.notificationCount(t, "owner"); n != 1 {
		t.Fatalf("expected 1 notification, got %d", n)
	}
}

func TestUpdate_OwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "owner", models.RoleUser)
	other := env.seedUser(t, "other", "other", models.RoleUser)
	env.seedServerRecord(t, "s1", "owner", models.ServerApproved, false)

	w := env.do(t, http.MethodPut, "/api/servers/s1", `{"name": "Nouveau nom"}`, other)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", w.Code)
	}

	server, err := env.servers.Get("s1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if server.Name == "Nouveau nom" {
		t.Fatal("expected server unchanged")
	}
}

func TestDelete_OwnerOrStaff(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", "owner", models.RoleUser)
	other := env.seedUser(t, "other", "other", models.RoleUser)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)
	env.seedServerRecord(t, "s1", "owner", models.ServerApproved, false)
	env.seedServerRecord(t, "s2", "owner", models.ServerApproved, false)

	if w := env.do(t, http.MethodDelete, "/api/servers/s1", "", other); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger, got %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/servers/s1", "", owner); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d", w.Code)
	}
	if w := env.do(t, http.MethodDelete, "/api/servers/s2", "", mod); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for moderator, got %d", w.Code)
	}
}

func TestSearch_RequiresStaff(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "u1", "alice", models.RoleUser)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)
	env.seedServerRecord(t, "s1", "u1", models.ServerApproved, true)

	if w := env.do(t, http.MethodGet, "/api/servers/admin/search?query=serveur", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 anonymous, got %d", w.Code)
	}
	if w := env.do(t, http.MethodGet, "/api/servers/admin/search?query=serveur", "", user); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for plain user, got %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/servers/admin/search?query=serveur&suspended=true", "", mod)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for moderator, got %d", w.Code)
	}
	var servers []models.Server
	if err := json.Unmarshal(w.Body.Bytes(), &servers); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(servers) != 1 || servers[0].ID != "s1" {
		t.Fatalf("unexpected search result: %+v", servers)
	}
}

func TestGetStats_CountsVisibleServersOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice", models.RoleUser)
	env.seedServerRecord(t, "visible", "u1", models.ServerApproved, false)
	env.seedServerRecord(t, "hidden", "u1", models.ServerApproved, true)
	env.seedServerRecord(t, "pending", "u1", models.ServerPending, false)

	w := env.do(t, http.MethodGet, "/api/servers/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var stats models.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if stats.TotalServers != 1 {
		t.Fatalf("expected 1 visible server, got %d", stats.TotalServers)
	}
	if stats.TotalUsers != 1 {
		t.Fatalf("expected 1 user, got %d", stats.TotalUsers)
	}
}
