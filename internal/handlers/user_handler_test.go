package handlers

import (
	"net/http"
	"testing"

	"github.com/gamehub/backend/internal/models"
)

func TestUpdateRole_ModeratorCannotGrantDeveloper(t *testing.T) {
	env := newTestEnv(t)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)
	env.seedUser(t, "target", "target", models.RoleUser)

	w := env.do(t, http.MethodPut, "/api/users/target/role", `{"role": "developer"}`, mod)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}

	target, err := env.users.Get("target")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if target.Role != models.RoleUser {
		t.Fatalf("expected role unchanged, got %s", target.Role)
	}
}

func TestUpdateRole_ModeratorCannotDemoteDeveloper(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin", "admin", models.RoleAdmin)
	env.seedUser(t, "dev", "dev", models.RoleDeveloper)

	w := env.do(t, http.MethodPut, "/api/users/dev/role", `{"role": "user"}`, admin)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateRole_ModeratorCanPromoteWithinBounds(t *testing.T) {
	env := newTestEnv(t)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)
	env.seedUser(t, "target", "target", models.RoleUser)

	w := env.do(t, http.MethodPut, "/api/users/target/role", `{"role": "moderator"}`, mod)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	target, err := env.users.Get("target")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if target.Role != models.RoleModerator {
		t.Fatalf("expected moderator, got %s", target.Role)
	}
	if n := env.notificationCount(t, "target"); n != 1 {
		t.Fatalf("expected role_change notification, got %d", n)
	}
}

func TestUpdateRole_DeveloperCanGrantDeveloper(t *testing.T) {
	env := newTestEnv(t)
	dev := env.seedUser(t, "dev", "dev", models.RoleDeveloper)
	env.seedUser(t, "target", "target", models.RoleUser)

	w := env.do(t, http.MethodPut, "/api/users/target/role", `{"role": "developer"}`, dev)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateRole_InvalidRole(t *testing.T) {
	env := newTestEnv(t)
	dev := env.seedUser(t, "dev", "dev", models.RoleDeveloper)
	env.seedUser(t, "target", "target", models.RoleUser)

	w := env.do(t, http.MethodPut, "/api/users/target/role", `{"role": "root"}`, dev)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBlacklist_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	mod := env.seedUser(t, "mod", "mod", models.RoleModerator)
	admin := env.seedUser(t, "admin", "admin", models.RoleAdmin)
	env.seedUser(t, "target", "target", models.RoleUser)

	if w := env.do(t, http.MethodPost, "/api/users/target/blacklist", `{"reason": "spam"}`, mod); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for moderator, got %d", w.Code)
	}

	if w := env.do(t, http.MethodPost, "/api/users/target/blacklist", `{"reason": "spam"}`, admin); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}

	target, err := env.users.Get("target")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !target.Blacklisted || target.BlacklistedBy != "admin" {
		t.Fatalf("blacklist not applied: %+v", target)
	}

	if w := env.do(t, http.MethodPost, "/api/users/target/unblacklist", "", admin); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	target, err = env.users.Get("target")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if target.Blacklisted {
		t.Fatal("expected blacklist cleared")
	}
}
