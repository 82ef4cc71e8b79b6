package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/notify"
	"github.com/gamehub/backend/internal/repository"
	"github.com/gamehub/backend/internal/session"
	"github.com/gamehub/backend/internal/store"
)

const testCookie = "test_session"

// testEnv wires the full stack (store, repositories, notifier, session
// middleware, routes) against a temp directory, mirroring the production
// router layout.
type testEnv struct {
	router   *gin.Engine
	sessions *session.MemoryStore

	users         *repository.UserRepository
	servers       *repository.ServerRepository
	ratings       *repository.RatingRepository
	reviews       *repository.ReviewRepository
	tickets       *repository.TicketRepository
	sanctions     *repository.SanctionRepository
	appeals       *repository.AppealRepository
	notifications *repository.NotificationRepository
	activity      *repository.ActivityRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New() error: %v", err)
	}

	env := &testEnv{
		sessions:      session.NewMemoryStore(time.Hour),
		users:         repository.NewUserRepository(st),
		servers:       repository.NewServerRepository(st),
		ratings:       repository.NewRatingRepository(st),
		reviews:       repository.NewReviewRepository(st),
		tickets:       repository.NewTicketRepository(st),
		sanctions:     repository.NewSanctionRepository(st),
		appeals:       repository.NewAppealRepository(st),
		notifications: repository.NewNotificationRepository(st),
		activity:      repository.NewActivityRepository(st),
	}

	notifier := notify.NewService(env.notifications, env.activity, env.users, nil, log)

	serverHandler := NewServerHandler(env.servers, env.users, env.reviews, notifier, log)
	ratingHandler := NewRatingHandler(env.ratings, env.servers, log)
	reviewHandler := NewReviewHandler(env.reviews, env.servers, log)
	ticketHandler := NewTicketHandler(env.tickets, notifier, log)
	userHandler := NewUserHandler(env.users, notifier, log)
	moderationHandler := NewModerationHandler(env.sanctions, env.appeals, env.servers, env.users, notifier, log)

	router := gin.New()
	router.Use(middleware.SessionMiddleware(env.sessions, testCookie))

	api := router.Group("/api")
	{
		servers := api.Group("/servers")
		{
			servers.GET("", serverHandler.ListApproved)
			servers.GET("/stats", serverHandler.GetStats)
			servers.GET("/:id", serverHandler.GetServer)
			servers.POST("", middleware.RequireLogin(), serverHandler.Submit)
			servers.PUT("/:id", middleware.RequireLogin(), serverHandler.Update)
			servers.DELETE("/:id", middleware.RequireLogin(), serverHandler.Delete)
			servers.GET("/admin/pending", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.ListPending)
			servers.GET("/admin/search", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Search)
			servers.POST("/:id/approve", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Approve)
			servers.POST("/:id/reject", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Reject)
			servers.POST("/:id/suspend", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Suspend)
			servers.POST("/:id/unsuspend", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Unsuspend)
		}
		ratings := api.Group("/ratings")
		{
			ratings.POST("", middleware.RequireLogin(), ratingHandler.Submit)
			ratings.DELETE("/:id", middleware.RequireLogin(), ratingHandler.Delete)
			ratings.GET("/server/:serverId", ratingHandler.ListByServer)
		}
		reviews := api.Group("/reviews")
		{
			reviews.POST("", middleware.RequireLogin(), reviewHandler.Create)
			reviews.DELETE("/:id", middleware.RequireLogin(), reviewHandler.Delete)
		}
		tickets := api.Group("/tickets", middleware.RequireLogin())
		{
			tickets.GET("", ticketHandler.ListMine)
			tickets.POST("", ticketHandler.Create)
			tickets.GET("/:id", ticketHandler.Get)
			tickets.POST("/:id/responses", ticketHandler.Respond)
			tickets.PATCH("/:id", middleware.RequireRoleAtLeast(models.RoleModerator), ticketHandler.Patch)
			tickets.DELETE("/:id", middleware.RequireRoleAtLeast(models.RoleModerator), ticketHandler.Delete)
		}
		users := api.Group("/users")
		{
			users.PUT("/:id/role", middleware.RequireRoleAtLeast(models.RoleModerator), userHandler.UpdateRole)
			users.POST("/:id/blacklist", middleware.RequireRoleAtLeast(models.RoleAdmin), userHandler.Blacklist)
			users.POST("/:id/unblacklist", middleware.RequireRoleAtLeast(models.RoleAdmin), userHandler.Unblacklist)
		}
		moderation := api.Group("/moderation")
		{
			moderation.POST("/appeals", middleware.RequireLogin(), moderationHandler.CreateAppeal)
			moderation.GET("/appeals/server/:serverId", middleware.RequireLogin(), moderationHandler.GetServerAppeal)
			moderation.PUT("/appeals/:id", middleware.RequireRoleAtLeast(models.RoleAdmin), moderationHandler.DecideAppeal)
			moderation.POST("/sanctions", middleware.RequireRoleAtLeast(models.RoleAdmin), moderationHandler.ApplySanction)
		}
	}

	env.router = router
	return env
}

// seedUser stores a user record and returns a session cookie for it.
func (env *testEnv) seedUser(t *testing.T, id, username string, role models.Role) *http.Cookie {
	t.Helper()

	if _, _, err := env.users.UpsertLogin(&models.User{ID: id, DiscordID: id, Username: username}); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	if role != models.RoleUser {
		if _, err := env.users.Update(id, func(u *models.User) { u.Role = role }); err != nil {
			t.Fatalf("seed role %s: %v", id, err)
		}
	}

	token, err := env.sessions.Create(models.SessionUser{ID: id, Username: username, Role: role})
	if err != nil {
		t.Fatalf("seed session %s: %v", id, err)
	}
	return &http.Cookie{Name: testCookie, Value: token}
}

func (env *testEnv) do(t *testing.T, method, path string, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) seedServerRecord(t *testing.T, id, owner string, status models.ServerStatus, suspended bool) {
	t.Helper()
	if err := env.servers.Create(&models.Server{
		ID:          id,
		SubmittedBy: owner,
		Name:        "Serveur " + id,
		InviteLink:  "https://discord.gg/" + id,
		Description: "Un serveur communautaire francophone avec des events chaque semaine et un staff actif.",
		Status:      status,
		Suspended:   suspended,
		Tags:        []string{},
		SubmittedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed server %s: %v", id, err)
	}
}

func (env *testEnv) notificationCount(t *testing.T, userID string) int {
	t.Helper()
	notifications, err := env.notifications.ListByUser(userID)
	if err != nil {
		t.Fatalf("list notifications for %s: %v", userID, err)
	}
	return len(notifications)
}
