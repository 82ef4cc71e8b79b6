package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/config"
	"github.com/gamehub/backend/internal/auth"
	"github.com/gamehub/backend/internal/handlers"
	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/notify"
	"github.com/gamehub/backend/internal/repository"
	"github.com/gamehub/backend/internal/session"
	"github.com/gamehub/backend/internal/store"
	"github.com/gamehub/backend/internal/websocket"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	st, err := store.New(cfg.Data.Dir)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize data store")
	}
	if err := os.MkdirAll(cfg.Data.UploadDir, 0o755); err != nil {
		log.WithError(err).Fatal("Failed to create upload directory")
	}

	// Repositories
	userRepo := repository.NewUserRepository(st)
	serverRepo := repository.NewServerRepository(st)
	ratingRepo := repository.NewRatingRepository(st)
	reviewRepo := repository.NewReviewRepository(st)
	ticketRepo := repository.NewTicketRepository(st)
	sanctionRepo := repository.NewSanctionRepository(st)
	appealRepo := repository.NewAppealRepository(st)
	notificationRepo := repository.NewNotificationRepository(st)
	activityRepo := repository.NewActivityRepository(st)
	announcementRepo := repository.NewAnnouncementRepository(st)
	partnerRepo := repository.NewPartnerRepository(st)
	categoryRepo := repository.NewCategoryRepository(st)
	favoriteRepo := repository.NewFavoriteRepository(st)

	sessionTTL := time.Duration(cfg.Session.ExpiryHours) * time.Hour

	// Sessions and notification fan-out share the Redis connection. The
	// server stays up without Redis: sessions fall back to memory and
	// notifications are pushed straight to the local hub.
	var sessions session.Store
	var redisStore *session.RedisStore
	if redisStore, err = session.NewRedisStore(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB, sessionTTL); err != nil {
		log.WithError(err).Warn("Redis unavailable, using in-memory sessions")
		memStore := session.NewMemoryStore(sessionTTL)
		memStore.Cleanup()
		sessions = memStore
		redisStore = nil
	} else {
		sessions = redisStore
	}

	var hub *websocket.Hub
	var pusher notify.Pusher
	if redisStore != nil {
		hub = websocket.NewHub(redisStore.Client(), log)
		pusher = notify.NewRedisPublisher(redisStore.Client(), log)
	} else {
		hub = websocket.NewHub(nil, log)
		pusher = hub
	}
	go hub.Run()

	notifier := notify.NewService(notificationRepo, activityRepo, userRepo, pusher, log)

	// Auth plumbing
	discord := auth.NewDiscordProvider(cfg.Discord.ClientID, cfg.Discord.ClientSecret, cfg.Discord.RedirectURL)
	stateService := auth.NewStateService(cfg.Session.Secret, 10)
	secureCookie := cfg.Server.Env == "production"

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, discord, stateService, sessions, notifier,
		cfg.Session.CookieName, int(sessionTTL.Seconds()), secureCookie, log)
	serverHandler := handlers.NewServerHandler(serverRepo, userRepo, reviewRepo, notifier, log)
	ratingHandler := handlers.NewRatingHandler(ratingRepo, serverRepo, log)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, serverRepo, log)
	ticketHandler := handlers.NewTicketHandler(ticketRepo, notifier, log)
	userHandler := handlers.NewUserHandler(userRepo, notifier, log)
	moderationHandler := handlers.NewModerationHandler(sanctionRepo, appealRepo, serverRepo, userRepo, notifier, log)
	announcementHandler := handlers.NewAnnouncementHandler(announcementRepo, log)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, activityRepo, log)
	partnerHandler := handlers.NewPartnerHandler(partnerRepo, log)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, log)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, serverRepo, log)
	uploadHandler := handlers.NewUploadHandler(cfg.Data.UploadDir, log)
	wsHandler := websocket.NewHandler(hub, cfg.CORS.AllowedOrigins)

	rateLimiter := middleware.NewRateLimiter(cfg.API.RateLimitWritesPerSec)
	rateLimiter.Cleanup()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.SessionMiddleware(sessions, cfg.Session.CookieName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/ws", wsHandler.HandleWebSocket)
	router.Static("/uploads", cfg.Data.UploadDir)
	if cfg.Data.StaticDir != "" {
		router.Static("/static", cfg.Data.StaticDir)
	}

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.GET("/discord", authHandler.DiscordLogin)
			authGroup.GET("/discord/callback", authHandler.DiscordCallback)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", middleware.RequireLogin(), authHandler.GetMe)
			authGroup.PUT("/me", middleware.RequireLogin(), authHandler.UpdateMe)
		}

		servers := api.Group("/servers")
		{
			servers.GET("", serverHandler.ListApproved)
			servers.GET("/stats", serverHandler.GetStats)
			servers.GET("/:id", serverHandler.GetServer)
			servers.POST("", middleware.RequireLogin(), middleware.RateLimitMiddleware(rateLimiter), serverHandler.Submit)
			servers.PUT("/:id", middleware.RequireLogin(), serverHandler.Update)
			servers.DELETE("/:id", middleware.RequireLogin(), serverHandler.Delete)

			servers.GET("/admin/pending", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.ListPending)
			servers.GET("/admin/search", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Search)
			servers.PUT("/admin/:id", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.AdminUpdate)
			servers.POST("/:id/approve", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Approve)
			servers.POST("/:id/reject", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Reject)
			servers.POST("/:id/suspend", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Suspend)
			servers.POST("/:id/unsuspend", middleware.RequireRoleAtLeast(models.RoleModerator), serverHandler.Unsuspend)
		}

		ratings := api.Group("/ratings")
		{
			ratings.GET("", ratingHandler.List)
			ratings.GET("/server/:serverId", ratingHandler.ListByServer)
			ratings.GET("/user/:userId/server/:serverId", ratingHandler.GetUserRating)
			ratings.POST("", middleware.RequireLogin(), middleware.RateLimitMiddleware(rateLimiter), ratingHandler.Submit)
			ratings.DELETE("/:id", middleware.RequireLogin(), ratingHandler.Delete)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", reviewHandler.List)
			reviews.GET("/server/:serverId", reviewHandler.ListByServer)
			reviews.POST("", middleware.RequireLogin(), middleware.RateLimitMiddleware(rateLimiter), reviewHandler.Create)
			reviews.DELETE("/:id", middleware.RequireLogin(), reviewHandler.Delete)
		}

		tickets := api.Group("/tickets", middleware.RequireLogin())
		{
			tickets.GET("", ticketHandler.ListMine)
			tickets.POST("", middleware.RateLimitMiddleware(rateLimiter), ticketHandler.Create)
			tickets.GET("/admin/all", middleware.RequireRoleAtLeast(models.RoleModerator), ticketHandler.ListAll)
			tickets.GET("/:id", ticketHandler.Get)
			tickets.POST("/:id/responses", ticketHandler.Respond)
			tickets.PATCH("/:id", middleware.RequireRoleAtLeast(models.RoleModerator), ticketHandler.Patch)
			tickets.DELETE("/:id", middleware.RequireRoleAtLeast(models.RoleModerator), ticketHandler.Delete)
		}

		users := api.Group("/users")
		{
			users.GET("", middleware.RequireRoleAtLeast(models.RoleDeveloper), userHandler.List)
			users.PUT("/:id/role", middleware.RequireRoleAtLeast(models.RoleModerator), userHandler.UpdateRole)
			users.POST("/:id/blacklist", middleware.RequireRoleAtLeast(models.RoleAdmin), userHandler.Blacklist)
			users.POST("/:id/unblacklist", middleware.RequireRoleAtLeast(models.RoleAdmin), userHandler.Unblacklist)
		}

		moderation := api.Group("/moderation")
		{
			moderation.GET("/user-role/:userId", middleware.RequireRoleAtLeast(models.RoleModerator), moderationHandler.GetUserRole)
			moderation.GET("/blacklist", middleware.RequireRoleAtLeast(models.RoleAdmin), moderationHandler.ListBlacklisted)

			moderation.POST("/sanctions", middleware.RequireRoleAtLeast(models.RoleAdmin), moderationHandler.ApplySanction)
			moderation.GET("/sanctions", middleware.RequireRoleAtLeast(models.RoleModerator), moderationHandler.ListSanctions)
			moderation.GET("/sanctions/:userId", middleware.RequireRoleAtLeast(models.RoleModerator), moderationHandler.ListUserSanctions)
			moderation.DELETE("/sanctions/:id", middleware.RequireRoleAtLeast(models.RoleAdmin), moderationHandler.DeleteSanction)

			moderation.POST("/appeals", middleware.RequireLogin(), middleware.RateLimitMiddleware(rateLimiter), moderationHandler.CreateAppeal)
			moderation.GET("/appeals", middleware.RequireRoleAtLeast(models.RoleModerator), moderationHandler.ListAppeals)
			moderation.GET("/appeals/user/:userId", middleware.RequireLogin(), moderationHandler.ListUserAppeals)
			moderation.GET("/appeals/server/:serverId", middleware.RequireLogin(), moderationHandler.GetServerAppeal)
			moderation.PUT("/appeals/:id", middleware.RequireRoleAtLeast(models.RoleAdmin), moderationHandler.DecideAppeal)
		}

		announcements := api.Group("/announcements")
		{
			announcements.GET("", announcementHandler.ListActive)
			announcements.GET("/all", middleware.RequireRoleAtLeast(models.RoleDeveloper), announcementHandler.ListAll)
			announcements.POST("", middleware.RequireRoleAtLeast(models.RoleDeveloper), announcementHandler.Create)
			announcements.PUT("/:id", middleware.RequireRoleAtLeast(models.RoleDeveloper), announcementHandler.Update)
			announcements.DELETE("/:id", middleware.RequireRoleAtLeast(models.RoleDeveloper), announcementHandler.Delete)
		}

		notifications := api.Group("/notifications", middleware.RequireLogin())
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
			notifications.POST("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		api.GET("/activity", middleware.RequireLogin(), notificationHandler.ListActivity)

		partners := api.Group("/partners")
		{
			partners.GET("", partnerHandler.List)
			partners.POST("", middleware.RequireRoleAtLeast(models.RoleDeveloper), partnerHandler.Create)
			partners.PUT("/:id", middleware.RequireRoleAtLeast(models.RoleDeveloper), partnerHandler.Update)
			partners.DELETE("/:id", middleware.RequireRoleAtLeast(models.RoleDeveloper), partnerHandler.Delete)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.GET("/:id", categoryHandler.Get)
			categories.POST("", middleware.RequireRoleAtLeast(models.RoleAdmin), categoryHandler.Create)
			categories.PUT("/:id", middleware.RequireRoleAtLeast(models.RoleAdmin), categoryHandler.Update)
			categories.DELETE("/:id", middleware.RequireRoleAtLeast(models.RoleDeveloper), categoryHandler.Delete)
		}

		favorites := api.Group("/favorites", middleware.RequireLogin())
		{
			favorites.GET("", favoriteHandler.List)
			favorites.POST("", favoriteHandler.Add)
			favorites.DELETE("/:serverId", favoriteHandler.Remove)
			favorites.GET("/check/:serverId", favoriteHandler.Check)
		}

		api.POST("/uploads", middleware.RequireLogin(), middleware.RateLimitMiddleware(rateLimiter), uploadHandler.Upload)
		api.GET("/ws/online", middleware.RequireRoleAtLeast(models.RoleModerator), wsHandler.GetOnlineUsers)
	}

	log.WithField("port", cfg.Server.Port).Info("Server starting")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
