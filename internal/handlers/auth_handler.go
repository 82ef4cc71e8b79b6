package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/internal/auth"
	"github.com/gamehub/backend/internal/middleware"
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/notify"
	"github.com/gamehub/backend/internal/repository"
	"github.com/gamehub/backend/internal/session"
)

type AuthHandler struct {
	userRepo     *repository.UserRepository
	discord      *auth.DiscordProvider
	stateService *auth.StateService
	sessions     session.Store
	notifier     *notify.Service
	cookieName   string
	cookieMaxAge int
	secureCookie bool
	log          *logrus.Logger
}

func NewAuthHandler(
	userRepo *repository.UserRepository,
	discord *auth.DiscordProvider,
	stateService *auth.StateService,
	sessions session.Store,
	notifier *notify.Service,
	cookieName string,
	cookieMaxAge int,
	secureCookie bool,
	log *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		discord:      discord,
		stateService: stateService,
		sessions:     sessions,
		notifier:     notifier,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
		log:          log,
	}
}

// DiscordLogin redirects to Discord's authorize page with a signed state.
func (h *AuthHandler) DiscordLogin(c *gin.Context) {
	state, err := h.stateService.Generate()
	if err != nil {
		h.log.WithError(err).Error("failed to generate OAuth state")
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Redirect(http.StatusFound, h.discord.AuthURL(state))
}

// DiscordCallback completes the OAuth round trip: validates state, trades
// the code for an identity, upserts the user record, and establishes the
// session. Every successful login refreshes lastLogin and appends one
// activity and one notification.
func (h *AuthHandler) DiscordCallback(c *gin.Context) {
	if err := h.stateService.Validate(c.Query("state")); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	code := c.Query("code")
	if code == "" {
		ErrorResponse(c, http.StatusBadRequest, "Missing authorization code")
		return
	}

	accessToken, err := h.discord.Exchange(code)
	if err != nil {
		h.log.WithError(err).Error("OAuth code exchange failed")
		c.Redirect(http.StatusFound, "/login.html")
		return
	}
	profile, err := h.discord.FetchUser(accessToken)
	if err != nil {
		h.log.WithError(err).Error("failed to fetch Discord identity")
		c.Redirect(http.StatusFound, "/login.html")
		return
	}

	login := &models.User{
		ID:         profile.ID,
		DiscordID:  profile.ID,
		Username:   profile.Username,
		GlobalName: profile.GlobalName,
		Email:      profile.Email,
		Avatar:     profile.Avatar,
		Banner:     profile.Banner,
	}
	user, created, err := h.userRepo.UpsertLogin(login)
	if err != nil {
		h.log.WithError(err).Error("failed to upsert user on login")
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.sessions.Create(models.SessionUser{
		ID:       user.ID,
		Username: user.DisplayName(),
		Role:     user.Role,
	})
	if err != nil {
		h.log.WithError(err).Error("failed to create session")
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, h.cookieMaxAge, "/", "", h.secureCookie, true)

	h.notifier.Record(user.ID, "login", "Connexion", "Connexion réussie depuis le navigateur")
	h.notifier.Notify(user.ID, "login", "Connexion réussie", "Connexion réussie depuis le navigateur")

	h.log.WithFields(logrus.Fields{"userId": user.ID, "created": created}).Info("user logged in")
	c.Redirect(http.StatusFound, "/profile.html")
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil && token != "" {
		if err := h.sessions.Delete(token); err != nil {
			h.log.WithError(err).Warn("failed to delete session")
		}
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMe returns the full record of the session user.
func (h *AuthHandler) GetMe(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)
	user, err := h.userRepo.Get(sessionUser.ID)
	if err != nil {
		RepoError(c, h.log, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe updates the session user's own profile settings.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	sessionUser, _ := middleware.CurrentUser(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userRepo.Update(sessionUser.ID, func(u *models.User) {
		if req.GlobalName != nil {
			u.GlobalName = *req.GlobalName
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.EmailNotifications != nil {
			u.EmailNotifications = req.EmailNotifications
		}
	})
	if err != nil {
		RepoError(c, h.log, err, "User not found")
		return
	}

	h.notifier.Record(user.ID, "profile_update", "Mise à jour du profil", "Vous avez mis à jour vos paramètres de profil")
	c.JSON(http.StatusOK, user)
}
