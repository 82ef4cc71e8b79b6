// Command seed initializes the data directory with the default category
// set and, optionally, a bootstrap developer account taken from
// BOOTSTRAP_DISCORD_ID and BOOTSTRAP_USERNAME.
package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamehub/backend/config"
	"github.com/gamehub/backend/internal/models"
	"github.com/gamehub/backend/internal/repository"
	"github.com/gamehub/backend/internal/store"
)

var defaultCategories = []models.Category{
	{ID: "gaming", Name: "Gaming", Description: "Serveurs de jeux vidéo", Icon: "🎮"},
	{ID: "communaute", Name: "Communauté", Description: "Serveurs communautaires et sociaux", Icon: "💬"},
	{ID: "esport", Name: "Esport", Description: "Équipes et compétitions", Icon: "🏆"},
	{ID: "roleplay", Name: "Roleplay", Description: "Serveurs de jeu de rôle", Icon: "🎭"},
	{ID: "dev", Name: "Dev", Description: "Programmation et technologie", Icon: "💻"},
	{ID: "musique", Name: "Musique", Description: "Partage et création musicale", Icon: "🎵"},
	{ID: "autre", Name: "Autre", Description: "Tout le reste", Icon: "📦"},
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	st, err := store.New(cfg.Data.Dir)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize data store")
	}

	categoryRepo := repository.NewCategoryRepository(st)
	for _, cat := range defaultCategories {
		if err := categoryRepo.Create(&cat); err != nil {
			if err == repository.ErrDuplicate {
				continue
			}
			log.WithError(err).WithField("category", cat.ID).Fatal("Failed to seed category")
		}
		log.WithField("category", cat.ID).Info("Category created")
	}

	discordID := os.Getenv("BOOTSTRAP_DISCORD_ID")
	username := os.Getenv("BOOTSTRAP_USERNAME")
	if discordID == "" || username == "" {
		log.Info("No bootstrap developer configured, done")
		return
	}

	userRepo := repository.NewUserRepository(st)
	user, created, err := userRepo.UpsertLogin(&models.User{
		ID:        uuid.New().String(),
		DiscordID: discordID,
		Username:  username,
		LastLogin: time.Now().UTC(),
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create bootstrap user")
	}
	if _, err := userRepo.Update(user.ID, func(u *models.User) {
		u.Role = models.RoleDeveloper
	}); err != nil {
		log.WithError(err).Fatal("Failed to promote bootstrap user")
	}

	log.WithFields(logrus.Fields{
		"discordId": discordID,
		"created":   created,
	}).Info("Bootstrap developer ready")
}
