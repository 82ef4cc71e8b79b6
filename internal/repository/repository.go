package repository

import "errors"

// ErrNotFound is returned when an id does not resolve to a record.
// Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a uniqueness constraint would be violated
// (e.g. a second favorite for the same server).
var ErrDuplicate = errors.New("record already exists")

// Collection file names.
const (
	UsersFile         = "users.json"
	ServersFile       = "servers.json"
	TicketsFile       = "tickets.json"
	RatingsFile       = "ratings.json"
	ReviewsFile       = "reviews.json"
	SanctionsFile     = "sanctions.json"
	AppealsFile       = "appeals.json"
	AnnouncementsFile = "announcements.json"
	NotificationsFile = "notifications.json"
	ActivityFile      = "activity.json"
	PartnersFile      = "partners.json"
	FavoritesFile     = "favorites.json"
	CategoriesFile    = "categories.json"
)
