package api

import (
	"time"

	"github.com/rowanvale/strive/internal/db"
	"github.com/rowanvale/strive/internal/services"
	"gorm.io/gorm"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Handler struct {
	secretKey    []byte
	cronSecret   string
	environment  string
	location     *time.Location
	cookieSecure bool

	repositories     *db.Repositories
	authService      *services.AuthService
	activityService  *services.ActivityService
	progressService  *services.ProgressService
	challengeService *services.ChallengeService
	friendService    *services.FriendService
	settingsService  *services.SettingsService
	notificationJob  *services.NotificationJobService
}

type Config struct {
	SecretKey    string
	CronSecret   string
	Environment  string
	Location     *time.Location
	CookieSecure bool
}

func NewHandler(database *gorm.DB, config Config) *Handler {
	location := config.Location
	if location == nil {
		location = time.UTC
	}
	environment := config.Environment
	if environment == "" {
		environment = EnvProduction
	}

	handler := &Handler{
		secretKey:    []byte(config.SecretKey),
		cronSecret:   config.CronSecret,
		environment:  environment,
		location:     location,
		cookieSecure: config.CookieSecure,
	}

	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.activityService = services.NewActivityService(handler.repositories.Activities, location)
	handler.progressService = services.NewProgressService(database, location)
	handler.challengeService = services.NewChallengeService(handler.repositories.Challenges)
	handler.friendService = services.NewFriendService(
		handler.repositories.Friends,
		handler.repositories.Users,
		handler.repositories.Notifications,
	)
	handler.settingsService = services.NewSettingsService(handler.repositories.Users)
	handler.notificationJob = services.NewNotificationJobService(
		handler.repositories.Activities,
		handler.repositories.Users,
		handler.repositories.Notifications,
		handler.repositories.Events,
		location,
	)
	return handler
}

// NotificationJob exposes the job service for scheduler wiring in main.
func (handler *Handler) NotificationJob() *services.NotificationJobService {
	return handler.notificationJob
}
