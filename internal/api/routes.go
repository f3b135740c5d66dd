package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/me", handler.AuthRequired, handler.Me)

	activities := api.Group("/activities", handler.AuthRequired)
	activities.Get("", handler.ListActivities)
	activities.Post("", handler.CreateActivity)
	activities.Post("/:id/toggle", handler.ToggleActivity)
	activities.Get("/calendar", handler.ActivityCalendar)

	challenges := api.Group("/challenges", handler.AuthRequired)
	challenges.Get("", handler.ListChallenges)
	challenges.Post("/:id/join", handler.JoinChallenge)
	challenges.Get("/daily", handler.GetDailyChallenge)
	challenges.Post("/daily/claim", handler.ClaimDailyReward)

	api.Get("/badges", handler.AuthRequired, handler.ListBadges)

	notifications := api.Group("/notifications", handler.AuthRequired)
	notifications.Get("", handler.ListNotifications)
	notifications.Post("/:id/read", handler.MarkNotificationRead)

	friends := api.Group("/friends", handler.AuthRequired)
	friends.Get("", handler.ListFriends)
	friends.Get("/requests", handler.ListFriendRequests)
	friends.Post("/requests", handler.SendFriendRequest)
	friends.Post("/requests/:id/respond", handler.RespondFriendRequest)
	friends.Get("/challenges", handler.ListFriendChallenges)
	friends.Post("/challenges", handler.CreateFriendChallenge)
	friends.Post("/challenges/:id/increment", handler.IncrementFriendChallenge)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/theme", handler.UpdateTheme)
	settings.Post("/display-name", handler.UpdateDisplayName)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminOnly)
	admin.Get("/events", handler.ListEvents)
	admin.Post("/events", handler.CreateEvent)

	cron := api.Group("/cron")
	cron.Get("/notifications", handler.RunNotificationJob)
	cron.Post("/notifications", handler.TriggerNotificationRule)
}
