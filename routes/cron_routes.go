package routes

import (
	"github.com/akashpawar6363/sanjay-study-center/handlers"
	"github.com/akashpawar6363/sanjay-study-center/middleware"
	"github.com/gofiber/fiber/v2"
)

func CronRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	cron := api.Group("/cron", middleware.CronProtected())
	cron.Get("/renewal-reminders", handlers.RunRenewalReminders)
	cron.Get("/expiring-admissions-report", handlers.RunExpiringAdmissionsReport)
}
