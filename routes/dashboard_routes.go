package routes

import (
	"github.com/akashpawar6363/sanjay-study-center/handlers"
	"github.com/akashpawar6363/sanjay-study-center/middleware"
	"github.com/gofiber/fiber/v2"
)

func DashboardRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	dashboard := api.Group("/dashboard", middleware.Protected())
	dashboard.Get("/stats", handlers.GetDashboardStats)
}
