package routes

import (
	"github.com/akashpawar6363/sanjay-study-center/handlers"
	"github.com/akashpawar6363/sanjay-study-center/middleware"
	"github.com/gofiber/fiber/v2"
)

func SettingsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	settings := api.Group("/settings", middleware.Protected())
	settings.Get("", handlers.GetSettings)
	settings.Put("", middleware.AdminRequired(), handlers.UpdateSettings)

	users := api.Group("/users", middleware.Protected(), middleware.AdminRequired())
	users.Get("", handlers.ListUsers)
	users.Post("", handlers.CreateUser)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
	users.Delete("/:userId", handlers.DeleteUser)
}
