package routes

import (
	"github.com/akashpawar6363/sanjay-study-center/handlers"
	"github.com/akashpawar6363/sanjay-study-center/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/me", middleware.Protected(), handlers.GetCurrentUser)

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)
}
