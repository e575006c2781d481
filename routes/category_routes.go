package routes

import (
	"github.com/akashpawar6363/sanjay-study-center/handlers"
	"github.com/akashpawar6363/sanjay-study-center/middleware"
	"github.com/gofiber/fiber/v2"
)

func CategoryRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	categories := api.Group("/categories", middleware.Protected())
	categories.Get("", handlers.ListCategories)
	categories.Post("", middleware.AdminRequired(), handlers.CreateCategory)
	categories.Put("/:categoryId", middleware.AdminRequired(), handlers.UpdateCategory)
	categories.Delete("/:categoryId", middleware.AdminRequired(), handlers.DeleteCategory)
}
