package routes

import (
	"github.com/akashpawar6363/sanjay-study-center/handlers"
	"github.com/akashpawar6363/sanjay-study-center/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdmissionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admissions := api.Group("/admissions", middleware.Protected())
	admissions.Get("", handlers.ListAdmissions)
	admissions.Get("/:admissionId", handlers.GetAdmission)
	admissions.Post("", middleware.StaffRequired(), handlers.CreateAdmission)
	admissions.Put("/:admissionId", middleware.AdminRequired(), handlers.UpdateAdmission)
	admissions.Delete("/:admissionId", middleware.AdminRequired(), handlers.DeleteAdmission)
}
