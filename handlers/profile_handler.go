package handlers

import (
	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/middleware"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	FullName            string  `json:"full_name" validate:"required,min=2"`
	ProfilePhotoURL     *string `json:"profile_photo_url,omitempty" validate:"omitempty,url"`
	DigitalSignatureURL *string `json:"digital_signature_url,omitempty" validate:"omitempty,url"`
}

func GetProfile(c *fiber.Ctx) error {
	var user models.User
	if err := database.DB.First(&user, "id = ?", middleware.CallerID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", middleware.CallerID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.FullName = req.FullName
	if req.ProfilePhotoURL != nil {
		user.ProfilePhotoURL = req.ProfilePhotoURL
	}
	if req.DigitalSignatureURL != nil {
		user.DigitalSignatureURL = req.DigitalSignatureURL
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}
