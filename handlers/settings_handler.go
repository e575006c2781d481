package handlers

import (
	"log"
	"strconv"

	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

var editableSettings = map[string]bool{
	models.SettingReceiptCounter: true,
	models.SettingTotalSeats:     true,
}

func GetSettings(c *fiber.Ctx) error {
	var settings []models.Setting
	if err := database.DB.Find(&settings).Error; err != nil {
		log.Printf("🔥 Failed to fetch settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}

	result := make(map[string]string, len(settings))
	for _, setting := range settings {
		result[setting.Key] = setting.Value
	}
	return c.JSON(fiber.Map{"settings": result})
}

func UpdateSettings(c *fiber.Ctx) error {
	var req map[string]string
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	for key, value := range req {
		if !editableSettings[key] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown setting: " + key})
		}
		if n, err := strconv.Atoi(value); err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Setting " + key + " must be a non-negative integer"})
		}
	}

	for key, value := range req {
		setting := models.Setting{Key: key, Value: value}
		err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&setting).Error
		if err != nil {
			log.Printf("🔥 Failed to update setting %s: %v", key, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update settings"})
		}
	}

	return GetSettings(c)
}
