package handlers

import (
	"log"

	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name string  `json:"name" validate:"required,min=2"`
	Rate float64 `json:"rate" validate:"required,min=0"`
}

func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		log.Printf("🔥 Failed to list categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	category := models.Category{
		Name:      req.Name,
		Rate:      req.Rate,
		IsDefault: false,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		log.Printf("🔥 Failed to create category: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category})
}

func UpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := database.DB.First(&category, "id = ?", c.Params("categoryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	category.Name = req.Name
	category.Rate = req.Rate
	if err := database.DB.Save(&category).Error; err != nil {
		log.Printf("🔥 Failed to update category %s: %v", category.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update category"})
	}

	return c.JSON(fiber.Map{"category": category})
}

func DeleteCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := database.DB.First(&category, "id = ?", c.Params("categoryId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Category not found"})
	}

	// Seeded categories stay; the check is per row, not a count of defaults.
	if category.IsDefault {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot delete default category"})
	}

	if err := database.DB.Delete(&category).Error; err != nil {
		log.Printf("🔥 Failed to delete category %s: %v", category.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete category"})
	}

	return c.JSON(fiber.Map{"success": true})
}
