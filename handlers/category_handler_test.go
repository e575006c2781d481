package handlers_test

import (
	"testing"

	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteDefaultCategoryRejected(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "DELETE", "/api/v1/categories/"+env.categoryID.String(), env.adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Category untouched.
	var category models.Category
	require.NoError(t, env.db.First(&category, "id = ?", env.categoryID).Error)
	assert.True(t, category.IsDefault)
}

func TestDeleteNonDefaultCategory(t *testing.T) {
	env := setupEnv(t)

	extra := models.Category{Name: "Weekend Only", Rate: 700}
	require.NoError(t, env.db.Create(&extra).Error)

	resp := doRequest(t, env.app, "DELETE", "/api/v1/categories/"+extra.ID.String(), env.adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	env.db.Model(&models.Category{}).Where("id = ?", extra.ID).Count(&count)
	assert.Zero(t, count)
}

func TestCategoryMutationsAreAdminOnly(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "POST", "/api/v1/categories", env.coordToken, map[string]interface{}{
		"name": "Evening Batch",
		"rate": 900,
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, env.app, "POST", "/api/v1/categories", env.adminToken, map[string]interface{}{
		"name": "Evening Batch",
		"rate": 900,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Category models.Category `json:"category"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Evening Batch", body.Category.Name)
	assert.False(t, body.Category.IsDefault, "created categories are never default")

	// Coordinators can still read the list.
	resp = doRequest(t, env.app, "GET", "/api/v1/categories", env.coordToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpdateSettingsValidation(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "PUT", "/api/v1/settings", env.adminToken, map[string]string{
		"total_seats": "120",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var setting models.Setting
	require.NoError(t, env.db.Where("key = ?", models.SettingTotalSeats).First(&setting).Error)
	assert.Equal(t, "120", setting.Value)

	resp = doRequest(t, env.app, "PUT", "/api/v1/settings", env.adminToken, map[string]string{
		"favourite_colour": "blue",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, env.app, "PUT", "/api/v1/settings", env.adminToken, map[string]string{
		"total_seats": "lots",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, env.app, "PUT", "/api/v1/settings", env.coordToken, map[string]string{
		"total_seats": "50",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
