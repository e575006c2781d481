package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akashpawar6363/sanjay-study-center/database"
	"github.com/akashpawar6363/sanjay-study-center/models"
	"github.com/akashpawar6363/sanjay-study-center/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	app         *fiber.App
	db          *gorm.DB
	adminToken  string
	coordToken  string
	adminID     uuid.UUID
	coordID     uuid.UUID
	categoryID  uuid.UUID
	categoryFee float64
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", testJWTSecret)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Admission{},
		&models.Setting{},
		&models.EmailLog{},
	))
	database.DB = db

	admin := models.User{FullName: "Test Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin, IsActive: true}
	coord := models.User{FullName: "Test Coordinator", Email: "coord@example.com", Password: "x", Role: models.RoleCoordinator, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&coord).Error)

	category := models.Category{Name: "Reserved", Rate: 1300, IsDefault: true}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.Setting{Key: models.SettingReceiptCounter, Value: "1000"}).Error)
	require.NoError(t, db.Create(&models.Setting{Key: models.SettingTotalSeats, Value: "100"}).Error)

	app := fiber.New()
	routes.AdmissionRoutes(app)
	routes.CategoryRoutes(app)
	routes.SettingsRoutes(app)

	return &testEnv{
		app:         app,
		db:          db,
		adminToken:  signToken(t, admin.ID, models.RoleAdmin),
		coordToken:  signToken(t, coord.ID, models.RoleCoordinator),
		adminID:     admin.ID,
		coordID:     coord.ID,
		categoryID:  category.ID,
		categoryFee: category.Rate,
	}
}

func signToken(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type admissionPayload map[string]interface{}

func validAdmission(categoryID uuid.UUID) admissionPayload {
	return admissionPayload{
		"seat_no":         12,
		"category_id":     categoryID.String(),
		"admission_date":  "2024-03-15",
		"duration_months": 2,
		"student_name":    "Ravi Kumar",
		"email":           "ravi@example.com",
		"mobile_number":   "9876543210",
		"fees":            2600.0,
		"discount":        0.0,
		"payment_mode":    "cash",
	}
}

type admissionBody struct {
	Admission struct {
		ID             string  `json:"id"`
		SeatNo         int     `json:"seat_no"`
		ReceiptNo      string  `json:"receipt_no"`
		RenewalDate    string  `json:"renewal_date"`
		StudentName    string  `json:"student_name"`
		Fees           float64 `json:"fees"`
		DurationMonths int     `json:"duration_months"`
		Status         string  `json:"status"`
	} `json:"admission"`
}

func TestCreateAdmissionEndToEnd(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "POST", "/api/v1/admissions", env.coordToken, validAdmission(env.categoryID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body admissionBody
	decodeBody(t, resp, &body)
	assert.Equal(t, 12, body.Admission.SeatNo)
	assert.Equal(t, "RCP-1001", body.Admission.ReceiptNo)
	assert.Equal(t, 2600.0, body.Admission.Fees)
	assert.Equal(t, models.AdmissionStatusActive, body.Admission.Status)
	assert.True(t, len(body.Admission.RenewalDate) >= 10 && body.Admission.RenewalDate[:10] == "2024-05-15",
		"renewal date should be admission date plus two calendar months, got %s", body.Admission.RenewalDate)

	// Counter advanced atomically with the insert.
	var setting models.Setting
	require.NoError(t, env.db.Where("key = ?", models.SettingReceiptCounter).First(&setting).Error)
	assert.Equal(t, "1001", setting.Value)

	// One audit row for the receipt email, even though the transport is not
	// configured in tests.
	var logs []models.EmailLog
	require.NoError(t, env.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, models.EmailTypeAdmissionReceipt, logs[0].EmailType)
	assert.Equal(t, "ravi@example.com", logs[0].RecipientEmail)
}

func TestReceiptNumbersStrictlyIncreasing(t *testing.T) {
	env := setupEnv(t)

	var issued []string
	for i := 0; i < 3; i++ {
		payload := validAdmission(env.categoryID)
		payload["seat_no"] = 20 + i
		resp := doRequest(t, env.app, "POST", "/api/v1/admissions", env.coordToken, payload)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var body admissionBody
		decodeBody(t, resp, &body)
		issued = append(issued, body.Admission.ReceiptNo)
	}

	assert.Equal(t, []string{"RCP-1001", "RCP-1002", "RCP-1003"}, issued)
}

func TestCreateAdmissionValidation(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name   string
		mutate func(admissionPayload)
	}{
		{"mobile not starting 6-9", func(p admissionPayload) { p["mobile_number"] = "5876543210" }},
		{"mobile too short", func(p admissionPayload) { p["mobile_number"] = "98765" }},
		{"duration over a year", func(p admissionPayload) { p["duration_months"] = 13 }},
		{"single-letter name", func(p admissionPayload) { p["student_name"] = "R" }},
		{"bad email", func(p admissionPayload) { p["email"] = "not-an-email" }},
		{"unknown payment mode", func(p admissionPayload) { p["payment_mode"] = "upi" }},
		{"unknown category", func(p admissionPayload) { p["category_id"] = uuid.NewString() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validAdmission(env.categoryID)
			tt.mutate(payload)
			resp := doRequest(t, env.app, "POST", "/api/v1/admissions", env.coordToken, payload)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}

	// Nothing was created and no receipt number was burned.
	var count int64
	env.db.Model(&models.Admission{}).Count(&count)
	assert.Zero(t, count)
	var setting models.Setting
	require.NoError(t, env.db.Where("key = ?", models.SettingReceiptCounter).First(&setting).Error)
	assert.Equal(t, "1000", setting.Value)
}

func TestCoordinatorCannotUpdateOrDelete(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "POST", "/api/v1/admissions", env.coordToken, validAdmission(env.categoryID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created admissionBody
	decodeBody(t, resp, &created)

	update := validAdmission(env.categoryID)
	update["student_name"] = "Someone Else"
	resp = doRequest(t, env.app, "PUT", "/api/v1/admissions/"+created.Admission.ID, env.coordToken, update)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, env.app, "DELETE", "/api/v1/admissions/"+created.Admission.ID, env.coordToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Record untouched.
	var admission models.Admission
	require.NoError(t, env.db.First(&admission, "id = ?", created.Admission.ID).Error)
	assert.Equal(t, "Ravi Kumar", admission.StudentName)
}

func TestAdminUpdateRederivesRenewalDate(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "POST", "/api/v1/admissions", env.coordToken, validAdmission(env.categoryID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created admissionBody
	decodeBody(t, resp, &created)

	update := validAdmission(env.categoryID)
	update["duration_months"] = 4
	update["fees"] = 5200.0
	update["status"] = models.AdmissionStatusRenewed
	resp = doRequest(t, env.app, "PUT", "/api/v1/admissions/"+created.Admission.ID, env.adminToken, update)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated admissionBody
	decodeBody(t, resp, &updated)
	assert.Equal(t, 4, updated.Admission.DurationMonths)
	assert.Equal(t, "2024-07-15", updated.Admission.RenewalDate[:10])
	assert.Equal(t, models.AdmissionStatusRenewed, updated.Admission.Status)
	// The submitted fee is trusted as-is.
	assert.Equal(t, 5200.0, updated.Admission.Fees)
	// Receipt number never changes on update.
	assert.Equal(t, created.Admission.ReceiptNo, updated.Admission.ReceiptNo)
}

func TestAdminDeleteAdmissionLeavesEmailLogs(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "POST", "/api/v1/admissions", env.coordToken, validAdmission(env.categoryID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created admissionBody
	decodeBody(t, resp, &created)

	resp = doRequest(t, env.app, "DELETE", "/api/v1/admissions/"+created.Admission.ID, env.adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, env.app, "GET", "/api/v1/admissions/"+created.Admission.ID, env.adminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Audit rows survive the hard delete.
	var logs []models.EmailLog
	require.NoError(t, env.db.Where("admission_id = ?", created.Admission.ID).Find(&logs).Error)
	assert.NotEmpty(t, logs)
}

func TestGetAdmissionIsIdempotent(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "POST", "/api/v1/admissions", env.coordToken, validAdmission(env.categoryID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created admissionBody
	decodeBody(t, resp, &created)

	var first, second admissionBody
	resp = doRequest(t, env.app, "GET", "/api/v1/admissions/"+created.Admission.ID, env.coordToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &first)
	resp = doRequest(t, env.app, "GET", "/api/v1/admissions/"+created.Admission.ID, env.coordToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &second)

	assert.Equal(t, first.Admission, second.Admission)
}

func TestAdmissionsRequireAuthentication(t *testing.T) {
	env := setupEnv(t)

	resp := doRequest(t, env.app, "GET", "/api/v1/admissions", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, env.app, "POST", "/api/v1/admissions", "", validAdmission(env.categoryID))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
