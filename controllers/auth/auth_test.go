package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.SystemSetting{}))

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/register", validators.Register(), Register)
	app.Post("/auth/register-instructor", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.Register(), RegisterInstructor)
	app.Post("/auth/login", validators.Login(), Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}, token string) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterCreatesStudent(t *testing.T) {
	app := setupTest(t)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "supersecret", user.Password)
}

func TestRegisterDisabledCreatesNoUser(t *testing.T) {
	app := setupTest(t)

	setting := models.SystemSetting{Key: models.SettingAllowStudentRegistration, Value: "false"}
	require.NoError(t, database.Database.Db.Create(&setting).Error)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	}, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegistrationGateIgnoresOtherValues(t *testing.T) {
	app := setupTest(t)

	// Any value other than "false" leaves registration open
	setting := models.SystemSetting{Key: models.SettingAllowStudentRegistration, Value: "no"}
	require.NoError(t, database.Database.Db.Create(&setting).Error)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestInstructorRegistrationBypassesGate(t *testing.T) {
	app := setupTest(t)

	setting := models.SystemSetting{Key: models.SettingAllowStudentRegistration, Value: "false"}
	require.NoError(t, database.Database.Db.Create(&setting).Error)

	token, err := middleware.GenerateJWT(1, "admin", models.RoleInstructor)
	require.NoError(t, err)

	resp := postJSON(t, app, "/auth/register-instructor", map[string]interface{}{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "supersecret",
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("username = ?", "bob").First(&user).Error)
	assert.Equal(t, models.RoleInstructor, user.Role)
}

func TestInstructorRegistrationRequiresInstructorRole(t *testing.T) {
	app := setupTest(t)

	token, err := middleware.GenerateJWT(1, "student", models.RoleStudent)
	require.NoError(t, err)

	resp := postJSON(t, app, "/auth/register-instructor", map[string]interface{}{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "supersecret",
	}, token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLoginRoundTrip(t *testing.T) {
	app := setupTest(t)

	resp := postJSON(t, app, "/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "supersecret",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status bool `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Status)
	assert.NotEmpty(t, body.Data.Token)

	resp = postJSON(t, app, "/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "wrongpassword",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
