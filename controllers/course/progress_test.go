package controllers

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
	courseModels "lms/models/course"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProgressTest(t *testing.T) (*fiber.App, []uint, uint) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Chapter{},
		&courseModels.Lesson{},
		&courseModels.Question{},
		&courseModels.Enrollment{},
		&courseModels.StudentProgress{},
	))
	database.Database = database.DbInstance{Db: db}

	course := courseModels.Course{Title: "Go Basics", InstructorID: 1, Status: courseModels.StatusPublished}
	require.NoError(t, db.Create(&course).Error)
	chapter := courseModels.Chapter{CourseID: course.ID, Title: "Basics", OrderIndex: 0}
	require.NoError(t, db.Create(&chapter).Error)

	lessonIDs := make([]uint, 0, 4)
	for i := 0; i < 4; i++ {
		lesson := courseModels.Lesson{ChapterID: chapter.ID, Title: fmt.Sprintf("Lesson %d", i+1), OrderIndex: i}
		require.NoError(t, db.Create(&lesson).Error)
		lessonIDs = append(lessonIDs, lesson.ID)
	}

	app := fiber.New()
	app.Post("/progress", middleware.JWTMiddleware, validators.RecordProgress(), RecordProgress)
	return app, lessonIDs, course.ID
}

func postProgress(t *testing.T, app *fiber.App, token string, body map[string]interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/progress", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRecordProgressEndpoint(t *testing.T) {
	app, lessons, courseID := setupProgressTest(t)

	token, err := middleware.GenerateJWT(7, "alice", models.RoleStudent)
	require.NoError(t, err)

	resp := postProgress(t, app, token, map[string]interface{}{
		"lesson_id": lessons[0],
		"completed": true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status bool `json:"status"`
		Data   struct {
			StudentID uint `json:"student_id"`
			LessonID  uint `json:"lesson_id"`
			Completed bool `json:"completed"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Status)
	assert.Equal(t, uint(7), body.Data.StudentID)
	assert.Equal(t, lessons[0], body.Data.LessonID)
	assert.True(t, body.Data.Completed)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("student_id = ? AND course_id = ?", 7, courseID).First(&enrollment).Error)
	assert.Equal(t, 25, enrollment.Progress)
}

func TestRecordProgressUnknownLesson(t *testing.T) {
	app, _, _ := setupProgressTest(t)

	token, err := middleware.GenerateJWT(7, "alice", models.RoleStudent)
	require.NoError(t, err)

	resp := postProgress(t, app, token, map[string]interface{}{
		"lesson_id": 9999,
		"completed": true,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var rows int64
	database.Database.Db.Model(&courseModels.StudentProgress{}).Count(&rows)
	assert.Equal(t, int64(0), rows)
}

func TestGetCourseProgressReportsQueryFailure(t *testing.T) {
	_, _, courseID := setupProgressTest(t)

	app := fiber.New()
	app.Get("/courses/:id/progress", middleware.JWTMiddleware, validators.CourseID(), GetCourseProgress)

	token, err := middleware.GenerateJWT(7, "alice", models.RoleStudent)
	require.NoError(t, err)

	// Break the completed-lessons query
	require.NoError(t, database.Database.Db.Migrator().DropTable(&courseModels.StudentProgress{}))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/courses/%d/progress", courseID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRecordProgressForAnotherStudentRequiresInstructor(t *testing.T) {
	app, lessons, _ := setupProgressTest(t)

	studentToken, err := middleware.GenerateJWT(7, "alice", models.RoleStudent)
	require.NoError(t, err)
	instructorToken, err := middleware.GenerateJWT(1, "bob", models.RoleInstructor)
	require.NoError(t, err)

	resp := postProgress(t, app, studentToken, map[string]interface{}{
		"student_id": 8,
		"lesson_id":  lessons[0],
		"completed":  true,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = postProgress(t, app, instructorToken, map[string]interface{}{
		"student_id": 8,
		"lesson_id":  lessons[0],
		"completed":  true,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
