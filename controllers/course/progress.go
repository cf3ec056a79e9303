package controllers

import (
	"errors"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"

	"github.com/gofiber/fiber/v2"
)

// RecordProgress handles a lesson completion event. The progress service
// upserts the StudentProgress row and recomputes the enrollment percentage.
func RecordProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		StudentID   *uint   `json:"student_id"`
		LessonID    uint    `json:"lesson_id" validate:"required"`
		Completed   bool    `json:"completed"`
		CompletedAt *string `json:"completed_at"`
		Score       *int    `json:"score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Students record their own progress; instructors may record on behalf
	// of a student
	studentID := userID
	if reqData.StudentID != nil {
		role, _ := c.Locals("role").(string)
		if *reqData.StudentID != userID && role != models.RoleInstructor {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot record progress for another student!", nil)
		}
		studentID = *reqData.StudentID
	}

	var completedAt *time.Time
	if reqData.CompletedAt != nil {
		parsed, err := time.Parse(time.RFC3339, *reqData.CompletedAt)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid completed_at timestamp!", nil)
		}
		completedAt = &parsed
	}

	svc := progress.NewService(database.Database.Db)
	record, err := svc.RecordCompletion(studentID, reqData.LessonID, reqData.Completed, completedAt, reqData.Score)
	if err != nil {
		if errors.Is(err, progress.ErrLessonNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded successfully!", record)
}

// GetCourseProgress returns the student's enrollment and per-lesson
// completion for a course
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var enrollment struct {
		Progress int `json:"progress"`
	}
	err := db.Table("enrollments").
		Select("progress").
		Where("student_id = ? AND course_id = ? AND deleted_at IS NULL", userID, courseID).
		Scan(&enrollment).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var completedLessonIDs []uint
	err = db.Table("student_progresses").
		Select("student_progresses.lesson_id").
		Joins("JOIN lessons ON lessons.id = student_progresses.lesson_id").
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("student_progresses.student_id = ? AND student_progresses.completed = ? AND chapters.course_id = ?", userID, true, courseID).
		Where("student_progresses.deleted_at IS NULL AND lessons.deleted_at IS NULL AND chapters.deleted_at IS NULL").
		Scan(&completedLessonIDs).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":             enrollment.Progress,
		"completed_lesson_ids": completedLessonIDs,
	})
}
