package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// lessonInOwnedCourse resolves a lesson and checks the requester owns the
// course it belongs to
func lessonInOwnedCourse(c *fiber.Ctx, lessonID int) (*courseModels.Lesson, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ?", lesson.ChapterID).First(&chapter).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", chapter.CourseID).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	return &lesson, nil
}

// CreateQuestion adds a quiz question to a lesson
func CreateQuestion(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	lesson, err := lessonInOwnedCourse(c, lessonID)
	if err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Question      string   `json:"question" validate:"required"`
		Options       []string `json:"options" validate:"required,min=2"`
		CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
		Explanation   string   `json:"explanation"`
		OrderIndex    *int     `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Question{}).Where("lesson_id = ?", lesson.ID).Count(&count)
		orderIndex = int(count)
	}

	question := courseModels.Question{
		LessonID:      lesson.ID,
		Question:      reqData.Question,
		CorrectAnswer: reqData.CorrectAnswer,
		Explanation:   reqData.Explanation,
		OrderIndex:    orderIndex,
	}
	if err := question.SetOptions(reqData.Options); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// UpdateQuestion replaces a quiz question's text, options and answer
func UpdateQuestion(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)
	questionID := c.Locals("questionID").(int)

	lesson, err := lessonInOwnedCourse(c, lessonID)
	if err != nil {
		return err
	}

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND lesson_id = ?", questionID, lesson.ID).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Question      string   `json:"question" validate:"required"`
		Options       []string `json:"options" validate:"required,min=2"`
		CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
		Explanation   string   `json:"explanation"`
		OrderIndex    *int     `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	question.Question = reqData.Question
	question.CorrectAnswer = reqData.CorrectAnswer
	question.Explanation = reqData.Explanation
	if reqData.OrderIndex != nil {
		question.OrderIndex = *reqData.OrderIndex
	}
	if err := question.SetOptions(reqData.Options); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
	}

	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// DeleteQuestion removes a quiz question from a lesson
func DeleteQuestion(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)
	questionID := c.Locals("questionID").(int)

	lesson, err := lessonInOwnedCourse(c, lessonID)
	if err != nil {
		return err
	}

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND lesson_id = ?", questionID, lesson.ID).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if err := database.Database.Db.Delete(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
