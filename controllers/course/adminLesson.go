package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// chapterInOwnedCourse resolves the chapter after checking course ownership
func chapterInOwnedCourse(c *fiber.Ctx, courseID, chapterID int) (*courseModels.Chapter, error) {
	course, err := ownedCourse(c, courseID)
	if err != nil {
		return nil, err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ?", chapterID, course.ID).First(&chapter).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	return &chapter, nil
}

// CreateLesson creates a new lesson in a chapter
func CreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	chapter, err := chapterInOwnedCourse(c, courseID, chapterID)
	if err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title        string `json:"title" validate:"required"`
		Content      string `json:"content"`
		VideoURL     string `json:"video_url"`
		CodeExample  string `json:"code_example"`
		CodeLanguage string `json:"code_language"`
		Assignment   string `json:"assignment"`
		OrderIndex   *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Lesson{}).Where("chapter_id = ?", chapter.ID).Count(&count)
		orderIndex = int(count)
	}

	lesson := courseModels.Lesson{
		ChapterID:    chapter.ID,
		Title:        reqData.Title,
		Content:      reqData.Content,
		VideoURL:     reqData.VideoURL,
		CodeExample:  reqData.CodeExample,
		CodeLanguage: reqData.CodeLanguage,
		Assignment:   reqData.Assignment,
		OrderIndex:   orderIndex,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson updates an existing lesson
func UpdateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	lessonID := c.Locals("lessonID").(int)

	chapter, err := chapterInOwnedCourse(c, courseID, chapterID)
	if err != nil {
		return err
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND chapter_id = ?", lessonID, chapter.ID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title        string `json:"title" validate:"required"`
		Content      string `json:"content"`
		VideoURL     string `json:"video_url"`
		CodeExample  string `json:"code_example"`
		CodeLanguage string `json:"code_language"`
		Assignment   string `json:"assignment"`
		OrderIndex   *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson.Title = reqData.Title
	lesson.Content = reqData.Content
	lesson.VideoURL = reqData.VideoURL
	lesson.CodeExample = reqData.CodeExample
	lesson.CodeLanguage = reqData.CodeLanguage
	lesson.Assignment = reqData.Assignment
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson deletes a lesson together with its questions and material
// links
func DeleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)
	lessonID := c.Locals("lessonID").(int)

	chapter, err := chapterInOwnedCourse(c, courseID, chapterID)
	if err != nil {
		return err
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND chapter_id = ?", lessonID, chapter.ID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		return deleteLessonTree(tx, []uint{lesson.ID})
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
