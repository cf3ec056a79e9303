package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateChapter creates a new chapter in a course
func CreateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := ownedCourse(c, courseID)
	if err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		OrderIndex  *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Append at the end unless a position was given
	orderIndex := 0
	if reqData.OrderIndex != nil {
		orderIndex = *reqData.OrderIndex
	} else {
		var count int64
		database.Database.Db.Model(&courseModels.Chapter{}).Where("course_id = ?", course.ID).Count(&count)
		orderIndex = int(count)
	}

	chapter := courseModels.Chapter{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  orderIndex,
	}

	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// UpdateChapter updates an existing chapter
func UpdateChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	course, err := ownedCourse(c, courseID)
	if err != nil {
		return err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ?", chapterID, course.ID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		OrderIndex  *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		chapter.Title = reqData.Title
	}
	if reqData.Description != "" {
		chapter.Description = reqData.Description
	}
	if reqData.OrderIndex != nil {
		chapter.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// DeleteChapter deletes a chapter together with its lessons, their
// questions and material links
func DeleteChapter(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	course, err := ownedCourse(c, courseID)
	if err != nil {
		return err
	}

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ?", chapterID, course.ID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var lessonIDs []uint
		if err := tx.Model(&courseModels.Lesson{}).Where("chapter_id = ?", chapter.ID).Pluck("id", &lessonIDs).Error; err != nil {
			return err
		}
		if err := deleteLessonTree(tx, lessonIDs); err != nil {
			return err
		}
		return tx.Delete(&chapter).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", nil)
}
