package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ownedCourse loads the course and checks the requester owns it
func ownedCourse(c *fiber.Ctx, courseID int) (*courseModels.Course, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.InstructorID != userID {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
	}

	return &course, nil
}

// CreateCourse creates a new course owned by the requesting instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title             string `json:"title" validate:"required,min=3"`
		Description       string `json:"description"`
		IsPublic          bool   `json:"is_public"`
		AllowRegistration *bool  `json:"allow_registration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:             reqData.Title,
		Description:       reqData.Description,
		InstructorID:      userID,
		Status:            courseModels.StatusDraft,
		IsPublic:          reqData.IsPublic,
		AllowRegistration: true,
	}
	if reqData.AllowRegistration != nil {
		course.AllowRegistration = *reqData.AllowRegistration
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates an existing course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := ownedCourse(c, courseID)
	if err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title             string `json:"title"`
		Description       string `json:"description"`
		Status            string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
		IsPublic          *bool  `json:"is_public"`
		AllowRegistration *bool  `json:"allow_registration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}
	if reqData.IsPublic != nil {
		course.IsPublic = *reqData.IsPublic
	}
	if reqData.AllowRegistration != nil {
		course.AllowRegistration = *reqData.AllowRegistration
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// deleteLessonTree removes lessons together with their questions and
// material links. Soft deletes do not trigger the database-level cascade
// constraints, so every child table is deleted explicitly.
func deleteLessonTree(tx *gorm.DB, lessonIDs []uint) error {
	if len(lessonIDs) == 0 {
		return nil
	}
	if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&courseModels.Question{}).Error; err != nil {
		return err
	}
	if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&courseModels.LessonMaterial{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", lessonIDs).Delete(&courseModels.Lesson{}).Error
}

// DeleteCourse deletes a course together with its chapters, lessons,
// questions, material links and enrollments, all in one transaction.
// Progress rows are kept as history.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := ownedCourse(c, courseID)
	if err != nil {
		return err
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&courseModels.Chapter{}).Where("course_id = ?", course.ID).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}

		var lessonIDs []uint
		if len(chapterIDs) > 0 {
			if err := tx.Model(&courseModels.Lesson{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}
		}

		if err := deleteLessonTree(tx, lessonIDs); err != nil {
			return err
		}
		if len(chapterIDs) > 0 {
			if err := tx.Where("id IN ?", chapterIDs).Delete(&courseModels.Chapter{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", course.ID).Delete(&courseModels.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(course).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
