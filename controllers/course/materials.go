package controllers

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadMaterial stores an uploaded file and creates its Material record
func UploadMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Material file is required!", nil)
	}

	title := c.FormValue("title")
	if title == "" {
		title = file.Filename
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	material := courseModels.Material{
		Title:      title,
		FileName:   file.Filename,
		FilePath:   filePath,
		FileSize:   file.Size,
		FileType:   file.Header.Get("Content-Type"),
		UploadedBy: userID,
	}

	if err := database.Database.Db.Create(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material uploaded successfully!", material)
}

// DownloadMaterial serves a material's file as an attachment
func DownloadMaterial(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(int)

	var material courseModels.Material
	if err := database.Database.Db.Where("id = ?", materialID).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	return c.Download(material.FilePath, material.FileName)
}

// LinkMaterial attaches a material to a lesson
func LinkMaterial(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)
	materialID := c.Locals("materialID").(int)

	lesson, err := lessonInOwnedCourse(c, lessonID)
	if err != nil {
		return err
	}

	var material courseModels.Material
	if err := database.Database.Db.Where("id = ?", materialID).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	// Already linked?
	var existing courseModels.LessonMaterial
	if err := database.Database.Db.Where("lesson_id = ? AND material_id = ?", lesson.ID, material.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Material already linked to this lesson!", nil)
	}

	link := courseModels.LessonMaterial{
		LessonID:   lesson.ID,
		MaterialID: material.ID,
	}

	if err := database.Database.Db.Create(&link).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to link material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material linked successfully!", link)
}

// UnlinkMaterial detaches a material from a lesson
func UnlinkMaterial(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)
	materialID := c.Locals("materialID").(int)

	lesson, err := lessonInOwnedCourse(c, lessonID)
	if err != nil {
		return err
	}

	var link courseModels.LessonMaterial
	if err := database.Database.Db.Where("lesson_id = ? AND material_id = ?", lesson.ID, materialID).First(&link).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material link not found!", nil)
	}

	if err := database.Database.Db.Delete(&link).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unlink material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material unlinked successfully!", nil)
}

// GetLessonMaterials lists the materials linked to a lesson
func GetLessonMaterials(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var materials []courseModels.Material
	err := database.Database.Db.Model(&courseModels.Material{}).
		Joins("JOIN lesson_materials ON lesson_materials.material_id = materials.id").
		Where("lesson_materials.lesson_id = ? AND lesson_materials.deleted_at IS NULL", lesson.ID).
		Find(&materials).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}
