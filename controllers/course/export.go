package controllers

import (
	"errors"
	"fmt"

	"lms/database"
	"lms/middleware"
	"lms/services/export"

	"github.com/gofiber/fiber/v2"
)

// ExportCourse streams the course content tree as a zip archive of Markdown
// files, one directory per chapter plus the uploaded materials
func ExportCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	if _, err := ownedCourse(c, courseID); err != nil {
		return err
	}

	svc := export.NewService(database.Database.Db)
	archive, fileName, err := svc.ExportCourse(uint(courseID))
	if err != nil {
		if errors.Is(err, export.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export course!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, fileName))
	return c.Send(archive)
}
