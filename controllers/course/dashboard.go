package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetDashboardStats returns aggregate numbers for the requesting
// instructor's courses. Counts are re-derived from the store on every
// request rather than maintained as counters.
func GetDashboardStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var totalCourses int64
	db.Model(&courseModels.Course{}).Where("instructor_id = ?", userID).Count(&totalCourses)

	var publishedCourses int64
	db.Model(&courseModels.Course{}).Where("instructor_id = ? AND status = ?", userID, courseModels.StatusPublished).Count(&publishedCourses)

	var totalEnrollments int64
	db.Model(&courseModels.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL", userID).
		Count(&totalEnrollments)

	// Students with at least one enrollment in this instructor's courses
	var activeStudents int64
	db.Model(&courseModels.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL", userID).
		Distinct("enrollments.student_id").
		Count(&activeStudents)

	var completedEnrollments int64
	db.Model(&courseModels.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ? AND courses.deleted_at IS NULL AND enrollments.progress >= 100", userID).
		Count(&completedEnrollments)

	var totalStudents int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_courses":         totalCourses,
		"published_courses":     publishedCourses,
		"total_enrollments":     totalEnrollments,
		"active_students":       activeStudents,
		"completed_enrollments": completedEnrollments,
		"total_students":        totalStudents,
	})
}
