package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// ChapterWithLessons bundles a chapter with its ordered lessons
type ChapterWithLessons struct {
	courseModels.Chapter
	Lessons []courseModels.Lesson `json:"lessons"`
}

// GetAllCourses lists published courses
func GetAllCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.Where("status = ?", courseModels.StatusPublished).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetMyCourses lists the requesting instructor's own courses, all statuses
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("instructor_id = ?", userID).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseDetails returns a course with its full chapter/lesson tree.
// Drafts are only visible to their instructor.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Status != courseModels.StatusPublished && course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ?", course.ID).Order("order_index asc").Find(&chapters)

	tree := make([]ChapterWithLessons, len(chapters))
	for i, chapter := range chapters {
		tree[i] = ChapterWithLessons{Chapter: chapter}
		database.Database.Db.Where("chapter_id = ?", chapter.ID).Order("order_index asc").Find(&tree[i].Lessons)
	}

	// Check if user is enrolled
	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.Where("student_id = ? AND course_id = ?", userID, course.ID).First(&enrollment).Error == nil

	response := fiber.Map{
		"course":      course,
		"chapters":    tree,
		"is_enrolled": isEnrolled,
	}
	if isEnrolled {
		response["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}

// GetLessonQuestions returns a lesson's quiz questions. Correct answers and
// explanations are stripped for students.
func GetLessonQuestions(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var questions []courseModels.Question
	if err := database.Database.Db.Where("lesson_id = ?", lesson.ID).Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	role, _ := c.Locals("role").(string)
	if role != models.RoleInstructor {
		// Don't show answers to students
		for i := range questions {
			questions[i].CorrectAnswer = -1
			questions[i].Explanation = ""
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", questions)
}
