package validators

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// idParam parses a positive integer route parameter into Locals under name
func idParam(param, name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(name, id)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return idParam("id", "courseID")
}

// ChapterID validates the :chapterId route parameter
func ChapterID() fiber.Handler {
	return idParam("chapterId", "chapterID")
}

// LessonID validates the :lessonId route parameter
func LessonID() fiber.Handler {
	return idParam("lessonId", "lessonID")
}

// QuestionID validates the :questionId route parameter
func QuestionID() fiber.Handler {
	return idParam("questionId", "questionID")
}

// MaterialID validates the :materialId route parameter
func MaterialID() fiber.Handler {
	return idParam("materialId", "materialID")
}

// CreateCourse validates the course creation body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title             string `json:"title" validate:"required,min=3"`
			Description       string `json:"description"`
			IsPublic          bool   `json:"is_public"`
			AllowRegistration *bool  `json:"allow_registration"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the course update body
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title             string `json:"title"`
			Description       string `json:"description"`
			Status            string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
			IsPublic          *bool  `json:"is_public"`
			AllowRegistration *bool  `json:"allow_registration"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateChapter validates the chapter creation body
func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required"`
			Description string `json:"description"`
			OrderIndex  *int   `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

// CreateLesson validates the lesson creation body
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title" validate:"required"`
			Content      string `json:"content"`
			VideoURL     string `json:"video_url"`
			CodeExample  string `json:"code_example"`
			CodeLanguage string `json:"code_language"`
			Assignment   string `json:"assignment"`
			OrderIndex   *int   `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// CreateQuestion validates the quiz question creation body
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question      string   `json:"question" validate:"required"`
			Options       []string `json:"options" validate:"required,min=2"`
			CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
			Explanation   string   `json:"explanation"`
			OrderIndex    *int     `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		if reqData.CorrectAnswer >= len(reqData.Options) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"correct_answer": "Correct answer must reference one of the options!",
			})
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// RecordProgress validates the lesson completion body
func RecordProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			StudentID   *uint   `json:"student_id"`
			LessonID    uint    `json:"lesson_id" validate:"required"`
			Completed   bool    `json:"completed"`
			CompletedAt *string `json:"completed_at"`
			Score       *int    `json:"score"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
