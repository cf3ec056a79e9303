package validators

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SettingKey validates the :key route parameter
func SettingKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Setting key is required!", nil)
		}

		c.Locals("settingKey", key)
		return c.Next()
	}
}

// UpdateSetting validates the setting update body
func UpdateSetting() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Value string `json:"value" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedSetting", reqData)
		return c.Next()
	}
}
