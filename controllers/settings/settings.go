package settingsController

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetSetting returns the stored value for a setting key
func GetSetting(c *fiber.Ctx) error {
	key := c.Locals("settingKey").(string)

	var setting models.SystemSetting
	if err := database.Database.Db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Setting not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch setting!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting fetched successfully!", setting)
}

// UpdateSetting upserts a setting value
func UpdateSetting(c *fiber.Ctx) error {
	key := c.Locals("settingKey").(string)

	reqData, ok := c.Locals("validatedSetting").(*struct {
		Value string `json:"value" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var setting models.SystemSetting
	err := db.Where("key = ?", key).First(&setting).Error
	switch {
	case err == nil:
		setting.Value = reqData.Value
		err = db.Save(&setting).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.SystemSetting{Key: key, Value: reqData.Value}
		err = db.Create(&setting).Error
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update setting!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Setting updated successfully!", setting)
}
