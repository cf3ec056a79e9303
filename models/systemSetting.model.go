package models

import "gorm.io/gorm"

// Well-known setting keys
const (
	SettingAllowStudentRegistration = "allow_student_registration"
)

// SystemSetting is a string key/value pair persisted for runtime policy flags
type SystemSetting struct {
	gorm.Model
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value"`
}
