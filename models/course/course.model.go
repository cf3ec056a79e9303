package course

import "gorm.io/gorm"

// Course statuses
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Course represents a learning course owned by an instructor
type Course struct {
	gorm.Model
	Title             string `json:"title"`
	Description       string `json:"description"`
	InstructorID      uint   `json:"instructor_id" gorm:"index;not null"`
	Status            string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED, ARCHIVED
	IsPublic          bool   `json:"is_public" gorm:"default:false"`
	AllowRegistration bool   `json:"allow_registration" gorm:"default:true"`
}
