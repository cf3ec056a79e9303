package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's registration in a course with aggregate progress.
// At most one row exists per (student, course) pair.
type Enrollment struct {
	gorm.Model
	StudentID  uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_student_course"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_student_course"`
	Course     *Course   `json:"course,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Progress   int       `json:"progress" gorm:"default:0"` // completion percentage (0-100)
}
