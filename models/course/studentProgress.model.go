package course

import (
	"time"

	"gorm.io/gorm"
)

// StudentProgress records per-lesson completion for a student.
// At most one row exists per (student, lesson) pair; repeated completion
// events upsert the same row.
type StudentProgress struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_student_lesson"`
	LessonID    uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_student_lesson"`
	Lesson      *Lesson    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	Score       *int       `json:"score"`
}
