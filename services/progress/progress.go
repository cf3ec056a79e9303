package progress

import (
	"errors"
	"math"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// ErrLessonNotFound is returned when a completion event references a lesson
// that does not resolve to an existing lesson/chapter/course chain.
var ErrLessonNotFound = errors.New("lesson not found")

// Service recomputes course-level completion from per-lesson completion
// events. The database handle is injected so tests can run against their
// own store.
type Service struct {
	db *gorm.DB
}

// NewService creates a progress service bound to the given database
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RecordCompletion upserts the StudentProgress row for (studentID, lessonID)
// and, when the lesson is completed, recomputes the student's completion
// percentage for the owning course and stores it on the enrollment.
//
// The enrollment percentage is always re-derived from the full lesson set,
// never incremented, so repeated calls are idempotent and any prior drift
// self-heals. Nothing is written if the lesson does not resolve.
func (s *Service) RecordCompletion(studentID, lessonID uint, completed bool, completedAt *time.Time, score *int) (*courseModels.StudentProgress, error) {
	// Resolve lesson -> chapter -> course before any write
	var lesson courseModels.Lesson
	if err := s.db.Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		return nil, ErrLessonNotFound
	}

	var chapter courseModels.Chapter
	if err := s.db.Where("id = ?", lesson.ChapterID).First(&chapter).Error; err != nil {
		return nil, ErrLessonNotFound
	}

	var course courseModels.Course
	if err := s.db.Where("id = ?", chapter.CourseID).First(&course).Error; err != nil {
		return nil, ErrLessonNotFound
	}

	var record courseModels.StudentProgress

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing courseModels.StudentProgress
		findErr := tx.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&existing).Error

		switch {
		case findErr == nil:
			wasCompleted := existing.Completed
			existing.Completed = completed
			existing.Score = score
			if completed {
				if completedAt != nil {
					existing.CompletedAt = completedAt
				} else if !wasCompleted || existing.CompletedAt == nil {
					now := time.Now()
					existing.CompletedAt = &now
				}
			}
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			record = existing
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			fresh := courseModels.StudentProgress{
				StudentID: studentID,
				LessonID:  lessonID,
				Completed: completed,
				Score:     score,
			}
			if completed {
				if completedAt != nil {
					fresh.CompletedAt = completedAt
				} else {
					now := time.Now()
					fresh.CompletedAt = &now
				}
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
			record = fresh
		default:
			return findErr
		}

		// Enrollment progress is only touched by actual completions
		if !completed {
			return nil
		}

		percentage, err := coursePercentage(tx, studentID, chapter.CourseID)
		if err != nil {
			return err
		}

		enrollment, err := EnsureEnrollment(tx, studentID, chapter.CourseID)
		if err != nil {
			return err
		}

		enrollment.Progress = percentage
		return tx.Save(enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// EnsureEnrollment returns the student's enrollment for the course, creating
// a zero-progress one if none exists yet (auto-enrollment on first progress
// event).
func EnsureEnrollment(tx *gorm.DB, studentID, courseID uint) (*courseModels.Enrollment, error) {
	var enrollment courseModels.Enrollment
	err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err == nil {
		return &enrollment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment = courseModels.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
		Progress:   0,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// RecomputeCourseProgress re-derives and stores the enrollment percentage for
// an existing enrollment. Used by the nightly repair job.
func (s *Service) RecomputeCourseProgress(studentID, courseID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var enrollment courseModels.Enrollment
		if err := tx.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error; err != nil {
			return err
		}

		percentage, err := coursePercentage(tx, studentID, courseID)
		if err != nil {
			return err
		}

		if enrollment.Progress == percentage {
			return nil
		}
		enrollment.Progress = percentage
		return tx.Save(&enrollment).Error
	})
}

// coursePercentage computes round(100 * completed / total) over the course's
// full lesson set, 0 when the course has no lessons.
func coursePercentage(tx *gorm.DB, studentID, courseID uint) (int, error) {
	var totalLessons int64
	err := tx.Model(&courseModels.Lesson{}).
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("chapters.course_id = ? AND chapters.deleted_at IS NULL", courseID).
		Count(&totalLessons).Error
	if err != nil {
		return 0, err
	}

	if totalLessons == 0 {
		return 0, nil
	}

	var completedCount int64
	err = tx.Model(&courseModels.StudentProgress{}).
		Joins("JOIN lessons ON lessons.id = student_progresses.lesson_id").
		Joins("JOIN chapters ON chapters.id = lessons.chapter_id").
		Where("student_progresses.student_id = ? AND student_progresses.completed = ?", studentID, true).
		Where("chapters.course_id = ? AND lessons.deleted_at IS NULL AND chapters.deleted_at IS NULL", courseID).
		Count(&completedCount).Error
	if err != nil {
		return 0, err
	}

	return int(math.Round(float64(completedCount) * 100 / float64(totalLessons))), nil
}
