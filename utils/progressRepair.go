package utils

import (
	"fmt"
	"log"
	"time"

	"lms/database"
	courseModels "lms/models/course"
	"lms/services/progress"

	"github.com/robfig/cron/v3"
)

// logRepair logs repair job events with timestamp
func logRepair(message string) {
	log.Printf("[PROGRESS-REPAIR %s] %s", time.Now().Format(time.RFC3339), message)
}

// repairEnrollmentProgress re-derives the stored percentage for every
// enrollment from StudentProgress rows. Enrollment.Progress is always
// computed, never incremented, so a full recompute heals any drift left by
// concurrent completion events.
func repairEnrollmentProgress() {
	db := database.Database.Db
	svc := progress.NewService(db)

	var enrollments []courseModels.Enrollment
	if err := db.Find(&enrollments).Error; err != nil {
		logRepair("Error fetching enrollments: " + err.Error())
		return
	}

	repaired := 0
	for _, enrollment := range enrollments {
		if err := svc.RecomputeCourseProgress(enrollment.StudentID, enrollment.CourseID); err != nil {
			logRepair("Error recomputing enrollment: " + err.Error())
			continue
		}
		repaired++
	}

	logRepair(fmt.Sprintf("Recomputed progress for %d enrollments", repaired))
}

// InitializeProgressRepairScheduler starts the nightly progress repair job
func InitializeProgressRepairScheduler() *cron.Cron {
	c := cron.New()

	// Every night at 02:00
	c.AddFunc("0 2 * * *", func() {
		repairEnrollmentProgress()
	})

	c.Start()

	logRepair("Progress repair scheduler started - runs nightly at 02:00")
	return c
}
