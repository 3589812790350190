package utils

import (
	"lms/database"
	"lms/services"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeEnrollmentScheduler sets up the daily enrollment expiry job
func InitializeEnrollmentScheduler() {
	log.Println("[ENROLLMENT-SCHEDULER] Initializing enrollment scheduler...")

	c := cron.New()

	// Run daily at 2 AM to expire enrollments past their access window
	c.AddFunc("0 2 * * *", func() {
		log.Println("[ENROLLMENT-SCHEDULER] Running daily enrollment expiry check...")
		count, err := services.ExpireOverdueEnrollments(database.Database.Db)
		if err != nil {
			log.Printf("[ENROLLMENT-SCHEDULER] Error expiring enrollments: %v", err)
			return
		}
		log.Printf("[ENROLLMENT-SCHEDULER] Marked %d enrollments as EXPIRED", count)
	})

	c.Start()
	log.Println("[ENROLLMENT-SCHEDULER] Enrollment scheduler started - runs daily at 2 AM")
}
