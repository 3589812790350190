package services

import (
	"log"

	"lms/models"

	"gorm.io/gorm"
)

// Logical events emitted by the core. Delivery is fire-and-forget.
const (
	EventLessonCompleted = "lesson_completed"
	EventCourseCompleted = "course_completed"
	EventAttemptGraded   = "attempt_graded"
)

var eventTypes = map[string]string{
	EventLessonCompleted: "COURSE_UPDATE",
	EventCourseCompleted: "SUCCESS",
	EventAttemptGraded:   "INFO",
}

// emitEvent records a logical event as a notification row. A failed
// insert is logged and swallowed: notifications must never roll back
// the state change that produced them.
func emitEvent(db *gorm.DB, userID, event, title, message string) {
	notifType, ok := eventTypes[event]
	if !ok {
		notifType = "INFO"
	}

	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Event:   event,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("[NOTIFY] Failed to record %s for user %s: %v", event, userID, err)
	}
}
