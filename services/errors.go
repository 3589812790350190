package services

import "errors"

// Typed failures surfaced to callers. None are retried here; retry on
// transaction conflicts is the caller's policy.
var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateEnrollment  = errors.New("active enrollment already exists for this course")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrIncompleteCourse     = errors.New("course progress is not 100 percent")
	ErrCourseMismatch       = errors.New("lesson does not belong to this course")
	ErrMaxAttemptsExceeded  = errors.New("maximum attempts for this assessment reached")
	ErrAttemptNotInProgress = errors.New("attempt is not in progress")
	ErrInvalidScore         = errors.New("awarded points outside the allowed range")
)
