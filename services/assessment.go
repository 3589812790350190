package services

import (
	"fmt"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// StartAttempt opens a new attempt for a user. The attempt-count check
// and the insert share one transaction so racing requests cannot push
// the user past the configured limit. MaxScore freezes the sum of
// question points at creation time.
func StartAttempt(db *gorm.DB, assessmentID, userID string) (*courseModels.AssessmentAttempt, error) {
	var attempt courseModels.AssessmentAttempt

	err := db.Transaction(func(tx *gorm.DB) error {
		// Locking the assessment row makes the attempt-count check and
		// the insert one atomic unit under concurrent starts.
		var assessment courseModels.Assessment
		if err := lockForUpdate(tx).Where("id = ? AND is_deleted = ?", assessmentID, false).First(&assessment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		// Cancelled attempts do not count toward the limit.
		var used int64
		err := tx.Model(&courseModels.AssessmentAttempt{}).
			Where("assessment_id = ? AND user_id = ? AND status != ?",
				assessmentID, userID, courseModels.AttemptCancelled).
			Count(&used).Error
		if err != nil {
			return err
		}
		if int(used) >= assessment.Attempts {
			return ErrMaxAttemptsExceeded
		}

		var maxScore int
		err = tx.Model(&courseModels.Question{}).
			Where("assessment_id = ? AND is_deleted = ?", assessmentID, false).
			Select("COALESCE(SUM(points), 0)").Scan(&maxScore).Error
		if err != nil {
			return err
		}

		var lastNumber int
		err = tx.Model(&courseModels.AssessmentAttempt{}).
			Where("assessment_id = ? AND user_id = ?", assessmentID, userID).
			Select("COALESCE(MAX(attempt_number), 0)").Scan(&lastNumber).Error
		if err != nil {
			return err
		}

		attempt = courseModels.AssessmentAttempt{
			AssessmentID:  assessmentID,
			UserID:        userID,
			Status:        courseModels.AttemptInProgress,
			MaxScore:      maxScore,
			AttemptNumber: lastNumber + 1,
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// SubmitAnswer stores (or replaces) the user's answer to one question
// of an in-progress attempt. Auto-gradable types are graded on the
// spot; manual types stay pending until an instructor grades them.
func SubmitAnswer(db *gorm.DB, attemptID, questionID, rawAnswer string) (*courseModels.Answer, error) {
	var answer courseModels.Answer

	err := db.Transaction(func(tx *gorm.DB) error {
		var attempt courseModels.AssessmentAttempt
		if err := lockForUpdate(tx).Where("id = ?", attemptID).First(&attempt).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if attempt.Status != courseModels.AttemptInProgress {
			return ErrAttemptNotInProgress
		}

		var question courseModels.Question
		if err := tx.Where("id = ? AND assessment_id = ? AND is_deleted = ?",
			questionID, attempt.AssessmentID, false).First(&question).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		// One answer per (attempt, question); re-answering overwrites.
		err := tx.Where("assessment_attempt_id = ? AND question_id = ?", attemptID, questionID).
			First(&answer).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if err == gorm.ErrRecordNotFound {
			answer = courseModels.Answer{
				AssessmentAttemptID: attemptID,
				QuestionID:          questionID,
			}
		}

		now := time.Now()
		answer.Answer = rawAnswer
		answer.SubmittedAt = now
		if grader, auto := graderFor(question.Type); auto {
			isCorrect, points := grader.grade(&question, rawAnswer)
			answer.IsCorrect = &isCorrect
			answer.Points = points
			answer.GradedAt = &now
		} else {
			answer.IsCorrect = nil
			answer.Points = 0
			answer.GradedAt = nil
		}
		return tx.Save(&answer).Error
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// SubmitAttempt closes an in-progress attempt. When every answer is
// already graded the attempt finalizes to GRADED immediately;
// otherwise it stays SUBMITTED pending manual grading.
func SubmitAttempt(db *gorm.DB, attemptID string) (*courseModels.AssessmentAttempt, error) {
	var attempt courseModels.AssessmentAttempt

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", attemptID).First(&attempt).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if attempt.Status != courseModels.AttemptInProgress {
			return ErrAttemptNotInProgress
		}

		now := time.Now()
		attempt.SubmittedAt = &now
		attempt.TimeSpent = int(now.Sub(attempt.StartedAt).Seconds())
		attempt.Status = courseModels.AttemptSubmitted

		pending, err := countPendingAnswers(tx, attemptID)
		if err != nil {
			return err
		}
		if pending == 0 {
			return finalizeAttempt(tx, &attempt)
		}
		return tx.Save(&attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// GradeManualAnswer supplies the score for a manually-graded answer.
// Only valid while the parent attempt is SUBMITTED; once the last
// pending answer is graded the attempt finalizes automatically.
func GradeManualAnswer(db *gorm.DB, answerID string, points float64, feedback string) (*courseModels.Answer, error) {
	var answer courseModels.Answer

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", answerID).First(&answer).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		var attempt courseModels.AssessmentAttempt
		if err := lockForUpdate(tx).Where("id = ?", answer.AssessmentAttemptID).First(&attempt).Error; err != nil {
			return err
		}
		if attempt.Status != courseModels.AttemptSubmitted {
			return ErrInvalidTransition
		}

		var question courseModels.Question
		if err := tx.Where("id = ?", answer.QuestionID).First(&question).Error; err != nil {
			return err
		}
		if points < 0 || points > float64(question.Points) {
			return ErrInvalidScore
		}

		now := time.Now()
		isCorrect := points == float64(question.Points)
		answer.IsCorrect = &isCorrect
		answer.Points = points
		answer.Feedback = feedback
		answer.GradedAt = &now
		if err := tx.Save(&answer).Error; err != nil {
			return err
		}

		pending, err := countPendingAnswers(tx, attempt.ID)
		if err != nil {
			return err
		}
		if pending == 0 {
			return finalizeAttempt(tx, &attempt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// CancelAttempt abandons an in-progress attempt. Cancelled attempts
// never count toward the attempt limit.
func CancelAttempt(db *gorm.DB, attemptID string) (*courseModels.AssessmentAttempt, error) {
	var attempt courseModels.AssessmentAttempt

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", attemptID).First(&attempt).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if attempt.Status != courseModels.AttemptInProgress {
			return ErrInvalidTransition
		}
		attempt.Status = courseModels.AttemptCancelled
		return tx.Save(&attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func countPendingAnswers(tx *gorm.DB, attemptID string) (int64, error) {
	var pending int64
	err := tx.Model(&courseModels.Answer{}).
		Where("assessment_attempt_id = ? AND is_correct IS NULL", attemptID).
		Count(&pending).Error
	return pending, err
}

// finalizeAttempt rolls awarded points up into the percentage score
// and transitions the attempt to GRADED.
func finalizeAttempt(tx *gorm.DB, attempt *courseModels.AssessmentAttempt) error {
	var total float64
	err := tx.Model(&courseModels.Answer{}).
		Where("assessment_attempt_id = ?", attempt.ID).
		Select("COALESCE(SUM(points), 0)").Scan(&total).Error
	if err != nil {
		return err
	}

	score := 0.0
	if attempt.MaxScore > 0 {
		score = round2(total / float64(attempt.MaxScore) * 100)
	}
	attempt.Score = &score
	attempt.Status = courseModels.AttemptGraded
	if err := tx.Save(attempt).Error; err != nil {
		return err
	}

	emitEvent(tx, attempt.UserID, EventAttemptGraded, "Assessment graded",
		fmt.Sprintf("Your attempt #%d was graded: %.2f%%.", attempt.AttemptNumber, score))
	return nil
}
