package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func twoQuestionQuiz(t *testing.T, db *gorm.DB) (*courseModels.Assessment, []courseModels.Question, *models.User) {
	t.Helper()
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)
	assessment, questions := seedAssessment(t, db, crs.ID, 3, 70,
		courseModels.Question{Type: courseModels.QuestionMultipleChoice, CorrectAnswer: "B", Points: 5},
		courseModels.Question{Type: courseModels.QuestionTrueFalse, CorrectAnswer: "true", Points: 10},
	)
	return assessment, questions, student
}

func TestStartAttemptFreezesMaxScoreAndNumbers(t *testing.T) {
	db := setupTestDB(t)
	assessment, _, student := twoQuestionQuiz(t, db)

	first, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.AttemptInProgress, first.Status)
	assert.Equal(t, 15, first.MaxScore)
	assert.Equal(t, 1, first.AttemptNumber)

	second, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.AttemptNumber)
}

func TestStartAttemptEnforcesLimit(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)
	assessment, _ := seedAssessment(t, db, crs.ID, 2, 70,
		courseModels.Question{Type: courseModels.QuestionMultipleChoice, CorrectAnswer: "A", Points: 1},
	)

	for i := 0; i < 2; i++ {
		_, err := StartAttempt(db, assessment.ID, student.ID)
		require.NoError(t, err)
	}

	_, err := StartAttempt(db, assessment.ID, student.ID)
	assert.ErrorIs(t, err, ErrMaxAttemptsExceeded)
}

func TestStartAttemptIgnoresCancelled(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)
	assessment, _ := seedAssessment(t, db, crs.ID, 1, 70,
		courseModels.Question{Type: courseModels.QuestionMultipleChoice, CorrectAnswer: "A", Points: 1},
	)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)
	_, err = CancelAttempt(db, attempt.ID)
	require.NoError(t, err)

	// The cancelled attempt freed the slot, but numbering still advances.
	retry, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, retry.AttemptNumber)
}

func TestSubmitAttemptFullMarks(t *testing.T) {
	db := setupTestDB(t)
	assessment, questions, student := twoQuestionQuiz(t, db)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)

	_, err = SubmitAnswer(db, attempt.ID, questions[0].ID, "B")
	require.NoError(t, err)
	_, err = SubmitAnswer(db, attempt.ID, questions[1].ID, "true")
	require.NoError(t, err)

	graded, err := SubmitAttempt(db, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.AttemptGraded, graded.Status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 100.0, *graded.Score)
	assert.True(t, graded.Passed(assessment.PassingScore))
}

func TestSubmitAttemptPartialScoreFails(t *testing.T) {
	db := setupTestDB(t)
	assessment, questions, student := twoQuestionQuiz(t, db)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)

	// Only the 5-point question answered correctly: 5/15 = 33.33.
	_, err = SubmitAnswer(db, attempt.ID, questions[0].ID, "B")
	require.NoError(t, err)
	_, err = SubmitAnswer(db, attempt.ID, questions[1].ID, "false")
	require.NoError(t, err)

	graded, err := SubmitAttempt(db, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.AttemptGraded, graded.Status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 33.33, *graded.Score)
	assert.False(t, graded.Passed(assessment.PassingScore))
}

func TestSubmitAnswerOverwritesPreviousAnswer(t *testing.T) {
	db := setupTestDB(t)
	assessment, questions, student := twoQuestionQuiz(t, db)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)

	wrong, err := SubmitAnswer(db, attempt.ID, questions[0].ID, "A")
	require.NoError(t, err)
	require.NotNil(t, wrong.IsCorrect)
	assert.False(t, *wrong.IsCorrect)

	corrected, err := SubmitAnswer(db, attempt.ID, questions[0].ID, "B")
	require.NoError(t, err)
	assert.Equal(t, wrong.ID, corrected.ID)
	require.NotNil(t, corrected.IsCorrect)
	assert.True(t, *corrected.IsCorrect)
	assert.Equal(t, 5.0, corrected.Points)

	var count int64
	require.NoError(t, db.Model(&courseModels.Answer{}).
		Where("assessment_attempt_id = ?", attempt.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSubmitAnswerGuards(t *testing.T) {
	db := setupTestDB(t)
	assessment, questions, student := twoQuestionQuiz(t, db)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)

	_, err = SubmitAnswer(db, attempt.ID, "no-such-question", "B")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = SubmitAnswer(db, attempt.ID, questions[0].ID, "B")
	require.NoError(t, err)
	_, err = SubmitAnswer(db, attempt.ID, questions[1].ID, "true")
	require.NoError(t, err)
	_, err = SubmitAttempt(db, attempt.ID)
	require.NoError(t, err)

	_, err = SubmitAnswer(db, attempt.ID, questions[0].ID, "A")
	assert.ErrorIs(t, err, ErrAttemptNotInProgress)

	_, err = SubmitAttempt(db, attempt.ID)
	assert.ErrorIs(t, err, ErrAttemptNotInProgress)
}

func TestManualGradingFlow(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)
	assessment, questions := seedAssessment(t, db, crs.ID, 1, 70,
		courseModels.Question{Type: courseModels.QuestionMultipleChoice, CorrectAnswer: "C", Points: 10},
		courseModels.Question{Type: courseModels.QuestionEssay, Points: 10},
	)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)

	_, err = SubmitAnswer(db, attempt.ID, questions[0].ID, "C")
	require.NoError(t, err)
	essay, err := SubmitAnswer(db, attempt.ID, questions[1].ID, "A long essay about learning.")
	require.NoError(t, err)
	assert.Nil(t, essay.IsCorrect, "manual types stay ungraded on submission")

	// With a pending manual grade the attempt stays SUBMITTED.
	submitted, err := SubmitAttempt(db, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.AttemptSubmitted, submitted.Status)
	assert.Nil(t, submitted.Score)

	_, err = GradeManualAnswer(db, essay.ID, 11, "over the limit")
	assert.ErrorIs(t, err, ErrInvalidScore)
	_, err = GradeManualAnswer(db, essay.ID, -1, "negative")
	assert.ErrorIs(t, err, ErrInvalidScore)

	gradedAnswer, err := GradeManualAnswer(db, essay.ID, 5, "half credit")
	require.NoError(t, err)
	require.NotNil(t, gradedAnswer.IsCorrect)
	assert.False(t, *gradedAnswer.IsCorrect)
	assert.Equal(t, "half credit", gradedAnswer.Feedback)

	// Grading the last pending answer finalized the attempt: 15/20 = 75.
	var finalized courseModels.AssessmentAttempt
	require.NoError(t, db.First(&finalized, "id = ?", attempt.ID).Error)
	assert.Equal(t, courseModels.AttemptGraded, finalized.Status)
	require.NotNil(t, finalized.Score)
	assert.Equal(t, 75.0, *finalized.Score)
	assert.True(t, finalized.Passed(assessment.PassingScore))

	// Graded attempts are immutable.
	_, err = GradeManualAnswer(db, essay.ID, 10, "regrade")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGradeManualAnswerRequiresSubmittedAttempt(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)
	assessment, questions := seedAssessment(t, db, crs.ID, 1, 70,
		courseModels.Question{Type: courseModels.QuestionShortAnswer, Points: 4},
	)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)
	answer, err := SubmitAnswer(db, attempt.ID, questions[0].ID, "short answer")
	require.NoError(t, err)

	// Still in progress: grading is premature.
	_, err = GradeManualAnswer(db, answer.ID, 4, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitAttemptEmitsGradedEvent(t *testing.T) {
	db := setupTestDB(t)
	assessment, questions, student := twoQuestionQuiz(t, db)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)
	_, err = SubmitAnswer(db, attempt.ID, questions[0].ID, "B")
	require.NoError(t, err)
	_, err = SubmitAnswer(db, attempt.ID, questions[1].ID, "true")
	require.NoError(t, err)
	_, err = SubmitAttempt(db, attempt.ID)
	require.NoError(t, err)

	var events int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND event = ?", student.ID, EventAttemptGraded).Count(&events).Error)
	assert.EqualValues(t, 1, events)
}

func TestCancelAttemptTransitions(t *testing.T) {
	db := setupTestDB(t)
	assessment, questions, student := twoQuestionQuiz(t, db)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)

	cancelled, err := CancelAttempt(db, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.AttemptCancelled, cancelled.Status)

	_, err = CancelAttempt(db, attempt.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = SubmitAnswer(db, attempt.ID, questions[0].ID, "B")
	assert.ErrorIs(t, err, ErrAttemptNotInProgress)
}

func TestAttemptWithNoQuestions(t *testing.T) {
	db := setupTestDB(t)
	crs, _ := seedCourse(t, db, 1)
	student := seedStudent(t, db)
	assessment, _ := seedAssessment(t, db, crs.ID, 1, 70)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, attempt.MaxScore)

	graded, err := SubmitAttempt(db, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.AttemptGraded, graded.Status)
	require.NotNil(t, graded.Score)
	assert.Equal(t, 0.0, *graded.Score)
}

func TestSubmitAnswerStampsGradedAtForAutoTypes(t *testing.T) {
	db := setupTestDB(t)
	assessment, questions, student := twoQuestionQuiz(t, db)

	attempt, err := StartAttempt(db, assessment.ID, student.ID)
	require.NoError(t, err)

	// Auto-graded answers carry a grading timestamp immediately.
	auto, err := SubmitAnswer(db, attempt.ID, questions[0].ID, "B")
	require.NoError(t, err)
	require.NotNil(t, auto.IsCorrect)
	assert.NotNil(t, auto.GradedAt)

	// Manual types stay ungraded until an instructor acts.
	crs2, _ := seedCourse(t, db, 1)
	essayAssessment, essayQuestions := seedAssessment(t, db, crs2.ID, 1, 70,
		courseModels.Question{Type: courseModels.QuestionEssay, Points: 10},
	)
	essayAttempt, err := StartAttempt(db, essayAssessment.ID, student.ID)
	require.NoError(t, err)
	pending, err := SubmitAnswer(db, essayAttempt.ID, essayQuestions[0].ID, "free text")
	require.NoError(t, err)
	assert.Nil(t, pending.IsCorrect)
	assert.Nil(t, pending.GradedAt)
}
