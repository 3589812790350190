package services

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
)

func TestGraderForAutoGradableTypes(t *testing.T) {
	for _, questionType := range []string{
		courseModels.QuestionMultipleChoice,
		courseModels.QuestionTrueFalse,
		courseModels.QuestionFillBlank,
	} {
		_, auto := graderFor(questionType)
		assert.True(t, auto, "%s should be auto-gradable", questionType)
	}

	for _, questionType := range []string{
		courseModels.QuestionShortAnswer,
		courseModels.QuestionEssay,
		courseModels.QuestionCode,
	} {
		_, auto := graderFor(questionType)
		assert.False(t, auto, "%s requires manual grading", questionType)
	}
}

func TestExactMatchGrader(t *testing.T) {
	question := &courseModels.Question{CorrectAnswer: "B", Points: 5}
	grader := exactMatchGrader{}

	correct, points := grader.grade(question, "B")
	assert.True(t, correct)
	assert.Equal(t, 5.0, points)

	correct, points = grader.grade(question, " B ")
	assert.True(t, correct, "surrounding whitespace is ignored")
	assert.Equal(t, 5.0, points)

	correct, points = grader.grade(question, "b")
	assert.False(t, correct, "match is case sensitive")
	assert.Equal(t, 0.0, points)

	correct, points = grader.grade(question, "A")
	assert.False(t, correct)
	assert.Equal(t, 0.0, points)
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 0.0, roundPercent(0, 0))
	assert.Equal(t, 0.0, roundPercent(3, 0))
	assert.Equal(t, 33.33, roundPercent(1, 3))
	assert.Equal(t, 66.67, roundPercent(2, 3))
	assert.Equal(t, 71.43, roundPercent(5, 7))
	assert.Equal(t, 100.0, roundPercent(4, 4))
	assert.Equal(t, 12.5, roundPercent(1, 8))
}
