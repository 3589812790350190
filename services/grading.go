package services

import (
	"strings"

	courseModels "lms/models/course"
)

// gradable is the capability implemented by question types whose
// correctness can be determined without human judgment.
type gradable interface {
	grade(question *courseModels.Question, rawAnswer string) (isCorrect bool, points float64)
}

// exactMatchGrader awards full points on an exact match against the
// stored correct answer, zero otherwise.
type exactMatchGrader struct{}

func (exactMatchGrader) grade(question *courseModels.Question, rawAnswer string) (bool, float64) {
	if strings.TrimSpace(rawAnswer) == strings.TrimSpace(question.CorrectAnswer) {
		return true, float64(question.Points)
	}
	return false, 0
}

var autoGraders = map[string]gradable{
	courseModels.QuestionMultipleChoice: exactMatchGrader{},
	courseModels.QuestionTrueFalse:      exactMatchGrader{},
	courseModels.QuestionFillBlank:      exactMatchGrader{},
}

// graderFor returns the auto-grader for a question type; ok is false
// for manually-graded types (short answer, essay, code).
func graderFor(questionType string) (gradable, bool) {
	grader, ok := autoGraders[questionType]
	return grader, ok
}
