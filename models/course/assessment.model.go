package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assessment types
const (
	AssessmentQuiz       = "QUIZ"
	AssessmentExam       = "EXAM"
	AssessmentAssignment = "ASSIGNMENT"
	AssessmentProject    = "PROJECT"
)

// Question types. MULTIPLE_CHOICE, TRUE_FALSE and FILL_BLANK are
// auto-gradable; the rest require manual grading.
const (
	QuestionMultipleChoice = "MULTIPLE_CHOICE"
	QuestionTrueFalse      = "TRUE_FALSE"
	QuestionShortAnswer    = "SHORT_ANSWER"
	QuestionEssay          = "ESSAY"
	QuestionCode           = "CODE"
	QuestionFillBlank      = "FILL_BLANK"
)

// Assessment is a gradable unit (quiz/exam/assignment/project) within a course
type Assessment struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	CourseID     string    `gorm:"index;not null" json:"course_id"`
	LessonID     string    `gorm:"index" json:"lesson_id,omitempty"` // optional lesson binding
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Type         string    `gorm:"default:'QUIZ'" json:"type"`
	TimeLimit    int       `gorm:"default:0" json:"time_limit"` // in minutes, 0 = unlimited
	Attempts     int       `gorm:"default:1" json:"attempts"`   // max attempts per user
	PassingScore int       `gorm:"default:70" json:"passing_score"`
	IsRequired   bool      `gorm:"default:false" json:"is_required"`
	OrderIndex   int       `gorm:"default:0" json:"order_index"`
	IsDeleted    bool      `gorm:"default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Question belongs to an assessment
type Question struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	AssessmentID  string         `gorm:"index;not null" json:"assessment_id"`
	Question      string         `gorm:"type:text;not null" json:"question"`
	Type          string         `gorm:"default:'MULTIPLE_CHOICE'" json:"type"`
	Options       datatypes.JSON `json:"options"` // for multiple choice questions
	CorrectAnswer string         `json:"correct_answer"`
	Explanation   string         `json:"explanation"`
	Points        int            `gorm:"default:1" json:"points"`
	OrderIndex    int            `gorm:"default:0" json:"order_index"`
	IsDeleted     bool           `gorm:"default:false" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
