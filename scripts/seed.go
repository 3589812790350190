package main

import (
	"encoding/json"
	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeds an admin, an instructor, a demo student and a published demo
// course with modules, lessons and a quiz. Safe to re-run: existing
// rows are kept.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	admin := seedUser(db, "Admin User", "admin@learnsphere.io", "admin12345", "ADMIN")
	instructor := seedUser(db, "Jane Instructor", "jane@learnsphere.io", "teach12345", "INSTRUCTOR")
	seedUser(db, "Demo Student", "student@learnsphere.io", "learn12345", "STUDENT")

	log.Printf("Seeded users: admin=%s instructor=%s", admin.ID, instructor.ID)

	seedDemoCourse(db, instructor.ID)

	log.Println("Seeding completed.")
}

func seedUser(db *gorm.DB, name, email, password, role string) *models.User {
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %s: %v", email, err)
	}
	return &user
}

func seedDemoCourse(db *gorm.DB, instructorID string) {
	var existing courseModels.Course
	if err := db.Where("title = ?", "Introduction to Go").First(&existing).Error; err == nil {
		log.Println("Demo course already exists, skipping.")
		return
	}

	course := courseModels.Course{
		Title:        "Introduction to Go",
		Description:  "A hands-on course covering the fundamentals of the Go programming language.",
		Level:        courseModels.LevelBeginner,
		Category:     "Programming",
		Duration:     240,
		Status:       courseModels.CoursePublished,
		IsPublished:  true,
		InstructorID: instructorID,
	}
	if err := db.Create(&course).Error; err != nil {
		log.Fatalf("Failed to create demo course: %v", err)
	}

	modules := []struct {
		title   string
		lessons []string
	}{
		{"Getting Started", []string{"Installing Go", "Your First Program", "The Go Toolchain"}},
		{"Language Basics", []string{"Variables and Types", "Control Flow", "Functions"}},
	}

	for i, m := range modules {
		module := courseModels.Module{
			CourseID:   course.ID,
			Title:      m.title,
			OrderIndex: i + 1,
		}
		if err := db.Create(&module).Error; err != nil {
			log.Fatalf("Failed to create module: %v", err)
		}
		for j, title := range m.lessons {
			lesson := courseModels.Lesson{
				ModuleID:   module.ID,
				Title:      title,
				Type:       courseModels.LessonText,
				OrderIndex: j + 1,
				IsFree:     i == 0 && j == 0,
			}
			if err := db.Create(&lesson).Error; err != nil {
				log.Fatalf("Failed to create lesson: %v", err)
			}
		}
	}

	quiz := courseModels.Assessment{
		CourseID:     course.ID,
		Title:        "Basics Quiz",
		Description:  "Checks the fundamentals from the first two modules.",
		Type:         courseModels.AssessmentQuiz,
		Attempts:     3,
		PassingScore: 70,
		IsRequired:   true,
		OrderIndex:   1,
	}
	if err := db.Create(&quiz).Error; err != nil {
		log.Fatalf("Failed to create quiz: %v", err)
	}

	options, _ := json.Marshal([]string{"go run", "go build", "go fmt", "go vet"})
	questions := []courseModels.Question{
		{
			AssessmentID:  quiz.ID,
			Question:      "Which command compiles and runs a Go program in one step?",
			Type:          courseModels.QuestionMultipleChoice,
			Options:       datatypes.JSON(options),
			CorrectAnswer: "go run",
			Points:        5,
			OrderIndex:    1,
		},
		{
			AssessmentID:  quiz.ID,
			Question:      "Go is a statically typed language.",
			Type:          courseModels.QuestionTrueFalse,
			CorrectAnswer: "true",
			Points:        5,
			OrderIndex:    2,
		},
		{
			AssessmentID: quiz.ID,
			Question:     "Explain the difference between a slice and an array.",
			Type:         courseModels.QuestionShortAnswer,
			Points:       10,
			OrderIndex:   3,
		},
	}
	for _, q := range questions {
		if err := db.Create(&q).Error; err != nil {
			log.Fatalf("Failed to create question: %v", err)
		}
	}

	log.Printf("Seeded demo course %s with quiz %s", course.ID, quiz.ID)
}
