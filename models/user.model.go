package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	ProfileImage string     `gorm:"default:''" json:"profile_image"`
	Name         string     `gorm:"default:''" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	Role         string     `gorm:"default:'STUDENT'" json:"role"` // STUDENT, INSTRUCTOR, ADMIN
	Password     string     `gorm:"not null" json:"-"`
	Bio          string     `json:"bio"`
	Points       int        `gorm:"default:0" json:"points"`
	LastLogin    *time.Time `json:"last_login"`
	IsDeleted    bool       `gorm:"default:false" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
