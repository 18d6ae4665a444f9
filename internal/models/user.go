package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleBabysitter Role = "babysitter"
	RoleParent     Role = "parent"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FirstName      string     `gorm:"size:100;not null" json:"firstName"`
	LastName       string     `gorm:"size:100;not null" json:"lastName"`
	Email          string     `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	Role           Role       `gorm:"size:20;default:'parent';index" json:"role"`
	Phone          string     `gorm:"size:30" json:"phone"`
	ProfilePicture string     `gorm:"size:255" json:"profilePicture"`
	LastLogin      *time.Time `json:"lastLogin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
