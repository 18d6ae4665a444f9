package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type Medication struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Schedule string `json:"schedule"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type MedicalInfo struct {
	Allergies        []string         `json:"allergies"`
	Medications      []Medication     `json:"medications"`
	Conditions       []string         `json:"conditions"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

type ChildPreferences struct {
	FavoriteActivities  []string `json:"favoriteActivities"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	NapSchedule         string   `json:"napSchedule"`
	Bedtime             string   `json:"bedtime"`
}

type Child struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	FirstName   string `gorm:"size:100;not null" json:"firstName"`
	LastName    string `gorm:"size:100;not null" json:"lastName"`
	DateOfBirth Date   `gorm:"not null" json:"dateOfBirth"`
	Gender      Gender `gorm:"size:10;not null" json:"gender"`

	ParentID uuid.UUID `gorm:"type:uuid;not null;index" json:"parentId"`
	Parent   *User     `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent,omitempty"`

	MedicalInfo MedicalInfo      `gorm:"type:jsonb;serializer:json" json:"medicalInfo"`
	Preferences ChildPreferences `gorm:"type:jsonb;serializer:json" json:"preferences"`
	Photo       string           `gorm:"size:255" json:"photo"`
	IsActive    bool             `gorm:"not null" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Child) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// BeforeSave keeps list fields as [] instead of null in jsonb and responses.
func (c *Child) BeforeSave(tx *gorm.DB) error {
	m := &c.MedicalInfo
	m.Allergies = orEmpty(m.Allergies)
	m.Medications = orEmpty(m.Medications)
	m.Conditions = orEmpty(m.Conditions)
	p := &c.Preferences
	p.FavoriteActivities = orEmpty(p.FavoriteActivities)
	p.DietaryRestrictions = orEmpty(p.DietaryRestrictions)
	return nil
}

func (c *Child) FullName() string {
	return c.FirstName + " " + c.LastName
}
