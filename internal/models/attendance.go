package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent        AttendanceStatus = "Present"
	AttendanceAbsent         AttendanceStatus = "Absent"
	AttendanceLate           AttendanceStatus = "Late"
	AttendanceEarlyDeparture AttendanceStatus = "Early Departure"
)

type CheckPoint struct {
	Time     *time.Time `json:"time"`
	Location string     `json:"location"`
	Notes    string     `json:"notes"`
}

type Activity struct {
	Name      string     `json:"name"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Notes     string     `json:"notes"`
}

type Meal struct {
	Type  string     `json:"type" binding:"omitempty,meal_type"`
	Time  *time.Time `json:"time"`
	Notes string     `json:"notes"`
}

type Nap struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Notes     string     `json:"notes"`
}

type Incident struct {
	Type             string `json:"type" binding:"omitempty,incident_type"`
	Description      string `json:"description"`
	ActionTaken      string `json:"actionTaken"`
	ReportedToParent bool   `json:"reportedToParent"`
}

type Attendance struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ChildID uuid.UUID `gorm:"type:uuid;not null;index" json:"childId"`
	Child   *Child    `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"child,omitempty"`

	BabysitterID uuid.UUID `gorm:"type:uuid;not null;index" json:"babysitterId"`
	Babysitter   *User     `gorm:"foreignKey:BabysitterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"babysitter,omitempty"`

	Date     Date             `gorm:"not null;index" json:"date"`
	CheckIn  CheckPoint       `gorm:"type:jsonb;serializer:json" json:"checkIn"`
	CheckOut CheckPoint       `gorm:"type:jsonb;serializer:json" json:"checkOut"`
	Status   AttendanceStatus `gorm:"size:20;default:'Present'" json:"status"`

	Activities []Activity `gorm:"type:jsonb;serializer:json" json:"activities"`
	Meals      []Meal     `gorm:"type:jsonb;serializer:json" json:"meals"`
	Naps       []Nap      `gorm:"type:jsonb;serializer:json" json:"naps"`
	Incidents  []Incident `gorm:"type:jsonb;serializer:json" json:"incidents"`

	ParentNotes     string `gorm:"type:text" json:"parentNotes"`
	BabysitterNotes string `gorm:"type:text" json:"babysitterNotes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
