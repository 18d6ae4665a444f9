package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleStatus string

const (
	SchedulePending   ScheduleStatus = "Pending"
	ScheduleConfirmed ScheduleStatus = "Confirmed"
	ScheduleCancelled ScheduleStatus = "Cancelled"
	ScheduleCompleted ScheduleStatus = "Completed"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPaid          PaymentStatus = "Paid"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentRefunded      PaymentStatus = "Refunded"
)

type Recurrence struct {
	IsRecurring bool     `json:"isRecurring"`
	Frequency   string   `json:"frequency" binding:"omitempty,frequency"`
	DaysOfWeek  []string `json:"daysOfWeek" binding:"omitempty,dive,weekday"`
}

type Schedule struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ChildID uuid.UUID `gorm:"type:uuid;not null;index" json:"childId"`
	Child   *Child    `gorm:"foreignKey:ChildID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"child,omitempty"`

	BabysitterID uuid.UUID `gorm:"type:uuid;not null;index" json:"babysitterId"`
	Babysitter   *User     `gorm:"foreignKey:BabysitterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"babysitter,omitempty"`

	ParentID uuid.UUID `gorm:"type:uuid;not null;index" json:"parentId"`
	Parent   *User     `gorm:"foreignKey:ParentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"parent,omitempty"`

	StartDate Date         `gorm:"not null;index" json:"startDate"`
	EndDate   Date         `gorm:"not null" json:"endDate"`
	Recurring Recurrence   `gorm:"type:jsonb;serializer:json" json:"recurring"`
	TimeSlots []TimeWindow `gorm:"type:jsonb;serializer:json" json:"timeSlots"`

	Location            string         `gorm:"size:255;not null" json:"location"`
	Status              ScheduleStatus `gorm:"size:20;default:'Pending';index" json:"status"`
	Notes               string         `gorm:"type:text" json:"notes"`
	SpecialInstructions string         `gorm:"type:text" json:"specialInstructions"`
	Rate                float64        `gorm:"not null" json:"rate"`
	PaymentStatus       PaymentStatus  `gorm:"size:20;default:'Pending'" json:"paymentStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
