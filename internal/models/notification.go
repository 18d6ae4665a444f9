package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationSchedule   NotificationType = "Schedule"
	NotificationPayment    NotificationType = "Payment"
	NotificationAttendance NotificationType = "Attendance"
	NotificationMessage    NotificationType = "Message"
	NotificationSystem     NotificationType = "System"
	NotificationEmergency  NotificationType = "Emergency"
	NotificationReview     NotificationType = "Review"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

type NotificationStatus string

const (
	NotificationUnread   NotificationStatus = "Unread"
	NotificationRead     NotificationStatus = "Read"
	NotificationArchived NotificationStatus = "Archived"
)

type RelatedTo struct {
	Model string     `json:"model" binding:"omitempty,related_model"`
	ID    *uuid.UUID `json:"id"`
}

type Notification struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	RecipientID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipientId"`
	Recipient   *User     `gorm:"foreignKey:RecipientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"recipient,omitempty"`

	SenderID *uuid.UUID `gorm:"type:uuid;index" json:"senderId"`
	Sender   *User      `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sender,omitempty"`

	Type      NotificationType   `gorm:"size:20;not null" json:"type"`
	Title     string             `gorm:"size:200;not null" json:"title"`
	Message   string             `gorm:"type:text;not null" json:"message"`
	RelatedTo RelatedTo          `gorm:"type:jsonb;serializer:json" json:"relatedTo"`
	Priority  Priority           `gorm:"size:10;default:'Medium'" json:"priority"`
	Status    NotificationStatus `gorm:"size:10;default:'Unread';index" json:"status"`

	ActionRequired bool       `gorm:"default:false" json:"actionRequired"`
	ActionURL      string     `gorm:"size:255" json:"actionUrl"`
	ReadAt         *time.Time `json:"readAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	ensureID(&n.ID)
	return nil
}

type NotificationPreference struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID       uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	EmailEnabled bool               `gorm:"not null" json:"emailEnabled"`
	MutedTypes   []NotificationType `gorm:"type:jsonb;serializer:json" json:"mutedTypes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *NotificationPreference) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (p *NotificationPreference) Muted(t NotificationType) bool {
	for _, m := range p.MutedTypes {
		if m == t {
			return true
		}
	}
	return false
}
