package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityLog struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ActorID  *uuid.UUID `gorm:"type:uuid;index" json:"actorId"`
	Action   string     `gorm:"size:50;not null;index" json:"action"`
	Entity   string     `gorm:"size:50;index" json:"entity"`
	EntityID *uuid.UUID `gorm:"type:uuid" json:"entityId"`
	Metadata string     `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}
