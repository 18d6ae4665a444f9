package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   Date   `json:"date"`
}

type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Review struct {
	ParentID uuid.UUID `json:"parentId"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
}

type Babysitter struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	User   *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	HourlyRate     float64         `gorm:"not null" json:"hourlyRate"`
	Availability   []TimeWindow    `gorm:"type:jsonb;serializer:json" json:"availability"`
	Experience     int             `gorm:"not null" json:"experience"`
	Qualifications []string        `gorm:"type:jsonb;serializer:json" json:"qualifications"`
	Certifications []Certification `gorm:"type:jsonb;serializer:json" json:"certifications"`
	Languages      []string        `gorm:"type:jsonb;serializer:json" json:"languages"`
	AgeRange       AgeRange        `gorm:"type:jsonb;serializer:json" json:"ageRange"`
	MaxChildren    int             `gorm:"not null" json:"maxChildren"`
	Bio            string          `gorm:"type:text;not null" json:"bio"`
	Rating         float64         `gorm:"default:0" json:"rating"`
	Reviews        []Review        `gorm:"type:jsonb;serializer:json" json:"reviews"`
	IsAvailable    bool            `gorm:"not null;index" json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Babysitter) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

func (b *Babysitter) BeforeSave(tx *gorm.DB) error {
	b.Availability = orEmpty(b.Availability)
	b.Qualifications = orEmpty(b.Qualifications)
	b.Certifications = orEmpty(b.Certifications)
	b.Languages = orEmpty(b.Languages)
	b.Reviews = orEmpty(b.Reviews)
	return nil
}

// RecomputeRating sets Rating to the mean of all review ratings.
func (b *Babysitter) RecomputeRating() {
	if len(b.Reviews) == 0 {
		b.Rating = 0
		return
	}
	total := 0
	for _, r := range b.Reviews {
		total += r.Rating
	}
	b.Rating = float64(total) / float64(len(b.Reviews))
}
