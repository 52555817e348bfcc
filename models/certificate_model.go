package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const StatusActive = "active"

type Certificate struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	CourseID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	IssueDate  datatypes.Date `gorm:"not null"`
	ExpiryDate *datatypes.Date
	UniqueCode string  `gorm:"size:50;not null;uniqueIndex"`
	Signature  *string `gorm:"size:64;uniqueIndex"`
	Status     string  `gorm:"size:20;not null;default:active"`

	// DocumentURL points at the archived rendering; it is not signed.
	DocumentURL *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamp"`
	UpdatedAt time.Time `gorm:"type:timestamp"`

	Student Student `gorm:"foreignKey:StudentID"`
	Course  Course  `gorm:"foreignKey:CourseID"`
}

func (Certificate) TableName() string { return "certificate_certificate" }

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	return nil
}

// HasRelations reports whether Student and Course were loaded alongside the row.
func (c *Certificate) HasRelations() bool {
	return c.Student.ID != uuid.Nil && c.Course.ID != uuid.Nil
}
