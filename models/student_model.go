package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Student struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID   string          `gorm:"size:50;not null;uniqueIndex" json:"student_id"`
	FirstName   string          `gorm:"size:100;not null" json:"first_name"`
	LastName    string          `gorm:"size:100;not null" json:"last_name"`
	Email       *string         `gorm:"size:254;index" json:"email"`
	DateOfBirth *datatypes.Date `json:"date_of_birth"`

	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`

	Certificates []Certificate `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Student) TableName() string { return "certificate_student" }

// FullName is derived on read and never persisted.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
