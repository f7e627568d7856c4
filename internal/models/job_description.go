package models

import (
	"time"

	"github.com/google/uuid"
)

type JobDescription struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Company     string    `gorm:"type:text" json:"company,omitempty"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
