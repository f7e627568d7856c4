package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Filename     string     `gorm:"type:text;not null" json:"filename"`
	OriginalText string     `gorm:"type:text;not null" json:"original_text"`
	FileSize     int64      `gorm:"not null" json:"file_size"`
	MimeType     string     `gorm:"type:text" json:"mime_type"`
	// ObjectKey is set only when the raw upload was archived to object storage.
	ObjectKey  string    `gorm:"type:text" json:"object_key,omitempty"`
	UploadedAt time.Time `gorm:"not null;index" json:"uploaded_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
