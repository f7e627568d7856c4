package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"type:text;uniqueIndex;not null" json:"username"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
