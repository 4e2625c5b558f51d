package models

import (
	"github.com/google/uuid"
	"time"
)

type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time

	// Связи
	Users []User `gorm:"many2many:user_skills"`
}
