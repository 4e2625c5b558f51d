package models

import (
	"github.com/google/uuid"
	"time"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// Request — заявка на обмен навыками между двумя пользователями
type Request struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SenderID     uuid.UUID `gorm:"not null"`
	ReceiverID   uuid.UUID `gorm:"not null"`
	Status       string    `gorm:"default:'pending';check:status IN ('pending','accepted','rejected')"`
	Message      string    `gorm:"size:500"`
	CreatedAt    time.Time
	ResponseDate *time.Time

	// Связи
	Sender          User    `gorm:"foreignKey:SenderID"`
	Receiver        User    `gorm:"foreignKey:ReceiverID"`
	RequestedSkills []Skill `gorm:"many2many:request_skills"`
}
