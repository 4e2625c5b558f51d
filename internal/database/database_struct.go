// Package database — слой доступа к Postgres: пользователи, навыки, заявки.
// Переписка живет отдельно, в MongoDB (internal/chatdb).
package database

import "gorm.io/gorm"

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
