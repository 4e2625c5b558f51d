package database

import (
	"errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skillswap/internal/models"
)

func (d *Database) Connect(dsn string) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(&models.User{}, &models.Skill{}, &models.Request{})
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
