package database

import (
	"time"

	"skillswap/internal/models"
)

func (d *Database) CreateRequest(request *models.Request) error {
	return d.db.Create(request).Error
}

func (d *Database) GetRequest(id string) (*models.Request, error) {
	var request models.Request
	err := d.db.
		Preload("Sender").
		Preload("Receiver").
		Preload("RequestedSkills").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetIncomingRequests возвращает заявки, адресованные пользователю
func (d *Database) GetIncomingRequests(userID string) ([]models.Request, error) {
	var requests []models.Request
	err := d.db.
		Where("receiver_id = ?", userID).
		Preload("Sender").
		Preload("RequestedSkills").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// GetOutgoingRequests возвращает заявки, отправленные пользователем
func (d *Database) GetOutgoingRequests(userID string) ([]models.Request, error) {
	var requests []models.Request
	err := d.db.
		Where("sender_id = ?", userID).
		Preload("Receiver").
		Preload("RequestedSkills").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// SetRequestStatus фиксирует решение получателя и дату ответа
func (d *Database) SetRequestStatus(id, status string) error {
	now := time.Now()
	return d.db.Model(&models.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"response_date": &now,
		}).Error
}
