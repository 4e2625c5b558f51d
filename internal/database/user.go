package database

import (
	"time"

	"skillswap/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Preload("Skills").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) UpdateLastSeen(id string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error
}

func (d *Database) SearchUsersByUsername(query string) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Where("username ILIKE ?", "%"+query+"%").
		Preload("Skills").
		Limit(20).
		Find(&users).Error
	return users, err
}

// SearchUsersBySkill находит пользователей, у которых есть навык с таким именем
func (d *Database) SearchUsersBySkill(skillName string) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Joins("JOIN user_skills us ON us.user_id = users.id").
		Joins("JOIN skills ON skills.id = us.skill_id").
		Where("skills.name ILIKE ?", "%"+skillName+"%").
		Preload("Skills").
		Limit(20).
		Find(&users).Error
	return users, err
}

func (d *Database) AddSkillToUser(userID, skillID string) error {
	var user models.User
	var skill models.Skill

	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	if err := d.db.First(&skill, "id = ?", skillID).Error; err != nil {
		return err
	}

	return d.db.Model(&user).Association("Skills").Append(&skill)
}

func (d *Database) RemoveSkillFromUser(userID, skillID string) error {
	var user models.User
	var skill models.Skill

	if err := d.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	if err := d.db.First(&skill, "id = ?", skillID).Error; err != nil {
		return err
	}

	return d.db.Model(&user).Association("Skills").Delete(&skill)
}
