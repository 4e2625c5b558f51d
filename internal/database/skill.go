package database

import (
	"errors"

	"gorm.io/gorm"

	"skillswap/internal/models"
)

func (d *Database) CreateSkill(skill *models.Skill) error {
	return d.db.Create(skill).Error
}

func (d *Database) GetSkill(id string) (*models.Skill, error) {
	var skill models.Skill
	if err := d.db.First(&skill, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

// GetOrCreateSkillByName возвращает навык по имени, создавая при отсутствии
func (d *Database) GetOrCreateSkillByName(name string) (*models.Skill, error) {
	var skill models.Skill
	err := d.db.Where("name = ?", name).First(&skill).Error
	if err == nil {
		return &skill, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	skill = models.Skill{Name: name}
	if err := d.db.Create(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (d *Database) ListSkills(query string) ([]models.Skill, error) {
	var skills []models.Skill

	q := d.db.Order("name ASC")
	if query != "" {
		q = q.Where("name ILIKE ?", "%"+query+"%")
	}

	err := q.Limit(50).Find(&skills).Error
	return skills, err
}

func (d *Database) DeleteSkill(id string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var skill models.Skill
		if err := tx.First(&skill, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&skill).Association("Users").Clear(); err != nil {
			return err
		}

		return tx.Delete(&skill).Error
	})
}
