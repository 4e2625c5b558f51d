package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillswap/internal/database"
	"skillswap/internal/middleware"
)

type SkillHandler struct {
	db *database.Database
}

func NewSkillHandler(db *database.Database) *SkillHandler {
	return &SkillHandler{db: db}
}

// ListSkills возвращает список навыков, опционально по подстроке
func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.db.ListSkills(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list skills"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": formatSkills(skills)})
}

// CreateSkill создает навык, существующий возвращается как есть
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=2,max=50"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill, err := h.db.GetOrCreateSkillByName(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create skill"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   skill.ID,
		"name": skill.Name,
	})
}

// AddMySkill прикрепляет навык к текущему пользователю
func (h *SkillHandler) AddMySkill(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		Name string `json:"name" binding:"required,min=2,max=50"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	skill, err := h.db.GetOrCreateSkillByName(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create skill"})
		return
	}

	if err := h.db.AddSkillToUser(userID.String(), skill.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add skill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   skill.ID,
		"name": skill.Name,
	})
}

// RemoveMySkill убирает навык у текущего пользователя
func (h *SkillHandler) RemoveMySkill(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	skillID := c.Param("id")

	if _, err := h.db.GetSkill(skillID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
		return
	}

	if err := h.db.RemoveSkillFromUser(userID.String(), skillID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove skill"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "skill removed"})
}
