package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	ws "skillswap/internal/websocket"
)

type UserHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewUserHandler(db *database.Database, hub *ws.Hub) *UserHandler {
	return &UserHandler{db: db, hub: hub}
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"avatar_url":   user.AvatarURL,
		"bio":          user.Bio,
		"skills":       formatSkills(user.Skills),
		"created_at":   user.CreatedAt,
		"last_seen_at": user.LastSeenAt,
	})
}

// UpdateMe обновляет информацию текущего пользователя
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		Username  string `json:"username"`
		AvatarURL string `json:"avatar_url"`
		Bio       string `json:"bio"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	// Обновляем только переданные поля
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if err := h.db.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"avatar_url": user.AvatarURL,
		"bio":        user.Bio,
	})
}

// GetUser возвращает информацию о пользователе по ID
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"avatar_url":   user.AvatarURL,
		"bio":          user.Bio,
		"skills":       formatSkills(user.Skills),
		"last_seen_at": user.LastSeenAt,
		"is_online":    h.hub.IsOnline(user.ID),
	})
}

// SearchUsers поиск пользователей по username или по навыку
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	skill := c.Query("skill")

	if query == "" && skill == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q or skill parameter is required"})
		return
	}

	var (
		users []models.User
		err   error
	)
	if skill != "" {
		users, err = h.db.SearchUsersBySkill(skill)
	} else {
		users, err = h.db.SearchUsersByUsername(query)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search users"})
		return
	}

	// Форматируем ответ
	result := make([]gin.H, len(users))
	for i, user := range users {
		result[i] = gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"avatar_url": user.AvatarURL,
			"skills":     formatSkills(user.Skills),
			"is_online":  h.hub.IsOnline(user.ID),
		}
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

// formatSkills форматирует список навыков для ответа
func formatSkills(skills []models.Skill) []gin.H {
	result := make([]gin.H, len(skills))
	for i, skill := range skills {
		result[i] = gin.H{
			"id":   skill.ID,
			"name": skill.Name,
		}
	}
	return result
}
