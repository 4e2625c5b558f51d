package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillswap/internal/chat"
	"skillswap/internal/handlers/dto"
	"skillswap/internal/middleware"
)

type MessageHandler struct {
	chat *chat.Service
}

func NewMessageHandler(svc *chat.Service) *MessageHandler {
	return &MessageHandler{chat: svc}
}

// GetMessages возвращает переписку с пользователем из path-параметра.
// Отсутствие переписки — это пустой список, не 404.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	recipientID := c.Param("recipientId")

	messages, err := h.chat.ListMessages(c.Request.Context(), userID.String(), recipientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage отправляет сообщение пользователю из path-параметра
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	recipientID := c.Param("recipientId")

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.chat.CreateMessage(c.Request.Context(), userID.String(), recipientID, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"chat": room})
}

// UpdateMessage редактирует сообщение по его идентификатору
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	messageID := c.Param("messageId")

	var req dto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.chat.UpdateMessage(c.Request.Context(), userID.String(), messageID, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": room})
}

// DeleteMessage удаляет сообщение по его идентификатору
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	messageID := c.Param("messageId")

	_, err := h.chat.DeleteMessage(c.Request.Context(), userID.String(), messageID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError переводит ошибки сервиса сообщений в статусы HTTP
func (h *MessageHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": chat.ErrInternal.Error()})
	}
}
