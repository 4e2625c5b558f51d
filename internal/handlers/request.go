package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
)

type RequestHandler struct {
	db *database.Database
}

func NewRequestHandler(db *database.Database) *RequestHandler {
	return &RequestHandler{db: db}
}

// CreateRequest создает заявку на обмен навыками
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req struct {
		ReceiverID      string   `json:"receiver_id" binding:"required"`
		RequestedSkills []string `json:"requested_skills"`
		Message         string   `json:"message" binding:"max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receiver id"})
		return
	}

	if receiverID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot send request to yourself"})
		return
	}

	if _, err := h.db.GetUser(receiverID.String()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "receiver not found"})
		return
	}

	request := &models.Request{
		SenderID:   userID,
		ReceiverID: receiverID,
		Status:     models.RequestStatusPending,
		Message:    req.Message,
		CreatedAt:  time.Now(),
	}

	for _, name := range req.RequestedSkills {
		skill, err := h.db.GetOrCreateSkillByName(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve skills"})
			return
		}
		request.RequestedSkills = append(request.RequestedSkills, *skill)
	}

	if err := h.db.CreateRequest(request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, formatRequestResponse(request))
}

// GetIncoming возвращает входящие заявки
func (h *RequestHandler) GetIncoming(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	requests, err := h.db.GetIncomingRequests(userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get requests"})
		return
	}

	result := make([]gin.H, len(requests))
	for i := range requests {
		result[i] = formatRequestResponse(&requests[i])
	}

	c.JSON(http.StatusOK, gin.H{"requests": result})
}

// GetOutgoing возвращает исходящие заявки
func (h *RequestHandler) GetOutgoing(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	requests, err := h.db.GetOutgoingRequests(userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get requests"})
		return
	}

	result := make([]gin.H, len(requests))
	for i := range requests {
		result[i] = formatRequestResponse(&requests[i])
	}

	c.JSON(http.StatusOK, gin.H{"requests": result})
}

// Accept принимает заявку, Reject отклоняет — решает только получатель,
// и только пока заявка в статусе pending
func (h *RequestHandler) Accept(c *gin.Context) {
	h.respond(c, models.RequestStatusAccepted)
}

func (h *RequestHandler) Reject(c *gin.Context) {
	h.respond(c, models.RequestStatusRejected)
}

func (h *RequestHandler) respond(c *gin.Context, status string) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	requestID := c.Param("id")

	request, err := h.db.GetRequest(requestID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	if request.ReceiverID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the receiver can respond to a request"})
		return
	}

	if request.Status != models.RequestStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request already responded"})
		return
	}

	if err := h.db.SetRequestStatus(requestID, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update request"})
		return
	}

	request, err = h.db.GetRequest(requestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load request"})
		return
	}

	c.JSON(http.StatusOK, formatRequestResponse(request))
}

// formatRequestResponse форматирует ответ для заявки
func formatRequestResponse(request *models.Request) gin.H {
	response := gin.H{
		"id":               request.ID,
		"sender_id":        request.SenderID,
		"receiver_id":      request.ReceiverID,
		"status":           request.Status,
		"message":          request.Message,
		"requested_skills": formatSkills(request.RequestedSkills),
		"created_at":       request.CreatedAt,
	}

	if request.ResponseDate != nil {
		response["response_date"] = request.ResponseDate
	}

	return response
}
