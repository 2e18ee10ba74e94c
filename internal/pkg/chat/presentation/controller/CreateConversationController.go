package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	chat "go-huddle/internal/pkg/chat/application/domain"
	"go-huddle/internal/pkg/chat/application/usecase"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"

	"github.com/gin-gonic/gin"
)

// CreateConversationController handles the conversation get-or-create
// endpoint. One controller per endpoint.
type CreateConversationController struct {
	UC *usecase.GetOrCreateConversationUseCase
}

func NewCreateConversationController(repo repository.ChatRepository) *CreateConversationController {
	return &CreateConversationController{UC: usecase.NewGetOrCreateConversationUseCase(repo)}
}

type createConversationRequest struct {
	UserID      string `json:"userId" binding:"required"`
	RecipientID string `json:"recipientId" binding:"required"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, usecase.GetOrCreateConversationInput{
			UserA: req.UserID,
			UserB: req.RecipientID,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			} else if errors.Is(err, chat.ErrInvalidConversation) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"conversationId": conv.ID,
			"lastMessage":    conv.LastMessage,
		})
	}
}
