package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-huddle/internal/pkg/chat/application/usecase"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"

	"github.com/gin-gonic/gin"
)

// GetHistoryController returns a conversation's full message log, oldest
// first (one controller per endpoint).
type GetHistoryController struct {
	UC *usecase.FetchHistoryUseCase
}

func NewGetHistoryController(repo repository.ChatRepository) *GetHistoryController {
	return &GetHistoryController{UC: usecase.NewFetchHistoryUseCase(repo)}
}

func (h *GetHistoryController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.FetchHistoryInput{ConversationID: conversationID})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, gin.H{
				"id":             m.ID,
				"conversationId": m.ConversationID,
				"senderId":       m.SenderID,
				"senderUsername": m.SenderUsername,
				"content":        m.Content,
				"read":           m.Read,
				"createdAt":      m.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"messages": out,
			"count":    len(out),
		})
	}
}
