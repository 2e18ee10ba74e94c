package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "go-huddle/internal/pkg/chat/application/domain"
)

func TestGetHistoryReturnsOrderedLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &memChatRepo{}
	for _, content := range []string{"one", "two"} {
		_, err := repo.SaveMessage(context.Background(), chat.Message{
			ConversationID: "conv-1",
			SenderID:       "u-alice",
			SenderUsername: "alice",
			Content:        content,
		})
		require.NoError(t, err)
	}

	engine := gin.New()
	engine.GET("/conversations/:conversationId/messages", NewGetHistoryController(repo).Handle())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/conversations/conv-1/messages", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count    int `json:"count"`
		Messages []struct {
			Content        string `json:"content"`
			SenderUsername string `json:"senderUsername"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "one", body.Messages[0].Content)
	assert.Equal(t, "two", body.Messages[1].Content)
	assert.Equal(t, "alice", body.Messages[0].SenderUsername)
}

func TestGetHistoryEmptyConversation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/conversations/:conversationId/messages", NewGetHistoryController(&memChatRepo{}).Handle())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/conversations/conv-empty/messages", nil)
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 0, body["count"])
}
