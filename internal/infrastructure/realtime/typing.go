package realtime

import "encoding/json"

// Typing coordinates the ephemeral typing indicator for a conversation.
// Nothing is persisted and no server-side state survives between start and
// stop: the client debounces keystrokes and is responsible for emitting stop.
// A client that crashes mid-typing leaves the indicator visible to peers.
type Typing struct {
	router *Router
}

// NewTyping constructs a coordinator fanning out through the given router.
func NewTyping(router *Router) *Typing {
	return &Typing{router: router}
}

type typingStartEvent struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
	Username       string `json:"username"`
}

type typingStopEvent struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
}

// Start broadcasts a typing indicator to the room, excluding the originating
// session so a sender never sees its own echo.
func (t *Typing) Start(conversationID, username, originSessionID string) {
	payload, err := json.Marshal(typingStartEvent{
		Type:           "typing:start",
		ConversationID: conversationID,
		Username:       username,
	})
	if err != nil {
		return
	}
	t.router.Broadcast(conversationID, payload, originSessionID)
}

// Stop broadcasts that the indicator cleared. The inbound event carries only
// the conversation ID.
func (t *Typing) Stop(conversationID, originSessionID string) {
	payload, err := json.Marshal(typingStopEvent{
		Type:           "typing:stop",
		ConversationID: conversationID,
	})
	if err != nil {
		return
	}
	t.router.Broadcast(conversationID, payload, originSessionID)
}
