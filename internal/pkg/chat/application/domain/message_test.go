package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageTrimsAndStamps(t *testing.T) {
	before := time.Now().UTC()
	msg, err := NewMessage("conv-1", "user-1", "alice", "  hello there  ")
	require.NoError(t, err)

	assert.Equal(t, "hello there", msg.Content)
	assert.Equal(t, "alice", msg.SenderUsername)
	assert.Empty(t, msg.ID, "the repository assigns the ID on insert")
	assert.False(t, msg.Read)
	assert.False(t, msg.CreatedAt.Before(before))
}

func TestNewMessageRejectsEmptyContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := NewMessage("conv-1", "user-1", "alice", content)
		assert.ErrorIs(t, err, ErrEmptyMessage, "content %q", content)
	}
}

func TestNewMessageRequiresConversationAndSender(t *testing.T) {
	_, err := NewMessage("", "user-1", "alice", "hi")
	assert.ErrorIs(t, err, ErrInvalidMessage)

	_, err = NewMessage("conv-1", "", "alice", "hi")
	assert.ErrorIs(t, err, ErrInvalidMessage)
}
