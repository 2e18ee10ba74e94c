package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePairIsOrderInsensitive(t *testing.T) {
	a1, b1 := NormalizePair("bob", "alice")
	a2, b2 := NormalizePair("alice", "bob")

	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, "alice", a1)
	assert.Equal(t, "bob", b1)
}

func TestNewConversationNormalizesMembers(t *testing.T) {
	conv, err := NewConversation("bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, "alice", conv.MemberA)
	assert.Equal(t, "bob", conv.MemberB)
	assert.Empty(t, conv.LastMessage)
}

func TestNewConversationRejectsBadPairs(t *testing.T) {
	_, err := NewConversation("", "bob")
	assert.ErrorIs(t, err, ErrInvalidConversation)

	_, err = NewConversation("alice", "")
	assert.ErrorIs(t, err, ErrInvalidConversation)

	_, err = NewConversation("alice", "alice")
	assert.ErrorIs(t, err, ErrInvalidConversation, "self-conversations are not allowed")
}
