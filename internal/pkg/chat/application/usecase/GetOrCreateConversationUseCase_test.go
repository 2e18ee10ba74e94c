package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "go-huddle/internal/pkg/chat/application/domain"
)

func TestGetOrCreateConversationNormalizesPair(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewGetOrCreateConversationUseCase(repo)

	first, err := uc.Execute(context.Background(), GetOrCreateConversationInput{UserA: "bob", UserB: "alice"})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), GetOrCreateConversationInput{UserA: "alice", UserB: "bob"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "both member orderings resolve to the same conversation")
	assert.Equal(t, "alice", first.MemberA)
	assert.Equal(t, "bob", first.MemberB)
}

func TestGetOrCreateConversationRejectsInvalidPair(t *testing.T) {
	uc := NewGetOrCreateConversationUseCase(newFakeChatRepo())

	_, err := uc.Execute(context.Background(), GetOrCreateConversationInput{UserA: "alice", UserB: "alice"})
	assert.ErrorIs(t, err, chat.ErrInvalidConversation)
}

func TestGetOrCreateConversationConcurrentCallsYieldOne(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewGetOrCreateConversationUseCase(repo)

	const callers = 16
	ids := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := uc.Execute(context.Background(), GetOrCreateConversationInput{UserA: "alice", UserB: "bob"})
			if err != nil {
				t.Error(err)
				return
			}
			ids <- conv.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{})
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1, "the pair must map to exactly one conversation")
}
