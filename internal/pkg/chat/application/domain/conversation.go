package chat

import "time"

// Conversation is a 1:1 thread between two users. The member pair is stored
// normalized (MemberA < MemberB) so at most one conversation exists per
// unordered pair. LastMessage caches the latest content for listing views and
// is mutated only after a successful message write.
type Conversation struct {
	ID          string    `db:"id"`
	MemberA     string    `db:"member_a"`
	MemberB     string    `db:"member_b"`
	LastMessage string    `db:"last_message"`
	CreatedAt   time.Time `db:"created_at"`
}

// NormalizePair orders two member IDs so {A,B} and {B,A} map to the same
// conversation key.
func NormalizePair(userA, userB string) (string, string) {
	if userB < userA {
		return userB, userA
	}
	return userA, userB
}

// NewConversation builds an unsaved conversation for the normalized pair.
func NewConversation(userA, userB string) (*Conversation, error) {
	if userA == "" || userB == "" || userA == userB {
		return nil, ErrInvalidConversation
	}
	a, b := NormalizePair(userA, userB)
	return &Conversation{
		MemberA:   a,
		MemberB:   b,
		CreatedAt: time.Now().UTC(),
	}, nil
}
