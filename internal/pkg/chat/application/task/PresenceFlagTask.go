package task

import (
	"context"
	"encoding/json"
	"time"

	"go-huddle/internal/infrastructure/logging"
	qport "go-huddle/internal/infrastructure/queue/port"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"
)

// PresenceFlagTaskType is the queue task name for projecting a user's
// presence transition into the persisted online flag.
const PresenceFlagTaskType = "presence:set_flag"

// PresenceFlagPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type PresenceFlagPayload struct {
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}

// EnqueuePresenceFlag schedules the flag write. The caller has already
// broadcast the presence change; the persisted flag is an eventually
// consistent projection, so enqueue failures are logged and swallowed.
func EnqueuePresenceFlag(ctx context.Context, q qport.Client, userID string, online bool) {
	payload, err := json.Marshal(PresenceFlagPayload{UserID: userID, Online: online})
	if err != nil {
		logging.L().Error().Err(err).Msg("encode presence flag payload")
		return
	}
	opts := qport.EnqueueOption{Queue: "presence", MaxRetry: 10}
	if _, err := q.Enqueue(ctx, qport.Task{Type: PresenceFlagTaskType, Payload: payload}, opts); err != nil {
		logging.L().Warn().Err(err).Str("user_id", userID).Bool("online", online).Msg("enqueue presence flag failed")
	}
}

// RegisterPresenceFlagTask binds the task handler to the provided server.
// The handler is idempotent: writing the same flag twice is harmless.
func RegisterPresenceFlagTask(srv qport.Server, users repository.UserRepository) {
	srv.Register(PresenceFlagTaskType, func(ctx context.Context, t qport.Task) error {
		var p PresenceFlagPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}
		if p.UserID == "" {
			return nil
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if err := users.SetOnline(ctx, p.UserID, p.Online); err != nil {
			logging.L().Warn().Err(err).Str("user_id", p.UserID).Msg("presence flag write failed")
			return err
		}
		return nil
	})
}
