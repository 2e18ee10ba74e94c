package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	cacheport "go-huddle/internal/infrastructure/cache/port"
	"go-huddle/internal/infrastructure/logging"
	qport "go-huddle/internal/infrastructure/queue/port"
	"go-huddle/internal/infrastructure/realtime"
	chat "go-huddle/internal/pkg/chat/application/domain"
	"go-huddle/internal/pkg/chat/application/task"
	"go-huddle/internal/pkg/chat/application/usecase"
	repository "go-huddle/internal/pkg/chat/persistence/repository/port"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// sessionState tracks where a session is in its lifecycle. States only move
// forward except logout, which drops an identified session back to connected.
type sessionState int

const (
	stateConnected sessionState = iota // transport open, identity unknown
	stateIdentified
	stateActive // at least one room joined
	stateClosed
)

// session is the per-connection supervisor state. It is owned by the
// connection's read goroutine; cleanup runs on that same goroutine.
type session struct {
	conn   *realtime.Connection
	userID string
	state  sessionState
}

// ChatSocketController owns the websocket endpoint: it supervises each
// session's lifecycle and dispatches inbound events to the presence registry,
// room router, message pipeline and typing coordinator. Every failure inside
// an event handler is answered with an error frame and logged; nothing
// crashes the read loop or the process.
type ChatSocketController struct {
	router   *realtime.Router
	presence *realtime.Presence
	typing   *realtime.Typing
	queue    qport.Client

	sendMessageUC *usecase.SendMessageUseCase

	// convLocks serializes persist+broadcast per conversation so delivery
	// order within a room always matches persistence order.
	convLocks *realtime.KeyedMutex

	inflightTimeout time.Duration
	readTimeout     time.Duration
	readLimit       int64
	sendBuffer      int
}

// SocketConfig carries websocket tuning knobs.
type SocketConfig struct {
	ReadTimeout time.Duration
	ReadLimit   int64
	SendBuffer  int
	NameTTL     time.Duration
}

func NewChatSocketController(
	repo repository.ChatRepository,
	users repository.UserRepository,
	cache cacheport.Cache,
	queue qport.Client,
	router *realtime.Router,
	presence *realtime.Presence,
	cfg SocketConfig,
) *ChatSocketController {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 60 * time.Second
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 1 << 20
	}
	return &ChatSocketController{
		router:          router,
		presence:        presence,
		typing:          realtime.NewTyping(router),
		queue:           queue,
		sendMessageUC:   usecase.NewSendMessageUseCase(repo, users, cache, cfg.NameTTL),
		convLocks:       realtime.NewKeyedMutex(),
		inflightTimeout: 5 * time.Second,
		readTimeout:     cfg.ReadTimeout,
		readLimit:       cfg.ReadLimit,
		sendBuffer:      cfg.SendBuffer,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

// Event names on the wire, matching the client protocol.
const (
	evLogin          = "login"
	evLogout         = "logout"
	evGetOnlineUsers = "getOnlineUsers"
	evJoin           = "join"
	evMessageSend    = "message:send"
	evMessageNew     = "message:new"
	evTypingStart    = "typing:start"
	evTypingStop     = "typing:stop"
	evUserOnline     = "user:online"
	evUserOffline    = "user:offline"
	evOnlineUsers    = "onlineUsers"
)

type inboundFrame struct {
	Type           string `json:"type"`
	UserID         string `json:"userId,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	SenderID       string `json:"senderId,omitempty"`
	Content        string `json:"content,omitempty"`
	Username       string `json:"username,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId,omitempty"`
}

type presenceFrame struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type onlineUsersFrame struct {
	Type    string   `json:"type"`
	UserIDs []string `json:"userIds"`
}

type outboundMessage struct {
	Type    string         `json:"type"`
	Message messagePayload `json:"message"`
}

type messagePayload struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	SenderUsername string    `json:"senderUsername"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			logging.L().Debug().Err(err).Msg("websocket upgrade failed")
			return
		}

		conn := realtime.NewConnection(ws, ctl.sendBuffer)
		ctl.router.Attach(conn)
		conn.Start()

		sess := &session{conn: conn}
		defer ctl.cleanup(sess)

		ws.SetReadLimit(ctl.readLimit)
		_ = ws.SetReadDeadline(time.Now().Add(ctl.readTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(ctl.readTimeout))
		})

		ctl.reply(conn, ackFrame{Type: "connected"})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				// Read deadline expiry and network drops land here too;
				// they are equivalent to a disconnect.
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			ctl.dispatch(c, sess, frame)
		}
	}
}

// dispatch routes one inbound event to the owning component.
func (ctl *ChatSocketController) dispatch(c *gin.Context, sess *session, frame inboundFrame) {
	switch frame.Type {
	case evLogin:
		ctl.handleLogin(c, sess, frame)
	case evLogout:
		ctl.handleLogout(c, sess, frame)
	case evGetOnlineUsers:
		ctl.reply(sess.conn, onlineUsersFrame{Type: evOnlineUsers, UserIDs: ctl.presence.SnapshotOnline()})
	case evJoin:
		ctl.handleJoin(sess, frame)
	case evMessageSend:
		ctl.handleMessage(c, sess, frame)
	case evTypingStart:
		if frame.ConversationID == "" {
			ctl.replyError(sess.conn, "bad_request", "conversationId is required")
			return
		}
		ctl.typing.Start(frame.ConversationID, frame.Username, sess.conn.ID)
	case evTypingStop:
		if frame.ConversationID == "" {
			ctl.replyError(sess.conn, "bad_request", "conversationId is required")
			return
		}
		ctl.typing.Stop(frame.ConversationID, sess.conn.ID)
	default:
		ctl.replyError(sess.conn, "unsupported_type", "unknown frame type")
	}
}

func (ctl *ChatSocketController) handleLogin(c *gin.Context, sess *session, frame inboundFrame) {
	if frame.UserID == "" {
		ctl.replyError(sess.conn, "bad_request", "userId is required")
		return
	}

	// Re-login under a different identity releases the previous one first,
	// otherwise the old user would stay in the snapshot with no live session.
	if sess.userID != "" && sess.userID != frame.UserID {
		if last := ctl.presence.MarkOffline(sess.userID, sess.conn.ID); last {
			ctl.announcePresence(c.Request.Context(), sess.userID, false)
		}
	}

	sess.userID = frame.UserID
	if sess.state == stateConnected {
		sess.state = stateIdentified
	}

	if first := ctl.presence.MarkOnline(frame.UserID, sess.conn.ID); first {
		ctl.announcePresence(c.Request.Context(), frame.UserID, true)
	}
}

func (ctl *ChatSocketController) handleLogout(c *gin.Context, sess *session, frame inboundFrame) {
	userID := frame.UserID
	if userID == "" {
		userID = sess.userID
	}
	if userID == "" {
		ctl.replyError(sess.conn, "bad_request", "userId is required")
		return
	}

	if last := ctl.presence.MarkOffline(userID, sess.conn.ID); last {
		ctl.announcePresence(c.Request.Context(), userID, false)
	}

	// A logged-out session keeps its socket but loses every room
	// subscription; it must re-join after the next login.
	ctl.router.LeaveAll(sess.conn.ID)

	if sess.userID == userID {
		sess.userID = ""
		sess.state = stateConnected
	}
}

func (ctl *ChatSocketController) handleJoin(sess *session, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(sess.conn, "bad_request", "conversationId is required")
		return
	}

	// Joins are trusted to have been authorized upstream.
	ctl.router.Join(frame.ConversationID, sess.conn)
	if sess.state == stateIdentified {
		sess.state = stateActive
	}

	ctl.reply(sess.conn, ackFrame{Type: "joined", ConversationID: frame.ConversationID})
}

func (ctl *ChatSocketController) handleMessage(c *gin.Context, sess *session, frame inboundFrame) {
	if frame.ConversationID == "" || frame.SenderID == "" {
		ctl.replyError(sess.conn, "bad_request", "conversationId and senderId are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	// Hold the conversation lock across persist and broadcast: a message is
	// never fanned out before it is durable, and two messages in one room
	// are always delivered in persistence order.
	ctl.convLocks.Lock(frame.ConversationID)
	defer ctl.convLocks.Unlock(frame.ConversationID)

	result, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		ConversationID: frame.ConversationID,
		SenderID:       frame.SenderID,
		Content:        frame.Content,
	})
	if err != nil {
		ctl.handleUseCaseError(sess.conn, err)
		return
	}

	payload, err := json.Marshal(outboundMessage{Type: evMessageNew, Message: toPayload(*result)})
	if err != nil {
		ctl.replyError(sess.conn, "internal_error", "failed to encode message")
		return
	}

	// No exclusion: the sender's own sessions receive the message through
	// the same channel as everyone else.
	ctl.router.Broadcast(frame.ConversationID, payload, "")
}

func (ctl *ChatSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrInvalidMessage):
		ctl.replyError(conn, "bad_request", err.Error())
	case errors.Is(err, chat.ErrUserNotFound):
		ctl.replyError(conn, "sender_not_found", "sender account no longer exists")
	case errors.Is(err, usecase.ErrPersistence):
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	default:
		ctl.replyError(conn, "bad_request", err.Error())
	}
	logging.L().Warn().Err(err).Msg("message send rejected")
}

// announcePresence broadcasts the transition to every connected session and
// schedules the flag write. The broadcast never waits on persistence.
func (ctl *ChatSocketController) announcePresence(ctx context.Context, userID string, online bool) {
	eventType := evUserOffline
	if online {
		eventType = evUserOnline
	}
	if payload, err := json.Marshal(presenceFrame{Type: eventType, UserID: userID}); err == nil {
		ctl.router.BroadcastAll(payload)
	}

	if ctl.queue != nil {
		enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ctl.inflightTimeout)
		defer cancel()
		task.EnqueuePresenceFlag(enqueueCtx, ctl.queue, userID, online)
	}
}

// cleanup tears the session down. It tolerates running after an explicit
// logout already removed the session: the reverse lookup failing is benign.
func (ctl *ChatSocketController) cleanup(sess *session) {
	if sess.state == stateClosed {
		return
	}
	sess.state = stateClosed

	if userID, err := ctl.presence.SessionOwner(sess.conn.ID); err == nil {
		if last := ctl.presence.MarkOffline(userID, sess.conn.ID); last {
			ctl.announcePresence(context.Background(), userID, false)
		}
	}

	ctl.router.Detach(sess.conn)
	sess.conn.Close(websocket.CloseNormalClosure, "session closed")
}

func (ctl *ChatSocketController) reply(conn *realtime.Connection, frame any) {
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	ctl.reply(conn, errorFrame{Type: "error", Code: code, Error: message})
}

func toPayload(msg chat.Message) messagePayload {
	return messagePayload{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		SenderUsername: msg.SenderUsername,
		Content:        msg.Content,
		Read:           msg.Read,
		CreatedAt:      msg.CreatedAt,
	}
}
