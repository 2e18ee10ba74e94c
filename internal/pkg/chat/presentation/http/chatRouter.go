package http

import (
	cacheport "go-huddle/internal/infrastructure/cache/port"
	qport "go-huddle/internal/infrastructure/queue/port"
	"go-huddle/internal/infrastructure/realtime"
	"go-huddle/internal/pkg/chat/persistence/repository/adapter"
	"go-huddle/internal/pkg/chat/presentation/controller"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps bundles the shared infrastructure handed down from main.
type Deps struct {
	Pool     *pgxpool.Pool
	Cache    cacheport.Cache
	Queue    qport.Client
	Router   *realtime.Router
	Presence *realtime.Presence
	Socket   controller.SocketConfig
}

// RegisterRoutes registers chat-related endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	chatRepo := adapter.NewPgChatRepository(deps.Pool)
	userRepo := adapter.NewPgUserRepository(deps.Pool)

	createCtl := controller.NewCreateConversationController(chatRepo)
	historyCtl := controller.NewGetHistoryController(chatRepo)
	socketCtl := controller.NewChatSocketController(
		chatRepo, userRepo, deps.Cache, deps.Queue, deps.Router, deps.Presence, deps.Socket,
	)

	// POST /api/v1/conversations -> get or create the conversation for a pair
	g.POST("/conversations", createCtl.Handle())

	// GET /api/v1/conversations/:conversationId/messages -> full history, oldest first
	g.GET("/conversations/:conversationId/messages", historyCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	g.GET("/chat/ws", socketCtl.Handle())
}
