package server

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/controller"
	"ctchen222/Themed-Tic-Tac-Toe/internal/api/service"
	"ctchen222/Themed-Tic-Tac-Toe/internal/client"
	"ctchen222/Themed-Tic-Tac-Toe/internal/validator"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("server")

const requestIDHeader = "X-Request-ID"

// Hub attaches websocket clients to the running session.
type Hub interface {
	Join(ctx context.Context, c *client.Client) error
	Leave(c *client.Client)
}

type Server struct {
	engine      *gin.Engine
	hub         Hub
	gameService service.GameService
	upgrader    websocket.Upgrader
	staticDir   string
}

func NewServer(h Hub, gameService service.GameService, staticDir string) *Server {
	s := &Server{
		engine:      gin.New(),
		hub:         h,
		gameService: gameService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		staticDir: staticDir,
	}
	s.RegisterHandlers()
	return s
}

// Engine returns the gin engine serving the API, the websocket and the page.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterHandlers() {
	if err := validator.RegisterBindings(); err != nil {
		slog.Error("failed to register request validations", "error", err)
	}
	s.engine.Use(gin.Recovery(), requestID(), requestLogger())

	gc := controller.NewGameController(s.gameService)
	api := s.engine.Group("/api")
	{
		api.GET("/state", gc.State)
		api.POST("/move", gc.Move)
		api.POST("/undo", gc.Undo)
		api.POST("/reset", gc.Reset)
		api.PUT("/mode", gc.SetMode)
		api.PUT("/difficulty", gc.SetDifficulty)
		api.GET("/export", gc.Export)
		api.GET("/snapshots", gc.Snapshots)
		api.GET("/snapshots/:id", gc.Snapshot)
	}
	s.engine.GET("/ws", s.handleWebSocket)

	fs := http.FileServer(http.Dir(s.staticDir))
	s.engine.NoRoute(gin.WrapH(fs))
}

// requestID tags every request with an ID, reusing one sent by a proxy.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request.id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "http request",
			"http.method", c.Request.Method,
			"http.path", c.Request.URL.Path,
			"http.status", c.Writer.Status(),
			"http.duration_ms", time.Since(start).Milliseconds(),
			"request.id", c.GetString("request.id"),
		)
	}
}
