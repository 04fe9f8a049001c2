package server

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/client"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleWebSocket upgrades the connection, attaches the client to the
// session and reads its commands until the connection drops.
func (s *Server) handleWebSocket(c *gin.Context) {
	r := c.Request
	ctx, span := tracer.Start(r.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", r.URL.String()),
		attribute.String("http.method", r.Method),
	))

	conn, err := s.upgrader.Upgrade(c.Writer, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		span.End()
		return
	}

	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		clientID = uuid.NewString()
	}
	span.SetAttributes(attribute.String("client.id", clientID))

	cl := client.NewClient(clientID, conn)
	if err := s.hub.Join(ctx, cl); err != nil {
		slog.ErrorContext(ctx, "failed to join session", "client.id", clientID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to join session")
		span.End()
		conn.Close()
		return
	}
	span.End()

	// The request context ends with the handler; the pump outlives neither.
	s.ReadPump(context.WithoutCancel(ctx), cl)
}

// ReadPump reads commands from the client until its connection fails.
func (s *Server) ReadPump(ctx context.Context, cl *client.Client) {
	ctx, span := tracer.Start(ctx, "server.ReadPump", trace.WithAttributes(
		attribute.String("client.id", cl.ID),
	))
	defer span.End()

	defer func() {
		s.hub.Leave(cl)
		cl.Conn.Close()
		slog.InfoContext(ctx, "client disconnected", "client.id", cl.ID)
	}()

	for {
		_, msg, err := cl.Conn.ReadMessage()
		if err != nil {
			slog.DebugContext(ctx, "client connection closed", "client.id", cl.ID, "error", err)
			return
		}
		s.HandleMessage(ctx, cl, msg)
	}
}
