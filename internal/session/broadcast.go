package session

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/pkg/proto"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// broadcast pushes the current state to every attached client.
func (s *Session) broadcast(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "session.broadcast", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("session.clients", len(s.clients)),
	))
	defer span.End()

	data, err := s.encodeUpdate()
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling update", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error marshalling update")
		return
	}

	for id := range s.clients {
		s.write(ctx, span, id, data)
	}
}

// sendUpdate pushes the current state to a single client.
func (s *Session) sendUpdate(ctx context.Context, id string) {
	ctx, span := tracer.Start(ctx, "session.sendUpdate", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("client.id", id),
	))
	defer span.End()

	data, err := s.encodeUpdate()
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling update", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error marshalling update")
		return
	}
	s.write(ctx, span, id, data)
}

// write drops the client when its connection fails.
func (s *Session) write(ctx context.Context, span trace.Span, id string, data []byte) {
	c, ok := s.clients[id]
	if !ok {
		return
	}
	if err := c.Write(websocket.TextMessage, data); err != nil {
		slog.WarnContext(ctx, "error writing update to client, dropping it", "client.id", id, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error writing update to client")
		c.Conn.Close()
		delete(s.clients, id)
	}
}

func (s *Session) encodeUpdate() ([]byte, error) {
	view := s.view()
	return json.Marshal(proto.ServerToClientMessage{Type: proto.TypeUpdate, State: &view})
}
