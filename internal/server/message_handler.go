package server

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/client"
	"ctchen222/Themed-Tic-Tac-Toe/internal/validator"
	"ctchen222/Themed-Tic-Tac-Toe/pkg/proto"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleMessage handles a message from a client. It acts as a dispatcher.
// State changes reach every client through the session's broadcast, so only
// failures are answered directly.
func (s *Server) HandleMessage(ctx context.Context, cl *client.Client, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "server.HandleMessage", trace.WithAttributes(
		attribute.String("client.id", cl.ID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "client.id", cl.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		s.sendError(ctx, cl, "malformed message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from client", "client.id", cl.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		s.sendError(ctx, cl, "invalid message")
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	var err error
	switch message.Type {
	case proto.TypeMove:
		_, _, err = s.gameService.Move(ctx, *message.Index)
	case proto.TypeUndo:
		_, _, err = s.gameService.Undo(ctx)
	case proto.TypeReset:
		_, err = s.gameService.Reset(ctx)
	case proto.TypeMode:
		_, err = s.gameService.SetMode(ctx, message.Mode)
	case proto.TypeDifficulty:
		_, err = s.gameService.SetDifficulty(ctx, message.Difficulty)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to handle message", "client.id", cl.ID, "message.type", message.Type, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to handle message")
		s.sendError(ctx, cl, err.Error())
	}
}

func (s *Server) sendError(ctx context.Context, cl *client.Client, reason string) {
	data, err := json.Marshal(proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling error message", "error", err)
		return
	}
	if err := cl.Write(websocket.TextMessage, data); err != nil {
		slog.WarnContext(ctx, "error writing to client", "client.id", cl.ID, "error", err)
	}
}
