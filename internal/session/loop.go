package session

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/bot"
	"ctchen222/Themed-Tic-Tac-Toe/internal/export"
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"ctchen222/Themed-Tic-Tac-Toe/pkg/proto"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type commandKind int

const (
	cmdState commandKind = iota
	cmdMove
	cmdUndo
	cmdReset
	cmdMode
	cmdDifficulty
	cmdSnapshot
	cmdComputer
)

var commandNames = map[commandKind]string{
	cmdState:      "state",
	cmdMove:       "move",
	cmdUndo:       "undo",
	cmdReset:      "reset",
	cmdMode:       "mode",
	cmdDifficulty: "difficulty",
	cmdSnapshot:   "snapshot",
	cmdComputer:   "computer",
}

type command struct {
	ctx        context.Context
	kind       commandKind
	index      int
	mode       Mode
	difficulty bot.Difficulty
	turn       uint64
	reply      chan reply
}

type reply struct {
	view     proto.GameView
	applied  bool
	snapshot export.Snapshot
}

// Run serves commands until ctx is cancelled. It must be called exactly once.
func (s *Session) Run(ctx context.Context) {
	slog.InfoContext(ctx, "session started", "session.id", s.ID, "session.mode", s.mode, "session.ai", s.difficulty)
	defer func() {
		close(s.done)
		for id, c := range s.clients {
			c.Conn.Close()
			delete(s.clients, id)
		}
		slog.Info("session stopped", "session.id", s.ID)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-s.commands:
			s.handle(cmd)

		case c := <-s.register:
			if prev, ok := s.clients[c.ID]; ok && prev != c {
				slog.WarnContext(ctx, "client replaced by a new connection", "session.id", s.ID, "client.id", c.ID)
				prev.Conn.Close()
			}
			s.clients[c.ID] = c
			slog.InfoContext(ctx, "client joined", "session.id", s.ID, "client.id", c.ID, "clients", len(s.clients))
			s.sendUpdate(ctx, c.ID)

		case c := <-s.unregister:
			if s.clients[c.ID] == c {
				delete(s.clients, c.ID)
				slog.InfoContext(ctx, "client left", "session.id", s.ID, "client.id", c.ID, "clients", len(s.clients))
			}
		}
	}
}

func (s *Session) handle(cmd command) {
	ctx := cmd.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracer.Start(ctx, "session."+commandNames[cmd.kind], trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	var r reply
	switch cmd.kind {
	case cmdMove:
		r.applied = s.handleMove(ctx, cmd.index)
	case cmdUndo:
		r.applied = s.handleUndo(ctx)
	case cmdReset:
		s.state.Reset()
		s.turn++
		slog.InfoContext(ctx, "game reset", "session.id", s.ID)
		s.broadcast(ctx)
		r.applied = true
	case cmdMode:
		s.mode = cmd.mode
		s.state.Reset()
		s.turn++
		slog.InfoContext(ctx, "mode changed", "session.id", s.ID, "session.mode", s.mode)
		s.broadcast(ctx)
		r.applied = true
	case cmdDifficulty:
		s.difficulty = cmd.difficulty
		slog.InfoContext(ctx, "difficulty changed", "session.id", s.ID, "session.ai", s.difficulty)
		s.broadcast(ctx)
		r.applied = true
	case cmdSnapshot:
		r.snapshot = export.New(s.state, string(s.mode), string(s.difficulty), s.now())
	case cmdComputer:
		s.handleComputerMove(ctx, cmd.turn)
	}
	span.SetAttributes(attribute.Bool("command.applied", r.applied))

	if cmd.reply != nil {
		r.view = s.view()
		cmd.reply <- r
	}
}

func (s *Session) handleMove(ctx context.Context, index int) bool {
	mark := s.state.CurrentPlayer()
	if s.mode == ModePvE && mark == s.computerMark {
		slog.DebugContext(ctx, "move ignored, computer to play", "session.id", s.ID, "move.index", index)
		return false
	}
	if !s.state.ApplyMove(index, mark) {
		slog.DebugContext(ctx, "move rejected", "session.id", s.ID, "move.index", index, "move.player", mark)
		return false
	}
	s.afterMove(ctx, index, mark, "human")
	return true
}

func (s *Session) handleUndo(ctx context.Context) bool {
	if !s.state.Undo() {
		return false
	}
	s.turn++
	slog.InfoContext(ctx, "move undone", "session.id", s.ID, "session.current_player", s.state.CurrentPlayer())
	s.broadcast(ctx)
	return true
}

// handleComputerMove plays the scheduled computer move, unless the game moved
// on since it was scheduled.
func (s *Session) handleComputerMove(ctx context.Context, turn uint64) {
	if turn != s.turn || !s.computerToPlay() {
		slog.DebugContext(ctx, "stale computer move dropped", "session.id", s.ID)
		return
	}
	mark := s.computerMark
	idx, ok := s.calculator.CalculateNextMove(ctx, s.state.Board(), mark, s.difficulty)
	if !ok || !s.state.ApplyMove(idx, mark) {
		slog.WarnContext(ctx, "computer found no move", "session.id", s.ID, "move.index", idx)
		return
	}
	s.afterMove(ctx, idx, mark, "computer")
}

func (s *Session) afterMove(ctx context.Context, index int, mark game.Mark, by string) {
	s.turn++
	attrs := metric.WithAttributes(attribute.String("move.by", by), attribute.String("session.mode", string(s.mode)))
	if s.moves != nil {
		s.moves.Add(ctx, 1, attrs)
	}
	slog.InfoContext(ctx, "move applied", "session.id", s.ID, "move.index", index, "move.player", mark, "move.by", by)

	if res, over := s.state.Result(); over {
		if s.finished != nil {
			s.finished.Add(ctx, 1, metric.WithAttributes(attribute.String("game.winner", string(res.Winner))))
		}
		slog.InfoContext(ctx, "game finished", "session.id", s.ID, "game.winner", res.Winner, "game.line", res.Line)
	}

	s.broadcast(ctx)
	s.scheduleComputerMove()
}

func (s *Session) computerToPlay() bool {
	return s.mode == ModePvE && !s.state.IsGameOver() && s.state.CurrentPlayer() == s.computerMark
}

// scheduleComputerMove queues the computer's reply after the configured delay.
func (s *Session) scheduleComputerMove() {
	if !s.computerToPlay() {
		return
	}
	cmd := command{kind: cmdComputer, turn: s.turn}
	time.AfterFunc(s.computerDelay, func() {
		select {
		case s.commands <- cmd:
		case <-s.done:
		}
	})
}

func (s *Session) view() proto.GameView {
	v := proto.GameView{
		SessionID:     s.ID,
		Board:         s.state.Board(),
		CurrentPlayer: s.state.CurrentPlayer(),
		IsGameOver:    s.state.IsGameOver(),
		Status:        s.state.Status(),
		Scores:        s.state.Scores(),
		History:       s.state.History(),
		Mode:          string(s.mode),
		Difficulty:    string(s.difficulty),
	}
	if res, ok := s.state.Result(); ok {
		v.Result = &res
	}
	return v
}
