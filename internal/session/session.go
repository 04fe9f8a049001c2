package session

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/bot"
	"ctchen222/Themed-Tic-Tac-Toe/internal/client"
	"ctchen222/Themed-Tic-Tac-Toe/internal/export"
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"ctchen222/Themed-Tic-Tac-Toe/pkg/proto"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Mode selects who plays O.
type Mode string

const (
	ModePvP Mode = "pvp"
	ModePvE Mode = "pve"
)

// ParseMode converts a user supplied value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePvP, ModePvE:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// ErrClosed is returned once the session loop has stopped.
var ErrClosed = errors.New("session closed")

var (
	tracer = otel.Tracer("session")
	meter  = otel.Meter("session")
)

// Options configures a Session. Zero values fall back to the defaults of the browser game.
type Options struct {
	Mode          Mode
	Difficulty    bot.Difficulty
	ComputerMark  game.Mark
	ComputerDelay time.Duration
	Now           func() time.Time
}

// Session is the single owner of a GameState. Every read and write goes
// through the Run loop, so callers on any goroutine see a serialized game.
type Session struct {
	ID string

	state         *game.GameState
	mode          Mode
	difficulty    bot.Difficulty
	computerMark  game.Mark
	computerDelay time.Duration
	calculator    bot.MoveCalculator
	now           func() time.Time

	// turn changes on every mutation; a scheduled computer move only
	// applies if the turn it was scheduled for is still current.
	turn uint64

	commands   chan command
	register   chan *client.Client
	unregister chan *client.Client
	clients    map[string]*client.Client
	done       chan struct{}

	moves    metric.Int64Counter
	finished metric.Int64Counter
}

// New creates a session. Call Run to start serving commands.
func New(calculator bot.MoveCalculator, opts Options) *Session {
	if opts.Mode == "" {
		opts.Mode = ModePvP
	}
	if opts.Difficulty == "" {
		opts.Difficulty = bot.DifficultyOptimal
	}
	if !opts.ComputerMark.IsPlayer() {
		opts.ComputerMark = game.O
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	moves, err := meter.Int64Counter("tictactoe.moves",
		metric.WithDescription("Moves applied to the board"))
	if err != nil {
		otel.Handle(err)
	}
	finished, err := meter.Int64Counter("tictactoe.games.finished",
		metric.WithDescription("Games that ended in a win or a draw"))
	if err != nil {
		otel.Handle(err)
	}

	return &Session{
		ID:            uuid.NewString(),
		state:         game.New(),
		mode:          opts.Mode,
		difficulty:    opts.Difficulty,
		computerMark:  opts.ComputerMark,
		computerDelay: opts.ComputerDelay,
		calculator:    calculator,
		now:           opts.Now,
		commands:      make(chan command),
		register:      make(chan *client.Client),
		unregister:    make(chan *client.Client),
		clients:       make(map[string]*client.Client),
		done:          make(chan struct{}),
		moves:         moves,
		finished:      finished,
	}
}

// Move places the current player's mark at index. applied is false when the
// move is illegal or it is the computer's turn.
func (s *Session) Move(ctx context.Context, index int) (view proto.GameView, applied bool, err error) {
	r, err := s.do(ctx, command{kind: cmdMove, index: index})
	return r.view, r.applied, err
}

// Undo takes back the last move.
func (s *Session) Undo(ctx context.Context) (proto.GameView, bool, error) {
	r, err := s.do(ctx, command{kind: cmdUndo})
	return r.view, r.applied, err
}

// Reset starts a new game and keeps the scores.
func (s *Session) Reset(ctx context.Context) (proto.GameView, error) {
	r, err := s.do(ctx, command{kind: cmdReset})
	return r.view, err
}

// SetMode switches between two humans and human against computer. The
// current game is replaced by a fresh one.
func (s *Session) SetMode(ctx context.Context, mode Mode) (proto.GameView, error) {
	r, err := s.do(ctx, command{kind: cmdMode, mode: mode})
	return r.view, err
}

// SetDifficulty changes how the computer picks its moves.
func (s *Session) SetDifficulty(ctx context.Context, difficulty bot.Difficulty) (proto.GameView, error) {
	r, err := s.do(ctx, command{kind: cmdDifficulty, difficulty: difficulty})
	return r.view, err
}

// State returns the current view of the game.
func (s *Session) State(ctx context.Context) (proto.GameView, error) {
	r, err := s.do(ctx, command{kind: cmdState})
	return r.view, err
}

// Snapshot captures the session for export.
func (s *Session) Snapshot(ctx context.Context) (export.Snapshot, error) {
	r, err := s.do(ctx, command{kind: cmdSnapshot})
	return r.snapshot, err
}

// Join attaches a client. It receives the current state right away and an
// update after every change. A client already attached under the same ID is
// closed and replaced.
func (s *Session) Join(ctx context.Context, c *client.Client) error {
	select {
	case s.register <- c:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Leave detaches c. It is a no-op if another client has since joined
// under the same ID.
func (s *Session) Leave(c *client.Client) {
	select {
	case s.unregister <- c:
	case <-s.done:
	}
}

// Done is closed when the Run loop has returned.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) do(ctx context.Context, cmd command) (reply, error) {
	cmd.ctx = ctx
	cmd.reply = make(chan reply, 1)

	select {
	case s.commands <- cmd:
	case <-s.done:
		return reply{}, ErrClosed
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}

	select {
	case r := <-cmd.reply:
		return r, nil
	case <-s.done:
		return reply{}, ErrClosed
	case <-ctx.Done():
		return reply{}, ctx.Err()
	}
}
