package bot

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"fmt"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Difficulty selects how the computer picks its move.
type Difficulty string

const (
	DifficultyRandom  Difficulty = "random"
	DifficultyOptimal Difficulty = "optimal"
)

// ParseDifficulty converts a user supplied value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyRandom, DifficultyOptimal:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// MoveCalculator is an agent that can pick a move for the computer player.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board game.Board, mark game.Mark, difficulty Difficulty) (int, bool)
}

// Calculator implements MoveCalculator with the random and minimax strategies.
type Calculator struct {
	rng      RandomSource
	duration metric.Float64Histogram
}

// NewCalculator creates a Calculator. A nil rng falls back to a randomly seeded PCG.
func NewCalculator(rng RandomSource) *Calculator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	duration, err := meter.Float64Histogram(
		"tictactoe.bot.decision.duration",
		metric.WithDescription("Time spent choosing a computer move"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		otel.Handle(err)
	}
	return &Calculator{rng: rng, duration: duration}
}

// CalculateNextMove picks a move for mark. Unknown difficulties play optimally.
func (c *Calculator) CalculateNextMove(ctx context.Context, board game.Board, mark game.Mark, difficulty Difficulty) (int, bool) {
	ctx, span := tracer.Start(ctx, "bot.CalculateNextMove", trace.WithAttributes(
		attribute.String("bot.mark", string(mark)),
		attribute.String("bot.difficulty", string(difficulty)),
	))
	defer span.End()

	start := time.Now()
	var (
		idx int
		ok  bool
	)
	switch difficulty {
	case DifficultyRandom:
		idx, ok = ChooseRandomMove(board, c.rng)
	default:
		idx, ok = ChooseBestMove(board, mark)
	}

	if c.duration != nil {
		c.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000,
			metric.WithAttributes(attribute.String("bot.difficulty", string(difficulty))))
	}
	span.SetAttributes(attribute.Int("move.index", idx), attribute.Bool("move.found", ok))
	return idx, ok
}
