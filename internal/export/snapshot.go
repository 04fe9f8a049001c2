package export

import (
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// FileName is the name offered to the browser for a downloaded snapshot.
	FileName = "tic-tac-toe-board.json"

	// TimeLayout matches JavaScript's Date.toISOString.
	TimeLayout = "2006-01-02T15:04:05.000Z"
)

// Snapshot is a flat, human readable dump of one session.
type Snapshot struct {
	Board         game.Board  `json:"board"`
	CurrentPlayer game.Mark   `json:"currentPlayer"`
	Scores        game.Scores `json:"scores"`
	History       []game.Move `json:"history"`
	Mode          string      `json:"mode"`
	AI            string      `json:"ai"`
	Time          string      `json:"time"`
}

// New captures the current state of g.
func New(g *game.GameState, mode, ai string, now time.Time) Snapshot {
	return Snapshot{
		Board:         g.Board(),
		CurrentPlayer: g.CurrentPlayer(),
		Scores:        g.Scores(),
		History:       g.History(),
		Mode:          mode,
		AI:            ai,
		Time:          now.UTC().Format(TimeLayout),
	}
}

// Encode renders the snapshot as two-space indented JSON.
func Encode(s Snapshot) ([]byte, error) {
	if s.History == nil {
		s.History = []game.Move{}
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}
