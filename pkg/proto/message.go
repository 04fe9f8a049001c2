package proto

import "ctchen222/Themed-Tic-Tac-Toe/internal/game"

// Message types
const (
	TypeMove       = "move"
	TypeUndo       = "undo"
	TypeReset      = "reset"
	TypeMode       = "mode"
	TypeDifficulty = "difficulty"

	TypeUpdate = "update"
	TypeError  = "error"
)

// ClientToServerMessage represents a command from the browser.
type ClientToServerMessage struct {
	Type       string `json:"type" validate:"required,oneof=move undo reset mode difficulty"`
	Index      *int   `json:"index,omitempty" validate:"required_if=Type move,omitempty,cell"`
	Mode       string `json:"mode,omitempty" validate:"required_if=Type mode,omitempty,oneof=pvp pve"`
	Difficulty string `json:"difficulty,omitempty" validate:"required_if=Type difficulty,omitempty,oneof=random optimal"`
}

// ServerToClientMessage represents a message from the server to the browser.
type ServerToClientMessage struct {
	Type   string    `json:"type" validate:"required"`
	Reason string    `json:"reason,omitempty"`
	State  *GameView `json:"state,omitempty"`
}

// GameView is everything the page needs to render the board, the turn
// indicator, the winning line and the score table.
type GameView struct {
	SessionID     string       `json:"sessionId"`
	Board         game.Board   `json:"board"`
	CurrentPlayer game.Mark    `json:"currentPlayer"`
	IsGameOver    bool         `json:"isGameOver"`
	Status        game.Status  `json:"status"`
	Result        *game.Result `json:"result,omitempty"`
	Scores        game.Scores  `json:"scores"`
	History       []game.Move  `json:"history"`
	Mode          string       `json:"mode"`
	Difficulty    string       `json:"ai"`
}
