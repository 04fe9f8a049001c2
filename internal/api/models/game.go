package models

import "ctchen222/Themed-Tic-Tac-Toe/pkg/proto"

// MoveRequest defines the structure for a cell click.
type MoveRequest struct {
	Index *int `json:"index" binding:"required,cell"`
}

// ModeRequest defines the structure for a mode switch.
type ModeRequest struct {
	Mode string `json:"mode" binding:"required,oneof=pvp pve"`
}

// DifficultyRequest defines the structure for a difficulty switch.
type DifficultyRequest struct {
	Difficulty string `json:"difficulty" binding:"required,oneof=random optimal"`
}

// CommandResponse reports whether a move or undo changed the board.
type CommandResponse struct {
	Applied bool           `json:"applied"`
	State   proto.GameView `json:"state"`
}

// SnapshotListResponse lists archived snapshot IDs, newest first.
type SnapshotListResponse struct {
	IDs []string `json:"ids"`
}
