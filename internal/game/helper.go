package game

import (
	"encoding/json"
	"fmt"
)

// Opponent returns the other mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// IsPlayer reports whether m is X or O.
func (m Mark) IsPlayer() bool {
	return m == X || m == O
}

// MarshalJSON encodes an empty cell as null.
func (m Mark) MarshalJSON() ([]byte, error) {
	if m == Empty {
		return []byte("null"), nil
	}
	return json.Marshal(string(m))
}

func (m *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Empty
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMark(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMark converts "X", "O" or "" into a Mark.
func ParseMark(s string) (Mark, error) {
	switch Mark(s) {
	case Empty, X, O:
		return Mark(s), nil
	}
	return Empty, fmt.Errorf("invalid mark %q", s)
}

// EmptyCells returns the free indices in ascending order.
func (b Board) EmptyCells() []int {
	cells := make([]int, 0, len(b))
	for i, cell := range b {
		if cell == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// IsEmpty reports whether no mark has been placed.
func (b Board) IsEmpty() bool {
	for _, cell := range b {
		if cell != Empty {
			return false
		}
	}
	return true
}

// IsFull reports whether every cell is marked.
func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == Empty {
			return false
		}
	}
	return true
}
