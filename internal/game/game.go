package game

// Mark represents the mark of a player (X, O) or an empty cell.
type Mark string

// Winner is the outcome of a finished game.
type Winner string

// Status is the state of the game machine.
type Status string

const (
	// Marks
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"

	// Outcomes
	WinnerX    Winner = "X"
	WinnerO    Winner = "O"
	WinnerDraw Winner = "draw"

	// States
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDrawn      Status = "drawn"

	// Board boundaries
	BorderMin = 0
	BorderMax = 8
	Center    = 4
)

// WinLines lists every index triple that ends the game when uniformly marked.
// The order matters: when several lines are complete, the first one is reported.
var WinLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is a 3x3 board stored row-major.
type Board [9]Mark

// Move is a single history entry.
type Move struct {
	Index  int  `json:"i"`
	Player Mark `json:"player"`
}

// Scores tallies finished games within a session.
type Scores struct {
	X    int `json:"X"`
	O    int `json:"O"`
	Draw int `json:"D"`
}

// Result describes a finished board. Line is empty on a draw.
type Result struct {
	Winner Winner `json:"winner"`
	Line   []int  `json:"line"`
}

// GameState owns one game and the session score tallies.
// It is not safe for concurrent use; callers serialize access.
type GameState struct {
	board         Board
	currentPlayer Mark
	isGameOver    bool
	history       []Move
	scores        Scores
	result        *Result
}

// New returns an empty game with X to move.
func New() *GameState {
	return &GameState{currentPlayer: X}
}

// ApplyMove places player at index. It returns false and leaves the state
// untouched when the game is over, the index is off the board, player is not
// a mark, or the cell is taken.
func (g *GameState) ApplyMove(index int, player Mark) bool {
	if g.isGameOver || !player.IsPlayer() {
		return false
	}
	if index < BorderMin || index > BorderMax || g.board[index] != Empty {
		return false
	}

	g.board[index] = player
	g.history = append(g.history, Move{Index: index, Player: player})

	if res, ok := CheckWinner(g.board); ok {
		g.finish(res)
		return true
	}

	g.currentPlayer = player.Opponent()
	return true
}

func (g *GameState) finish(res Result) {
	g.isGameOver = true
	switch res.Winner {
	case WinnerX:
		g.scores.X++
	case WinnerO:
		g.scores.O++
	case WinnerDraw:
		g.scores.Draw++
	}
	g.result = &res
}

// Undo takes back the last move. The turn goes to the mark of the undone
// move. Nothing happens once the game is over or when there is no history.
func (g *GameState) Undo() bool {
	if len(g.history) == 0 || g.isGameOver {
		return false
	}

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board[last.Index] = Empty
	g.isGameOver = false
	g.result = nil
	g.currentPlayer = last.Player
	return true
}

// Reset starts a new game. Scores are kept.
func (g *GameState) Reset() {
	g.board = Board{}
	g.history = nil
	g.isGameOver = false
	g.result = nil
	g.currentPlayer = X
}

func (g *GameState) Board() Board { return g.board }

func (g *GameState) CurrentPlayer() Mark { return g.currentPlayer }

func (g *GameState) IsGameOver() bool { return g.isGameOver }

func (g *GameState) Scores() Scores { return g.scores }

// History returns a copy of the moves played so far.
func (g *GameState) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

// Result returns the outcome of a finished game.
func (g *GameState) Result() (Result, bool) {
	if g.result == nil {
		return Result{}, false
	}
	res := Result{Winner: g.result.Winner, Line: append([]int{}, g.result.Line...)}
	return res, true
}

// Status reports where the game is in its lifecycle.
func (g *GameState) Status() Status {
	switch {
	case g.result == nil:
		return StatusInProgress
	case g.result.Winner == WinnerDraw:
		return StatusDrawn
	default:
		return StatusWon
	}
}

// EmptyCells returns the free indices in ascending order.
func (g *GameState) EmptyCells() []int {
	return g.board.EmptyCells()
}

// CheckWinner scans WinLines in order and reports the first complete line.
// A full board without a line is a draw. ok is false while the game goes on.
func CheckWinner(b Board) (res Result, ok bool) {
	for _, line := range WinLines {
		a := b[line[0]]
		if a != Empty && a == b[line[1]] && a == b[line[2]] {
			return Result{Winner: Winner(a), Line: []int{line[0], line[1], line[2]}}, true
		}
	}

	if b.IsFull() {
		return Result{Winner: WinnerDraw, Line: []int{}}, true
	}

	return Result{}, false
}
