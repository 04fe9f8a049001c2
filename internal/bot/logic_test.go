package bot

import (
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"math/rand/v2"
	"slices"
	"testing"
)

const (
	X = game.X
	O = game.O
	E = game.Empty
)

// fixedSource always returns the same pick, clamped to the range.
type fixedSource int

func (f fixedSource) IntN(n int) int {
	return min(int(f), n-1)
}

func TestChooseRandomMove(t *testing.T) {
	t.Run("Only one spot left", func(t *testing.T) {
		board := game.Board{
			X, O, X,
			O, X, O,
			X, E, O,
		}
		idx, ok := ChooseRandomMove(board, fixedSource(5))
		if !ok || idx != 7 {
			t.Errorf("ChooseRandomMove should pick the only available spot 7, got (%d, %v)", idx, ok)
		}
	})

	t.Run("Injected source selects by ascending empty index", func(t *testing.T) {
		board := game.Board{
			X, E, E,
			E, O, E,
			E, E, E,
		}
		// empties: 1 2 3 5 6 7 8
		cases := map[int]int{0: 1, 2: 3, 3: 5, 6: 8}
		for pick, want := range cases {
			idx, ok := ChooseRandomMove(board, fixedSource(pick))
			if !ok || idx != want {
				t.Errorf("pick %d: got (%d, %v), want %d", pick, idx, ok, want)
			}
		}
	})

	t.Run("Seeded generator stays on empty cells", func(t *testing.T) {
		board := game.Board{
			X, E, O,
			E, X, E,
			O, E, E,
		}
		rng := rand.New(rand.NewPCG(1, 2))
		empties := board.EmptyCells()
		for i := 0; i < 50; i++ {
			idx, ok := ChooseRandomMove(board, rng)
			if !ok || !slices.Contains(empties, idx) {
				t.Fatalf("ChooseRandomMove returned invalid move (%d, %v)", idx, ok)
			}
		}
	})

	t.Run("Full board", func(t *testing.T) {
		board := game.Board{
			X, O, X,
			O, X, O,
			O, X, O,
		}
		if idx, ok := ChooseRandomMove(board, fixedSource(0)); ok || idx != -1 {
			t.Errorf("ChooseRandomMove on full board got (%d, %v), want (-1, false)", idx, ok)
		}
	})
}

func TestChooseBestMove(t *testing.T) {
	tests := []struct {
		name   string
		board  game.Board
		player game.Mark
		want   int
	}{
		{
			name:   "Opening move takes the center",
			board:  game.Board{},
			player: O,
			want:   4,
		},
		{
			name: "O blocks the bottom row",
			board: game.Board{
				E, E, E,
				E, O, E,
				X, X, E,
			},
			player: O,
			want:   8,
		},
		{
			name: "X blocks the bottom row",
			board: game.Board{
				E, E, E,
				E, X, E,
				O, O, E,
			},
			player: X,
			want:   8,
		},
		{
			name: "O completes its row instead of blocking",
			board: game.Board{
				O, O, E,
				X, X, E,
				X, E, E,
			},
			player: O,
			want:   2,
		},
		{
			name: "Two winning moves - lowest index wins the tie",
			board: game.Board{
				X, X, E,
				O, O, E,
				E, E, E,
			},
			player: O,
			want:   2,
		},
		{
			name: "Corner reply to center opening",
			board: game.Board{
				E, E, E,
				E, X, E,
				E, E, E,
			},
			player: O,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ChooseBestMove(tt.board, tt.player)
			if !ok || got != tt.want {
				t.Errorf("ChooseBestMove() got (%d, %v), want %d", got, ok, tt.want)
			}
		})
	}
}

func TestChooseBestMoveTieBreakIsStable(t *testing.T) {
	board := game.Board{
		E, E, E,
		E, X, E,
		E, E, E,
	}
	for i := 0; i < 5; i++ {
		if got, _ := ChooseBestMove(board, O); got != 0 {
			t.Fatalf("call %d: ChooseBestMove() = %d, want 0", i, got)
		}
	}
}

func TestChooseBestMoveNeverLosesWhenAvoidable(t *testing.T) {
	// Both 2 and 5 win for O; any other reply lets X complete the top row.
	board := game.Board{
		X, X, E,
		O, O, E,
		E, E, E,
	}
	for _, idx := range []int{2, 5} {
		next := board
		next[idx] = O
		if score := Minimax(next, false); score != 1 {
			t.Errorf("O at %d scored %d, want 1", idx, score)
		}
	}
	next := board
	next[6] = O
	if score := Minimax(next, false); score != -1 {
		t.Errorf("O at 6 scored %d, want -1", score)
	}
}

func TestChooseBestMoveFullBoard(t *testing.T) {
	board := game.Board{
		X, O, X,
		X, O, O,
		O, X, X,
	}
	if idx, ok := ChooseBestMove(board, O); ok || idx != -1 {
		t.Errorf("ChooseBestMove on full board got (%d, %v), want (-1, false)", idx, ok)
	}
}

func TestMinimax(t *testing.T) {
	tests := []struct {
		name          string
		board         game.Board
		maximizingIsO bool
		want          int
	}{
		{
			name:  "X already won",
			board: game.Board{X, X, X, O, O, E, E, E, E},
			want:  -1,
		},
		{
			name:          "O already won",
			board:         game.Board{O, X, X, O, X, E, O, E, E},
			maximizingIsO: false,
			want:          1,
		},
		{
			name:  "Draw",
			board: game.Board{X, O, X, X, O, O, O, X, X},
			want:  0,
		},
		{
			name:          "O to move completes a line",
			board:         game.Board{O, O, E, X, X, E, X, E, E},
			maximizingIsO: true,
			want:          1,
		},
		{
			name:  "X to move completes a line",
			board: game.Board{O, O, E, X, X, E, E, E, E},
			want:  -1,
		},
		{
			name:          "Perfect play from one corner is a draw",
			board:         game.Board{X, E, E, E, E, E, E, E, E},
			maximizingIsO: true,
			want:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Minimax(tt.board, tt.maximizingIsO); got != tt.want {
				t.Errorf("Minimax() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMinimaxDoesNotMutateBoard(t *testing.T) {
	board := game.Board{X, E, E, E, O, E, E, E, E}
	before := board
	Minimax(board, false)
	if board != before {
		t.Errorf("Minimax mutated its input: %v", board)
	}
}
