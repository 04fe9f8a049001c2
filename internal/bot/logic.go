package bot

import (
	"ctchen222/Themed-Tic-Tac-Toe/internal/game"
	"math"
)

// RandomSource picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// ChooseRandomMove picks one of the empty cells uniformly at random.
func ChooseRandomMove(board game.Board, rng RandomSource) (int, bool) {
	available := board.EmptyCells()
	if len(available) == 0 {
		return -1, false
	}
	return available[rng.IntN(len(available))], true
}

// ChooseBestMove runs a full-depth minimax for player and returns the
// highest scoring cell. Ties go to the lowest index. An empty board always
// opens in the center.
func ChooseBestMove(board game.Board, player game.Mark) (int, bool) {
	available := board.EmptyCells()
	if len(available) == 0 {
		return -1, false
	}
	if len(available) == len(board) {
		return game.Center, true
	}

	bestScore, bestMove := math.MinInt, -1
	for _, idx := range available {
		next := board
		next[idx] = player
		// Minimax scores from O's side; flip it so player always maximizes.
		score := Minimax(next, player.Opponent() == game.O)
		if player == game.X {
			score = -score
		}
		if score > bestScore {
			bestScore, bestMove = score, idx
		}
	}
	return bestMove, true
}

// Minimax scores board for O: +1 O wins, -1 X wins, 0 draw. O maximizes and
// X minimizes. Wins are not weighted by depth.
func Minimax(board game.Board, maximizingIsO bool) int {
	if res, ok := game.CheckWinner(board); ok {
		switch res.Winner {
		case game.WinnerX:
			return -1
		case game.WinnerO:
			return 1
		default:
			return 0
		}
	}

	if maximizingIsO {
		best := math.MinInt
		for _, idx := range board.EmptyCells() {
			next := board
			next[idx] = game.O
			best = max(best, Minimax(next, false))
		}
		return best
	}

	best := math.MaxInt
	for _, idx := range board.EmptyCells() {
		next := board
		next[idx] = game.X
		best = min(best, Minimax(next, true))
	}
	return best
}
