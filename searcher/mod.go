package searcher

import (
	"errors"
	"math"

	"uctbot/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant, applied as C*sqrt(2*ln(N)/n)

const DefaultIterations = 1000

const MaxRolloutPlies = 1000 // Safety bound on a single rollout

// Rewards estimate the chance of winning
const WIN = 1.0
const LOSS = 0.0

var (
	ErrNoLegalMoves      = errors.New("no legal moves from root state")
	ErrNoMoveAvailable   = errors.New("no move available after search")
	ErrInconsistentState = errors.New("inconsistent game state")
)

// reward maps a terminal score between -1 and 1 for player onto [LOSS, WIN].
// It reports false when the score is missing or not a number. A draw counts as half a win
// rather than as no win at all.
func reward(points map[game.Player]float64, player game.Player) (float64, bool) {
	score, ok := points[player]
	if !ok || math.IsNaN(score) {
		return 0, false
	}
	return min(max((score+1)/2, LOSS), WIN), true
}
