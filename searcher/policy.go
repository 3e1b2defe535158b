package searcher

import (
	"golang.org/x/exp/rand"
)

// Policy picks the next move of a rollout. moves is never empty and the returned move
// must be one of them.
type Policy[S any, M comparable] interface {
	Choose(state S, moves []M, rng *rand.Rand) M
}

// Uniform picks uniformly at random among the legal moves.
type Uniform[S any, M comparable] struct{}

func (Uniform[S, M]) Choose(_ S, moves []M, rng *rand.Rand) M {
	return moves[rng.Intn(len(moves))]
}

// Priority picks uniformly among the moves Prefer accepts, or among all moves when it
// accepts none. A nil Prefer accepts none.
type Priority[S any, M comparable] struct {
	Prefer func(state S, move M) bool
}

func (p Priority[S, M]) Choose(state S, moves []M, rng *rand.Rand) M {
	var preferred []M
	for _, move := range moves {
		if p.Prefer != nil && p.Prefer(state, move) {
			preferred = append(preferred, move)
		}
	}
	if len(preferred) > 0 {
		return preferred[rng.Intn(len(preferred))]
	}
	return moves[rng.Intn(len(moves))]
}
