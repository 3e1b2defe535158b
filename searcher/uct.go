package searcher

import (
	"math"

	"uctbot/game"
)

type uct struct {
	c         float64
	numerator float64
}

func newUCT(c float64, N int) uct {
	// A parent without visits gives no exploration bonus instead of ln(0)
	numerator := 0.0
	if N > 0 {
		numerator = 2 * math.Log(float64(N))
	}
	return uct{c: c, numerator: numerator}
}

// evaluate computes exploit + C*sqrt(2*ln(N)/n). Unvisited children score +Inf.
func (u uct) evaluate(exploit float64, n int) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	return exploit + u.c*math.Sqrt(u.numerator/float64(n))
}

// selectChild picks the child of a fully expanded node with the highest UCT score.
// Wins are counted for identity, so when the opponent moves at the node the exploitation
// term is inverted. The earliest child wins ties.
func (t *tree[M]) selectChild(id int, identity game.Player, c float64) int {
	parent := t.at(id)
	u := newUCT(c, parent.visits)

	best := -1
	bestScore := math.Inf(-1)
	for _, childID := range parent.children {
		child := t.at(childID)
		if child.visits == 0 {
			return childID
		}

		exploit := child.wins / float64(child.visits)
		if parent.player != identity {
			exploit = 1 - exploit
		}
		score := u.evaluate(exploit, child.visits)
		if score > bestScore {
			best = childID
			bestScore = score
		}
	}
	if best == -1 { // Every score was NaN
		return parent.children[0]
	}
	return best
}
