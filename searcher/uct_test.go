package searcher

import (
	"math"
	"testing"

	"uctbot/game"

	"github.com/stretchr/testify/require"
)

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(2.0, 100)
		got := policy.evaluate(0.5, 10)

		expected := 0.5 + 2.0*math.Sqrt(2*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + C*sqrt(2*ln(N)/n)")
	})

	t.Run("unvisited child scores infinity", func(t *testing.T) {
		policy := newUCT(2.0, 100)

		require.Equal(t, math.Inf(1), policy.evaluate(0.5, 0), "Should not divide by zero visits")
	})

	t.Run("unvisited parent gives no exploration", func(t *testing.T) {
		policy := newUCT(2.0, 0)

		require.Equal(t, 0.5, policy.evaluate(0.5, 3), "Should not take the log of zero")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy1 := newUCT(2.0, 100)
		policy2 := newUCT(2.0, 1000)

		require.Greater(t, policy2.evaluate(0.5, 10), policy1.evaluate(0.5, 10),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCT(2.0, 100)

		require.Greater(t, policy.evaluate(0.5, 10), policy.evaluate(0.5, 20),
			"More child visits should decrease exploration term")
	})
}

// fullyExpanded returns a root owned by player with fully expanded children of the given stats.
func fullyExpanded(player game.Player, stats ...[2]float64) *tree[string] {
	tr := newTree[string](player, nil)
	for i, s := range stats {
		id := tr.addChild(rootID, string(rune('a'+i)), 2, nil)
		tr.at(id).visits = int(s[0])
		tr.at(id).wins = s[1]
		tr.root().visits += int(s[0])
		tr.root().wins += s[1]
	}
	return tr
}

func TestSelectChild(t *testing.T) {
	t.Run("selects the child with max UCT value", func(t *testing.T) {
		tr := fullyExpanded(1, [2]float64{5, 1}, [2]float64{5, 4})

		got := tr.selectChild(rootID, 1, CSquared)

		require.Equal(t, "b", tr.at(got).move, "Node should select child with max policy value")
	})

	t.Run("selects the first child on equal scores", func(t *testing.T) {
		tr := fullyExpanded(1, [2]float64{4, 2}, [2]float64{4, 2}, [2]float64{4, 2})

		got := tr.selectChild(rootID, 1, CSquared)

		require.Equal(t, "a", tr.at(got).move, "Ties should go to the earliest child")
	})

	t.Run("selects an unvisited child before any visited one", func(t *testing.T) {
		tr := fullyExpanded(1, [2]float64{1, 1}, [2]float64{0, 0})

		got := tr.selectChild(rootID, 1, CSquared)

		require.Equal(t, "b", tr.at(got).move, "Unvisited child should be forced")
	})

	t.Run("selects the child that minimizes the searching player's wins on the opponent's turn", func(t *testing.T) {
		tr := fullyExpanded(2, [2]float64{5, 4}, [2]float64{5, 1})

		got := tr.selectChild(rootID, 1, CSquared)

		require.Equal(t, "b", tr.at(got).move, "Opponent should pick the child worst for the searching player")
	})

	t.Run("falls back to the first child when no score compares", func(t *testing.T) {
		tr := fullyExpanded(1, [2]float64{1, 1}, [2]float64{1, 0})
		tr.root().visits = 1 // ln(1) = 0, so Inf*0 makes every score NaN

		got := tr.selectChild(rootID, 1, math.Inf(1))

		require.Equal(t, "a", tr.at(got).move, "NaN scores should not leave the node without a child")
	})

	t.Run("exploration can outweigh exploitation", func(t *testing.T) {
		tr := fullyExpanded(1, [2]float64{100, 60}, [2]float64{2, 1})

		got := tr.selectChild(rootID, 1, CSquared)
		require.Equal(t, "b", tr.at(got).move, "Rarely visited child should be explored")

		got = tr.selectChild(rootID, 1, 0)
		require.Equal(t, "a", tr.at(got).move, "Without exploration the higher win rate should win")
	})
}
