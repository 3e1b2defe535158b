package agent

import (
	"uctbot/experiments/metrics"
	"uctbot/searcher"
)

type evaluationAgent[S any, M comparable] struct {
	mcts *searcher.MCTS[S, M]
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation. It plays the
// move with the best win rate.
func NewEvaluationAgent[S any, M comparable](mcts *searcher.MCTS[S, M]) Agent[S, M] {
	return evaluationAgent[S, M]{mcts: mcts}
}

func (a evaluationAgent[S, M]) FindMove(state S) (M, metrics.SearchMetric, error) {
	result, err := a.mcts.Think(state)
	return result.Move, result.Metric, err
}
