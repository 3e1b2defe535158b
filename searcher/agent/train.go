package agent

import (
	"math"

	"uctbot/experiments/metrics"
	"uctbot/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent[S any, M comparable] struct {
	mcts        *searcher.MCTS[S, M]
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play. It samples root moves in proportion to
// visits^(1/temperature), so self-play games do not all repeat the same line.
func NewTrainingAgent[S any, M comparable](mcts *searcher.MCTS[S, M], temperature float64, seed uint64) Agent[S, M] {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return trainingAgent[S, M]{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a trainingAgent[S, M]) FindMove(state S) (M, metrics.SearchMetric, error) {
	result, err := a.mcts.Think(state)
	if err != nil {
		return result.Move, result.Metric, err
	}
	probs := adjustTemperature(result.Children, a.temperature)
	return sample(result.Children, probs, a.rng), result.Metric, nil
}

func adjustTemperature[M comparable](children []searcher.Stat[M], temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	maxVisits := 0
	for _, child := range children {
		maxVisits = max(maxVisits, child.Visits)
	}
	sum := 0.0
	probs := make([]float64, len(children))
	if maxVisits == 0 {
		return probs
	}
	for i, child := range children {
		// Relative to the most visited child so low temperatures cannot overflow
		probs[i] = math.Pow(float64(child.Visits)/float64(maxVisits), exponent)
		sum += probs[i]
	}
	if sum == 0 {
		return probs
	}
	// Normalize
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func sample[M comparable](children []searcher.Stat[M], probs []float64, rng *rand.Rand) M {
	sampled := rng.Float64()
	cumulative := 0.0
	last := -1
	for i, prob := range probs {
		if prob == 0 {
			continue
		}
		last = i
		cumulative += prob
		if sampled < cumulative {
			return children[i].Move
		}
	}
	if last == -1 {
		var none M
		return none
	}
	return children[last].Move // Fallback in case of rounding errors
}
