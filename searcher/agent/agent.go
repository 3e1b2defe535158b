package agent

import (
	"uctbot/experiments/metrics"
)

type Agent[S any, M comparable] interface {
	// FindMove returns the chosen move and the metrics (if collected) of the search behind it
	FindMove(state S) (M, metrics.SearchMetric, error)
}
