package metrics

import (
	"time"
)

type SearchMetric struct {
	Iterations   int
	Exploration  float64
	Duration     time.Duration
	Episodes     int // Completed iterations
	FullPlayouts int // Rollouts that reached a terminal state
	Skipped      int // Iterations dropped on a malformed score
	RolloutPlies int
	TreeSize     int
	TreeDepth    int
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Move   string
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type AgentConfig struct {
	ID          int
	Iterations  int
	Exploration float64
	Policy      string
	Temperature float64 // 0 plays the best move, > 0 samples by visits
}

// Collector gathers statistics of a single search. Implementations are not safe for concurrent use.
type Collector interface {
	Start(iterations int, exploration float64)
	AddEpisode()
	AddFullPlayout(plies int)
	AddSkipped()
	SetTree(size, depth int)
	Complete() SearchMetric
}

type collector struct {
	metric    SearchMetric
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(iterations int, exploration float64) {
	m.startTime = time.Now()
	m.metric = SearchMetric{Iterations: iterations, Exploration: exploration}
}

func (m *collector) AddEpisode() {
	m.metric.Episodes++
}

func (m *collector) AddFullPlayout(plies int) {
	m.metric.FullPlayouts++
	m.metric.RolloutPlies += plies
}

func (m *collector) AddSkipped() {
	m.metric.Skipped++
}

func (m *collector) SetTree(size, depth int) {
	m.metric.TreeSize = size
	m.metric.TreeDepth = depth
}

func (m *collector) Complete() SearchMetric {
	metric := m.metric
	metric.Duration = time.Since(m.startTime)
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(iterations int, exploration float64) {}
func (m *dummyCollector) AddEpisode()                               {}
func (m *dummyCollector) AddFullPlayout(plies int)                  {}
func (m *dummyCollector) AddSkipped()                               {}
func (m *dummyCollector) SetTree(size, depth int)                   {}
func (m *dummyCollector) Complete() SearchMetric                    { return SearchMetric{} }
