package searcher

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"uctbot/experiments/metrics"
	"uctbot/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(o *options)

type options struct {
	iterations  int
	exploration float64
	maxPlies    int
	seed        uint64
	metrics     metrics.Collector
}

func WithIterations(iterations int) Option {
	return func(o *options) {
		if iterations >= 0 {
			o.iterations = iterations
		}
	}
}

func WithExploration(c float64) Option {
	return func(o *options) {
		if c >= 0 && !math.IsInf(c, 1) {
			o.exploration = c
		}
	}
}

// WithMaxPlies bounds the length of a rollout, longer rollouts fail with ErrInconsistentState.
func WithMaxPlies(plies int) Option {
	return func(o *options) {
		if plies > 0 {
			o.maxPlies = plies
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func WithMetrics() Option {
	return func(o *options) {
		o.metrics = metrics.NewCollector()
	}
}

// Stat holds the statistics of one root child after a search.
type Stat[M comparable] struct {
	Move   M
	Visits int
	Wins   float64
}

// Result of a single search. Children are listed in expansion order.
type Result[M comparable] struct {
	Move     M
	Player   game.Player
	Visits   int // Root visits
	Children []Stat[M]
	Metric   metrics.SearchMetric
}

// MCTS searches a fresh UCT tree on each call. It is not safe for concurrent use.
type MCTS[S any, M comparable] struct {
	board       game.Board[S, M]
	policy      Policy[S, M]
	iterations  int
	exploration float64
	maxPlies    int
	rng         *rand.Rand
	metrics     metrics.Collector
}

// NewMCTS returns a searcher over board. A nil policy plays uniformly random rollouts.
func NewMCTS[S any, M comparable](board game.Board[S, M], policy Policy[S, M], opts ...Option) *MCTS[S, M] {
	o := options{ // Default values
		iterations:  DefaultIterations,
		exploration: CSquared,
		maxPlies:    MaxRolloutPlies,
		seed:        uint64(time.Now().UnixNano()),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if policy == nil {
		policy = Uniform[S, M]{}
	}
	return &MCTS[S, M]{
		board:       board,
		policy:      policy,
		iterations:  o.iterations,
		exploration: o.exploration,
		maxPlies:    o.maxPlies,
		rng:         rand.New(rand.NewSource(o.seed)),
		metrics:     o.metrics,
	}
}

// SelectAction returns the move with the best win rate for the player to move in state.
func (m *MCTS[S, M]) SelectAction(state S) (M, error) {
	result, err := m.Think(state)
	return result.Move, err
}

// Think builds a tree from state with a fixed number of iterations and returns the root
// child with the highest win rate.
func (m *MCTS[S, M]) Think(state S) (Result[M], error) {
	var result Result[M]
	t, err := m.buildTree(state)
	if err != nil {
		return result, err
	}

	root := t.root()
	result.Player = root.player
	result.Visits = root.visits
	result.Children = make([]Stat[M], 0, len(root.children))
	for _, id := range root.children {
		child := t.at(id)
		result.Children = append(result.Children, Stat[M]{Move: child.move, Visits: child.visits, Wins: child.wins})
	}
	result.Metric = m.metrics.Complete()

	best, ok := t.bestChild()
	if !ok {
		return result, ErrNoMoveAvailable
	}
	result.Move = t.at(best).move

	log.Debug().Msgf("player %d chose move %v after %d iterations over %d nodes", root.player, result.Move, m.iterations, t.size())
	return result, nil
}

func (m *MCTS[S, M]) buildTree(state S) (*tree[M], error) {
	moves := m.board.LegalMoves(state)
	if len(moves) == 0 {
		return nil, ErrNoLegalMoves
	}

	identity := m.board.Player(state)
	t := newTree(identity, moves)

	m.metrics.Start(m.iterations, m.exploration)
	for i := 0; i < m.iterations; i++ {
		err := m.simulate(t, state, identity)
		if errors.Is(err, errMalformedScore) {
			log.Warn().Err(err).Msgf("skipping iteration %d", i)
			m.metrics.AddSkipped()
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i, err)
		}
		m.metrics.AddEpisode()
	}
	m.metrics.SetTree(t.size(), t.maxDepth)
	return t, nil
}

var errMalformedScore = errors.New("terminal score missing for searching player")

func (m *MCTS[S, M]) simulate(t *tree[M], state S, identity game.Player) error {
	id, state := m.selects(t, state, identity)
	id, state = m.expands(t, id, state)
	points, plies, err := rollout(m.board, m.policy, m.rng, state, m.maxPlies)
	if err != nil {
		return err
	}
	m.metrics.AddFullPlayout(plies)

	r, ok := reward(points, identity)
	if !ok {
		return fmt.Errorf("%w: player %d in %v", errMalformedScore, identity, points)
	}
	t.backup(id, r)
	return nil
}

// selects descends from the root to an expandable or terminal node, playing each move on state.
func (m *MCTS[S, M]) selects(t *tree[M], state S, identity game.Player) (int, S) {
	id := rootID
	for {
		n := t.at(id)
		if n.isExpandable() || n.isTerminal() {
			return id, state
		}
		id = t.selectChild(id, identity, m.exploration)
		state = m.board.Play(state, t.at(id).move)
	}
}

// expands adds a child for a random untried move of node id. A node without untried
// moves is returned unchanged.
func (m *MCTS[S, M]) expands(t *tree[M], id int, state S) (int, S) {
	n := t.at(id)
	if !n.isExpandable() {
		return id, state
	}

	i := m.rng.Intn(len(n.untried))
	move := n.untried[i]
	n.untried = slices.Delete(n.untried, i, i+1)

	next := m.board.Play(state, move)
	var moves []M
	if !m.board.IsEnded(next) {
		moves = m.board.LegalMoves(next)
	}
	return t.addChild(id, move, m.board.Player(next), moves), next
}

// rollout plays state to the end following policy and returns the final points with the
// number of plies played.
func rollout[S any, M comparable](board game.Board[S, M], policy Policy[S, M], rng *rand.Rand, state S, maxPlies int) (map[game.Player]float64, int, error) {
	plies := 0
	for !board.IsEnded(state) {
		if plies >= maxPlies {
			return nil, plies, fmt.Errorf("%w: rollout did not end within %d plies", ErrInconsistentState, maxPlies)
		}
		moves := board.LegalMoves(state)
		if len(moves) == 0 {
			return nil, plies, fmt.Errorf("%w: unfinished state has no legal moves", ErrInconsistentState)
		}
		move := policy.Choose(state, moves, rng)
		if !slices.Contains(moves, move) {
			return nil, plies, fmt.Errorf("%w: rollout policy chose illegal move %v", ErrInconsistentState, move)
		}
		state = board.Play(state, move)
		plies++
	}
	return board.Points(state), plies, nil
}
