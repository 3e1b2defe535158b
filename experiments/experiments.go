package experiments

import (
	"context"
	"fmt"
	"time"

	"uctbot/config"
	"uctbot/engine"
	"uctbot/experiments/metrics"
	"uctbot/game"
	"uctbot/searcher"
	"uctbot/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Experiment struct {
	Name     string
	Output   string
	Games    int // Per match up
	Workers  int
	MaxPlies int
	Seed     uint64 // 0 seeds every search from the clock
	Agents   []config.AgentConfig
}

func FromConfig(cfg config.Config) Experiment {
	return Experiment{
		Name:     cfg.SelfPlay.Name,
		Output:   cfg.SelfPlay.Output,
		Games:    cfg.SelfPlay.Games,
		Workers:  cfg.SelfPlay.Workers,
		MaxPlies: cfg.Search.MaxPlies,
		Seed:     cfg.Search.Seed,
		Agents:   cfg.AgentConfigs(),
	}
}

type Summary struct {
	Dir   string
	Games int
	Wins  map[int]int // By agent ID
	Draws int
}

type job struct {
	game   int
	agents [2]int // Agent indices, the first one starts
}

type outcome struct {
	game  metrics.GameRecord
	moves []metrics.MoveRecord
}

// MatchUps pairs every agent with every other agent, or a lone agent with itself.
func MatchUps(n int) [][2]int {
	if n == 1 {
		return [][2]int{{0, 0}}
	}
	var matchUps [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			matchUps = append(matchUps, [2]int{i, j})
		}
	}
	return matchUps
}

// Run plays every match up exp.Games times, alternating the starting agent, and stores the
// agent configs, game records and move records as CSV files.
func Run(ctx context.Context, exp Experiment) (Summary, error) {
	if len(exp.Agents) == 0 {
		return Summary{}, fmt.Errorf("experiment %s has no agents", exp.Name)
	}

	configs := make([]metrics.AgentConfig, len(exp.Agents))
	for i, a := range exp.Agents {
		configs[i] = metrics.AgentConfig{
			ID:          i + 1,
			Iterations:  a.Iterations,
			Exploration: a.Exploration,
			Policy:      a.Policy,
			Temperature: a.Temperature,
		}
	}

	var jobs []job
	for _, matchUp := range MatchUps(len(exp.Agents)) {
		for i := 0; i < exp.Games; i++ {
			agents := matchUp
			if i%2 == 1 {
				agents = [2]int{matchUp[1], matchUp[0]}
			}
			jobs = append(jobs, job{game: len(jobs), agents: agents})
		}
	}

	log.Info().Msgf("starting %s experiment with %d games...", exp.Name, len(jobs))

	outcomes := make([]outcome, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exp.Workers, 1))
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o, err := exp.play(j, configs)
			if err != nil {
				return fmt.Errorf("game %d: %w", j.game+1, err)
			}
			outcomes[j.game] = o
			log.Info().Msgf("completed game %d of %d with winner: agent %d", j.game+1, len(jobs), winnerAgent(o.game))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	summary := Summary{Games: len(jobs), Wins: map[int]int{}}
	gameRecords := make([]metrics.GameRecord, 0, len(outcomes))
	var moveRecords []metrics.MoveRecord
	for _, o := range outcomes {
		gameRecords = append(gameRecords, o.game)
		moveRecords = append(moveRecords, o.moves...)
		if winner := winnerAgent(o.game); winner != 0 {
			summary.Wins[winner]++
		} else {
			summary.Draws++
		}
	}

	writer, err := metrics.NewWriter(exp.Output, exp.Name)
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return summary, err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, err
	}
	log.Info().Msgf("stored records in %s", summary.Dir)

	return summary, nil
}

// play runs a single game between the two agents of j.
func (exp Experiment) play(j job, configs []metrics.AgentConfig) (outcome, error) {
	board, state := game.NewTicTacToe()
	agents := map[game.Player]agent.Agent[game.TicTacToeState, int]{}
	for k, player := range []game.Player{game.PlayerX, game.PlayerO} {
		var seed uint64
		if exp.Seed != 0 {
			seed = exp.Seed + uint64(2*j.game+k)
		}
		a, err := NewAgent(exp.Agents[j.agents[k]], exp.MaxPlies, seed)
		if err != nil {
			return outcome{}, err
		}
		agents[player] = a
	}

	e := engine.NewLocalEngine[game.TicTacToeState, int](board, state, agents)
	_, gameMetric, moveMetrics, err := e.Run()
	if err != nil {
		return outcome{}, err
	}

	o := outcome{
		game: metrics.GameRecord{
			Agent1:     configs[j.agents[0]].ID,
			Agent2:     configs[j.agents[1]].ID,
			GameMetric: gameMetric,
		},
		moves: make([]metrics.MoveRecord, 0, len(moveMetrics)),
	}
	for _, mm := range moveMetrics {
		o.moves = append(o.moves, metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
	}
	return o, nil
}

// NewAgent builds a tic-tac-toe agent from cfg. A zero seed seeds from the clock.
func NewAgent(cfg config.AgentConfig, maxPlies int, seed uint64) (agent.Agent[game.TicTacToeState, int], error) {
	board := game.TicTacToe{}
	policy, err := Policy(cfg.Policy, board)
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{
		searcher.WithIterations(cfg.Iterations),
		searcher.WithExploration(cfg.Exploration),
		searcher.WithMaxPlies(maxPlies),
		searcher.WithMetrics(),
	}
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed))
	}
	mcts := searcher.NewMCTS[game.TicTacToeState, int](board, policy, options...)

	if cfg.Temperature > 0 {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return agent.NewTrainingAgent(mcts, cfg.Temperature, seed), nil
	}
	return agent.NewEvaluationAgent(mcts), nil
}

// winnerAgent maps the winning player of a game record onto the agent ID, 0 on a draw.
func winnerAgent(record metrics.GameRecord) int {
	switch game.Player(record.Winner) {
	case game.PlayerX:
		return record.Agent1
	case game.PlayerO:
		return record.Agent2
	}
	return 0
}
