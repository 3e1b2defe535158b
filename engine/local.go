package engine

import (
	"errors"
	"fmt"
	"time"

	"uctbot/experiments/metrics"
	"uctbot/game"
	"uctbot/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrMaxMoves = errors.New("game did not end within the move limit")

var _ Engine = (*LocalEngine[game.TicTacToeState, int])(nil)

type LocalEngine[S any, M comparable] struct {
	ID       string
	Board    game.Board[S, M]
	State    S
	Agents   map[game.Player]agent.Agent[S, M]
	MaxMoves int
}

// NewLocalEngine sets up a game on board from state, with one agent per player.
func NewLocalEngine[S any, M comparable](board game.Board[S, M], state S, agents map[game.Player]agent.Agent[S, M]) *LocalEngine[S, M] {
	if len(agents) < 2 {
		panic("need at least two agents")
	}
	return &LocalEngine[S, M]{
		ID:       uuid.NewString(),
		Board:    board,
		State:    state,
		Agents:   agents,
		MaxMoves: MaxMoves,
	}
}

// Run executes the entire game loop until the game ends.
func (e *LocalEngine[S, M]) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:             e.ID,
		StartingPlayer: int(e.Board.Player(e.State)),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Str("game", e.ID).Msgf("player %d is starting", gameMetric.StartingPlayer)

	step := 1
	for !e.Board.IsEnded(e.State) {
		if step > e.MaxMoves {
			return game.NoPlayer, e.complete(gameMetric, step-1), moveMetrics, fmt.Errorf("%w: %d moves", ErrMaxMoves, e.MaxMoves)
		}

		player := e.Board.Player(e.State)
		a, ok := e.Agents[player]
		if !ok {
			return game.NoPlayer, e.complete(gameMetric, step-1), moveMetrics, fmt.Errorf("no agent for player %d", player)
		}

		move, searchMetric, err := a.FindMove(e.State)
		if err != nil {
			return game.NoPlayer, e.complete(gameMetric, step-1), moveMetrics, fmt.Errorf("player %d at move %d: %w", player, step, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Move:         fmt.Sprint(move),
			SearchMetric: searchMetric,
		})
		log.Debug().Str("game", e.ID).Msgf("player %d played %v", player, move)

		e.State = e.Board.Play(e.State, move)
		step++
	}

	winner := game.Winner(e.Board.Points(e.State))
	gameMetric = e.complete(gameMetric, step-1)
	gameMetric.Winner = int(winner)
	log.Debug().Str("game", e.ID).Msgf("game over after %d moves, winner: %d", gameMetric.TotalMoves, winner)

	return winner, gameMetric, moveMetrics, nil
}

func (e *LocalEngine[S, M]) complete(gameMetric metrics.GameMetric, moves int) metrics.GameMetric {
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = moves
	return gameMetric
}
