package engine

import (
	"errors"
	"testing"

	"uctbot/experiments/metrics"
	"uctbot/game"
	"uctbot/searcher"
	"uctbot/searcher/agent"

	"github.com/stretchr/testify/require"
)

// scriptedAgent plays the first legal move, or fails with err.
type scriptedAgent struct {
	board game.TicTacToe
	err   error
}

func (a scriptedAgent) FindMove(state game.TicTacToeState) (int, metrics.SearchMetric, error) {
	if a.err != nil {
		return 0, metrics.SearchMetric{}, a.err
	}
	return a.board.LegalMoves(state)[0], metrics.SearchMetric{Episodes: 1}, nil
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("plays a scripted game to the end", func(t *testing.T) {
		board, state := game.NewTicTacToe()
		e := NewLocalEngine[game.TicTacToeState, int](board, state, map[game.Player]agent.Agent[game.TicTacToeState, int]{
			game.PlayerX: scriptedAgent{board: board},
			game.PlayerO: scriptedAgent{board: board},
		})

		winner, gameMetric, moveMetrics, err := e.Run()

		// x0 o1 x2 o3 x4 o5 x6: x wins on the 2-4-6 diagonal
		require.NoError(t, err)
		require.Equal(t, game.PlayerX, winner)
		require.Equal(t, 7, gameMetric.TotalMoves)
		require.Equal(t, int(game.PlayerX), gameMetric.Winner)
		require.Equal(t, int(game.PlayerX), gameMetric.StartingPlayer)
		require.Equal(t, e.ID, gameMetric.ID)
		require.Len(t, moveMetrics, 7)
		require.Equal(t, "6", moveMetrics[6].Move)
		require.Equal(t, int(game.PlayerO), moveMetrics[1].Player)
		require.Equal(t, 1, moveMetrics[0].Episodes, "Search metrics should be recorded per move")
	})

	t.Run("plays two searchers against each other to the end", func(t *testing.T) {
		board, state := game.NewTicTacToe()
		e := NewLocalEngine[game.TicTacToeState, int](board, state, map[game.Player]agent.Agent[game.TicTacToeState, int]{
			game.PlayerX: agent.NewEvaluationAgent(searcher.NewMCTS[game.TicTacToeState, int](board, nil, searcher.WithIterations(3000), searcher.WithSeed(1))),
			game.PlayerO: agent.NewEvaluationAgent(searcher.NewMCTS[game.TicTacToeState, int](board, nil, searcher.WithIterations(3000), searcher.WithSeed(2))),
		})

		_, gameMetric, _, err := e.Run()

		require.NoError(t, err)
		require.LessOrEqual(t, gameMetric.TotalMoves, game.MaxTicTacToePlies)
		require.True(t, board.IsEnded(e.State), "Game should be played to the end")
	})

	t.Run("stops on an agent error", func(t *testing.T) {
		boom := errors.New("boom")
		board, state := game.NewTicTacToe()
		e := NewLocalEngine[game.TicTacToeState, int](board, state, map[game.Player]agent.Agent[game.TicTacToeState, int]{
			game.PlayerX: scriptedAgent{board: board},
			game.PlayerO: scriptedAgent{board: board, err: boom},
		})

		_, gameMetric, moveMetrics, err := e.Run()

		require.ErrorIs(t, err, boom)
		require.Equal(t, 1, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 1)
	})

	t.Run("stops at the move limit", func(t *testing.T) {
		board, state := game.NewTicTacToe()
		e := NewLocalEngine[game.TicTacToeState, int](board, state, map[game.Player]agent.Agent[game.TicTacToeState, int]{
			game.PlayerX: scriptedAgent{board: board},
			game.PlayerO: scriptedAgent{board: board},
		})
		e.MaxMoves = 3

		_, gameMetric, _, err := e.Run()

		require.ErrorIs(t, err, ErrMaxMoves)
		require.Equal(t, 3, gameMetric.TotalMoves)
	})

	t.Run("panics with a single agent", func(t *testing.T) {
		board, state := game.NewTicTacToe()
		require.Panics(t, func() {
			NewLocalEngine[game.TicTacToeState, int](board, state, map[game.Player]agent.Agent[game.TicTacToeState, int]{
				game.PlayerX: scriptedAgent{board: board},
			})
		})
	})
}
