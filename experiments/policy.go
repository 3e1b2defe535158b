package experiments

import (
	"fmt"

	"uctbot/game"
	"uctbot/searcher"
)

// Policy returns the tic-tac-toe rollout policy called name.
func Policy(name string, board game.TicTacToe) (searcher.Policy[game.TicTacToeState, int], error) {
	switch name {
	case "", "uniform":
		return searcher.Uniform[game.TicTacToeState, int]{}, nil
	case "priority":
		return searcher.Priority[game.TicTacToeState, int]{Prefer: board.WinsImmediately}, nil
	}
	return nil, fmt.Errorf("unknown rollout policy %q", name)
}
