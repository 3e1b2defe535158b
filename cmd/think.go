package cmd

import (
	"fmt"
	"io"
	"strings"

	"uctbot/config"
	"uctbot/experiments"
	"uctbot/game"
	"uctbot/searcher"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// uctbot think
func Think(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "think [board]",
		Short: "Search the best move for a tic-tac-toe position",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`think runs a fixed number of UCT iterations from the given
			tic-tac-toe position and prints the move with the best win rate
			together with the statistics of every candidate move.

			The board is read row by row with x, o and '.' for empty
			cells, rows may be separated by '/', e.g. "xx./oo./...".
			The player to move is inferred from the number of marks.
			Without a board the search starts from the empty position.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, state := game.NewTicTacToe()
			if len(args) == 1 {
				parsed, err := game.ParseTicTacToe(args[0])
				if err != nil {
					return err
				}
				state = parsed
			}

			search := cfg.Search
			if cmd.Flags().Changed("iterations") {
				search.Iterations, _ = cmd.Flags().GetInt("iterations")
			}
			if cmd.Flags().Changed("seed") {
				search.Seed, _ = cmd.Flags().GetUint64("seed")
			}
			policy, err := experiments.Policy(search.Policy, board)
			if err != nil {
				return err
			}

			opts := append(search.SearchOptions(), searcher.WithMetrics())
			mcts := searcher.NewMCTS[game.TicTacToeState, int](board, policy, opts...)
			result, err := mcts.Think(state)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			render(cmd.OutOrStdout(), state, result)
			return nil
		},
	}

	cmd.Flags().IntP("iterations", "n", cfg.Search.Iterations, "Number of search iterations")
	cmd.Flags().Uint64P("seed", "s", 0, "Random seed, 0 seeds from the clock")

	return cmd
}

// render prints the board with the chosen move highlighted, followed by the root statistics.
func render(w io.Writer, state game.TicTacToeState, result searcher.Result[int]) {
	out := termenv.NewOutput(w)

	var b strings.Builder
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			i := row*3 + col
			var cell termenv.Style
			switch {
			case i == result.Move:
				cell = out.String(symbol(result.Player)).Foreground(out.Color("2")).Bold()
			case state.Cells[i] == game.NoPlayer:
				cell = out.String(fmt.Sprint(i)).Faint()
			default:
				cell = out.String(symbol(state.Cells[i]))
			}
			b.WriteString(" " + cell.String())
		}
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())

	fmt.Fprintf(w, "\n%s plays %d after %d iterations (%s)\n\n",
		symbol(result.Player), result.Move, result.Visits, result.Metric.Duration)
	fmt.Fprintf(w, "%4s %8s %8s\n", "move", "visits", "winrate")
	for _, child := range result.Children {
		line := fmt.Sprintf("%4d %8d %8.3f", child.Move, child.Visits, child.Wins/float64(max(child.Visits, 1)))
		if child.Move == result.Move {
			line = out.String(line).Bold().String()
		}
		fmt.Fprintln(w, line)
	}
}

func symbol(p game.Player) string {
	switch p {
	case game.PlayerX:
		return "X"
	case game.PlayerO:
		return "O"
	}
	return "."
}
