package cmd

import (
	"fmt"

	"uctbot/engine"
	"uctbot/game"

	"github.com/spf13/cobra"
)

// uctbot match
func Match() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Play a tic-tac-toe game between two move servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, _ := cmd.Flags().GetString("x")
			o, _ := cmd.Flags().GetString("o")

			e := engine.NewRemoteEngine(map[game.Player]string{game.PlayerX: x, game.PlayerO: o}, nil)
			winner, gameMetric, _, err := e.Run()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, e.State)
			if winner == game.NoPlayer {
				fmt.Fprintf(w, "draw after %d moves\n", gameMetric.TotalMoves)
			} else {
				fmt.Fprintf(w, "%s wins after %d moves\n", symbol(winner), gameMetric.TotalMoves)
			}
			return nil
		},
	}

	cmd.Flags().String("x", "", "URL of the move server playing x")
	cmd.Flags().String("o", "", "URL of the move server playing o")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("o")

	return cmd
}
