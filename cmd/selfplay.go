package cmd

import (
	"fmt"
	"sort"
	"time"

	"uctbot/config"
	"uctbot/experiments"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const SPIN = 14

// uctbot selfplay
func SelfPlay(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selfplay",
		Short: "Play searchers against each other and record the games",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`selfplay plays every pair of configured agents against each
			other, alternating the starting side, and writes the agent
			configs, game records and move records as CSV files under
			<output>/<name>/<timestamp>.

			Without configured agents the search settings play against
			themselves.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp := experiments.FromConfig(*cfg)
			if cmd.Flags().Changed("games") {
				exp.Games, _ = cmd.Flags().GetInt("games")
			}
			if cmd.Flags().Changed("workers") {
				exp.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if cmd.Flags().Changed("name") {
				exp.Name, _ = cmd.Flags().GetString("name")
			}

			log.Info().Msgf("playing %d games per match up between %d agents", exp.Games, len(exp.Agents))
			s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Start()
			summary, err := experiments.Run(cmd.Context(), exp)
			s.Stop()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d games written to %s\n", summary.Games, summary.Dir)
			ids := make([]int, 0, len(summary.Wins))
			for id := range summary.Wins {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			for _, id := range ids {
				fmt.Fprintf(w, "agent %d: %d wins\n", id, summary.Wins[id])
			}
			fmt.Fprintf(w, "draws: %d\n", summary.Draws)
			return nil
		},
	}

	cmd.Flags().IntP("games", "g", cfg.SelfPlay.Games, "Games per match up")
	cmd.Flags().IntP("workers", "w", cfg.SelfPlay.Workers, "Games played in parallel")
	cmd.Flags().String("name", cfg.SelfPlay.Name, "Experiment name")

	return cmd
}
