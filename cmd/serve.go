package cmd

import (
	"context"
	"errors"
	"net/http"

	"uctbot/config"
	"uctbot/experiments"
	"uctbot/game"
	"uctbot/meta"
	"uctbot/searcher"
	"uctbot/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// uctbot serve
func Serve(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer tic-tac-toe move requests over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			board := game.TicTacToe{}
			policy, err := experiments.Policy(cfg.Search.Policy, board)
			if err != nil {
				return err
			}
			opts := append(cfg.Search.SearchOptions(), searcher.WithMetrics())
			mcts := searcher.NewMCTS[game.TicTacToeState, int](board, policy, opts...)

			srv := &http.Server{Addr: addr, Handler: agent.NewServer(agent.NewEvaluationAgent(mcts))}
			go func() {
				<-cmd.Context().Done()
				_ = srv.Shutdown(context.Background())
			}()

			log.Info().Msgf("listening on %s", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", meta.ADDR, "Listen address")

	return cmd
}
