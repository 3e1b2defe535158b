package cmd

import (
	"os"
	"time"

	"uctbot/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Root() *cobra.Command {
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "uctbot",
		Short: "Monte Carlo tree search for two player games",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded

			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
			}
			return setupLogging(cfg.Log)
		},
	}

	// global flags
	root.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().StringP("log-level", "l", cfg.Log.Level, "Log level (trace, debug, info, warn, error)")

	root.AddCommand(Think(&cfg))
	root.AddCommand(SelfPlay(&cfg))
	root.AddCommand(Serve(&cfg))
	root.AddCommand(Match())

	return root
}

func setupLogging(c config.LogConfig) error {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	if c.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	return nil
}
