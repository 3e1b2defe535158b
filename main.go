package main

import (
	"context"
	"os"
	"os/signal"

	"uctbot/cmd"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("uctbot failed")
	}
}
