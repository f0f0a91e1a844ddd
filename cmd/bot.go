package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tooley/tooley/internal/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateBot(); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := openRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		return runBot(ctx, rt)
	},
}

func runBot(ctx context.Context, rt *runtime) error {
	engine, err := rt.engine()
	if err != nil {
		return err
	}
	bot, err := telegram.New(cfg.Telegram, engine, log)
	if err != nil {
		return err
	}
	return bot.Run(ctx)
}
