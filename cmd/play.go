package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tooley/tooley/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Plan lessons in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	playCmd.Flags().StringP("out", "o", ".", "Directory that receives generated documents")
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}

// runPlay opens the services and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx := cmd.Context()
	rt, err := openRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	engine, err := rt.engine()
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if info, err := os.Stat(out); err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %q is not usable", out)
	}

	opts := app.Options{
		Engine: engine,
		UserID: "local",
		OutDir: out,
	}
	if rt.offline() {
		opts.Notice = "Offline sample lessons. Set TOOLEY_LLM_PROVIDER for real ones."
	}
	return app.Run(ctx, opts)
}
