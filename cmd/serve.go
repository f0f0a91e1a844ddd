package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tooley/tooley/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and the companion site",
	RunE: func(cmd *cobra.Command, args []string) error {
		withBot, _ := cmd.Flags().GetBool("with-bot")
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}
		if dir, _ := cmd.Flags().GetString("static"); dir != "" {
			cfg.HTTP.StaticDir = dir
		}

		validate := cfg.Validate
		if withBot {
			validate = cfg.ValidateBot
		}
		if err := validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := openRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()

		srv := httpapi.New(cfg.HTTP, httpapi.Deps{
			Lessons:  rt.lessons,
			Renderer: rt.renderer,
			Library:  rt.library,
			Log:      log,
			Version:  version,
		})

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return srv.ListenAndServe(gctx) })
		if withBot {
			g.Go(func() error { return runBot(gctx, rt) })
		}
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().Bool("with-bot", false, "Also run the Telegram bot in this process")
	serveCmd.Flags().String("addr", "", "Listen address (overrides TOOLEY_HTTP_ADDR)")
	serveCmd.Flags().String("static", "", "Directory of static files to serve at /")
}
