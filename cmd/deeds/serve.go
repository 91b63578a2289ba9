package main

import (
	"github.com/aretw0/deeds/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the JSON API, the event stream and Prometheus metrics over HTTP.
With --telegram the Telegram bot runs against the same engine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withTelegram, _ := cmd.Flags().GetBool("telegram")

		cfg, logger, err := setup(cmd, map[string]string{
			"http.addr":      "addr",
			"document.watch": "watch",
		})
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err = cli.Serve(ctx, cli.ServeOptions{
			Config:   cfg,
			Logger:   logger,
			HTTP:     true,
			Telegram: withTelegram,
		})
		if sig := ctx.Signal(); sig != nil {
			logger.Info("shutting down", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Reload the document when it changes")
	serveCmd.Flags().Bool("telegram", false, "Also run the Telegram bot")
}
