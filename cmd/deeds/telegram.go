package main

import (
	"github.com/aretw0/deeds/internal/cli"
	"github.com/spf13/cobra"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Run the Telegram bot",
	Long:  `Runs the bot with Telegram long polling. The token is read from telegram.token or DEEDS_TELEGRAM_TOKEN.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd, map[string]string{
			"telegram.token": "token",
			"document.watch": "watch",
		})
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.Serve(ctx, cli.ServeOptions{
			Config:   cfg,
			Logger:   logger,
			Telegram: true,
		})
	},
}

func init() {
	rootCmd.AddCommand(telegramCmd)
	telegramCmd.Flags().String("token", "", "Bot API token")
	telegramCmd.Flags().BoolP("watch", "w", false, "Reload the document when it changes")
}
