package main

import (
	"errors"

	"github.com/aretw0/deeds/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [document]",
	Short: "Chat with the bot in the terminal",
	Long:  `Starts a conversation in the terminal. Type /start, /help or /reset, pick a numbered option or type a question.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		watchMode, _ := cmd.Flags().GetBool("watch")
		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")

		if watchMode && headless {
			return errors.New("--watch and --headless cannot be used together")
		}

		cfg, logger, err := setup(cmd, map[string]string{"document.watch": "watch"})
		if err != nil {
			return err
		}
		if len(args) > 0 && !cmd.Flags().Changed("doc") {
			cfg.Document.Path = args[0]
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunChat(ctx, cli.RunOptions{
			Config:    cfg,
			Logger:    logger,
			Headless:  headless,
			JSON:      jsonMode,
			SessionID: sessionID,
			Fresh:     fresh,
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, strict IO)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().BoolP("watch", "w", false, "Reload the document when it changes")
	runCmd.Flags().StringP("session", "s", "", "Session ID to resume (default \"terminal\")")
	runCmd.Flags().Bool("fresh", false, "Discard the stored session before starting")

	// 'run' is the default when no command is provided.
	rootCmd.Args = runCmd.Args
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
