package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/deeds/internal/cli"
	"github.com/aretw0/deeds/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deeds",
	Short: "Deeds is an FAQ chat bot driven by a nested document",
	Long: `Deeds turns a nested YAML or JSON document of categories, questions and answers
into a chat bot. Users walk the tree with keyboard buttons, and questions the
bot cannot answer can be saved for later review.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: deeds.yaml in ., $XDG_CONFIG_HOME/deeds or ~/.config/deeds)")
	rootCmd.PersistentFlags().StringP("doc", "d", "", "FAQ document (overrides document.path)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// setup loads the configuration with command line overrides and builds the logger.
// Extra keys bind local flags of cmd.
func setup(cmd *cobra.Command, extra map[string]string) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")

	opts := []config.LoadOption{
		config.WithFlag("document.path", cmd.Flags().Lookup("doc")),
		config.WithFlag("log.level", cmd.Flags().Lookup("log-level")),
	}
	for key, flag := range extra {
		opts = append(opts, config.WithFlag(key, cmd.Flags().Lookup(flag)))
	}

	cfg, err := config.Load(path, opts...)
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.CreateLogger(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
