package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/deeds/internal/cli"
	"github.com/aretw0/deeds/internal/presentation/graph"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/tree"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [document]",
	Short: "Export the FAQ tree as a Mermaid diagram",
	Long:  `Builds the document and prints a Mermaid flowchart (graph TD) of its categories, questions and answers.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")

		cfg, logger, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		if len(args) > 0 && !cmd.Flags().Changed("doc") {
			cfg.Document.Path = args[0]
		}
		if err := cfg.RequireDocument(); err != nil {
			return err
		}

		nav, err := tree.BuildFile(cfg.Document.Path)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if sessionID != "" {
			stores, err := cli.OpenStores(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer stores.Close()

			s, err := stores.Sessions.Load(cmd.Context(), sessionID)
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				logger.Warn("session not found, printing the plain tree", "session_id", sessionID)
			case err != nil:
				return err
			default:
				overlay = &graph.GraphOverlay{Category: s.Category}
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(nav.Entries(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("session", "s", "", "Highlight the category where this session stands")
}
