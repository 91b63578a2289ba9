package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/deeds/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [document]",
	Short: "Check that the document builds into a tree",
	Long:  `Parses the document, reports its shape and warns about categories that hold nothing.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, _, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		if len(args) > 0 && !cmd.Flags().Changed("doc") {
			cfg.Document.Path = args[0]
		}
		if err := cfg.RequireDocument(); err != nil {
			return err
		}

		report, err := cli.Validate(cfg.Document.Path)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		report.Print(out)
		fmt.Fprintln(out, "Document is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print the report as JSON")
}
