package main

import (
	"github.com/aretw0/deeds/internal/cli"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Review the questions users asked to save",
}

var questionsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, logger, err := setup(cmd, nil)
		if err != nil {
			return err
		}
		stores, err := cli.OpenStores(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer stores.Close()

		return cli.ListQuestions(cmd.Context(), stores.Questions, asJSON, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
	questionsCmd.AddCommand(questionsLsCmd)
	questionsLsCmd.Flags().Bool("json", false, "Print one JSON object per line")
}
