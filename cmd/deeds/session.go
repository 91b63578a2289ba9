package main

import (
	"github.com/aretw0/deeds/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent sessions",
	Long:  `List, inspect, and remove the sessions held by the configured session store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()
		return cli.ListSessions(cmd.Context(), stores.Sessions, cmd.OutOrStdout())
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()
		return cli.InspectSession(cmd.Context(), stores.Sessions, args[0], cmd.OutOrStdout())
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return cobra.MinimumNArgs(1)(cmd, args)
		}

		stores, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer stores.Close()

		ids := args
		if all {
			if ids, err = stores.Sessions.List(cmd.Context()); err != nil {
				return err
			}
		}
		return cli.RemoveSessions(cmd.Context(), stores.Sessions, ids, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
	sessionRmCmd.Flags().Bool("all", false, "Remove every session")
}

func openStores(cmd *cobra.Command) (*cli.Stores, error) {
	cfg, logger, err := setup(cmd, nil)
	if err != nil {
		return nil, err
	}
	return cli.OpenStores(cmd.Context(), cfg, logger)
}
