package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/deeds"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of deeds",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "deeds version %s\n", strings.TrimSpace(deeds.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
