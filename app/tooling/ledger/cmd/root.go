// Package cmd contains the ledger client commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var nodeURL string

func init() {
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:8080", "Url of the node's public API.")
}

var rootCmd = &cobra.Command{
	Use:          "ledger",
	Short:        "Client for a ledger node",
	SilenceUsage: true,
}

// Execute runs the command selected by the command line arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
