package cmd

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var blockCmd = &cobra.Command{
	Use:   "block <hash>",
	Short: "Show the block with the specified hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.OutOrStdout(), http.MethodGet, "/v1/block/"+url.PathEscape(args[0]), nil)
	},
}

var txCmd = &cobra.Command{
	Use:   "tx <id>",
	Short: "Show a sealed transaction and the block holding it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.OutOrStdout(), http.MethodGet, "/v1/tx/"+url.PathEscape(args[0]), nil)
	},
}

var addressCmd = &cobra.Command{
	Use:   "address <address>",
	Short: "Show the transactions and balance of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.OutOrStdout(), http.MethodGet, "/v1/address/"+url.PathEscape(args[0]), nil)
	},
}

func init() {
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(addressCmd)
}
