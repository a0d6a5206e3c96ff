package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending transactions into a new block",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.OutOrStdout(), http.MethodGet, "/v1/mine", nil)
	},
}

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Show the chain, the pending pool and the network view",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.OutOrStdout(), http.MethodGet, "/v1/blockchain", nil)
	},
}

var consensusCmd = &cobra.Command{
	Use:   "consensus",
	Short: "Adopt the longest valid chain of the known peers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(cmd.OutOrStdout(), http.MethodGet, "/v1/consensus", nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <node-url>",
	Short: "Register a node and introduce it to the network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := struct {
			NewNodeURL string `json:"newNodeUrl"`
		}{
			NewNodeURL: args[0],
		}

		return call(cmd.OutOrStdout(), http.MethodPost, "/v1/node/register", body)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(consensusCmd)
	rootCmd.AddCommand(registerCmd)
}
