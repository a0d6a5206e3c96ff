package cmd

import (
	"net/http"

	"github.com/spf13/cobra"
)

var (
	amount    float64
	sender    string
	recipient string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		tx := struct {
			Amount    float64 `json:"amount"`
			Sender    string  `json:"sender"`
			Recipient string  `json:"recipient"`
		}{
			Amount:    amount,
			Sender:    sender,
			Recipient: recipient,
		}

		return call(cmd.OutOrStdout(), http.MethodPost, "/v1/tx/submit", tx)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to send.")
	sendCmd.Flags().StringVarP(&sender, "from", "f", "", "Address of the sender.")
	sendCmd.Flags().StringVarP(&recipient, "to", "t", "", "Address of the recipient.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
}
