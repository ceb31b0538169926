package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Answer the stat requests of the input document",
	Long:  "Answer all the stat_requests of the input document and print the answers as a JSON array.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadNetwork(cmd.InOrStdin())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false) // keep SVG maps readable
		return enc.Encode(n.handler.AnswerAll(n.doc.StatRequests))
	},
}

func init() {
	rootCmd.AddCommand(answerCmd)
}
