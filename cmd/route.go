package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rhartert/transit-router/handler"
	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Find a minimum time itinerary between two stops",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")

		n, err := loadNetwork(cmd.InOrStdin())
		if err != nil {
			return err
		}

		answer := n.handler.Route(0, from, to)
		if _, ok := answer.(handler.ErrorAnswer); ok {
			return fmt.Errorf("no itinerary from %q to %q", from, to)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	},
}

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().String("from", "", "Name of the departure stop")
	routeCmd.Flags().String("to", "", "Name of the arrival stop")
	routeCmd.MarkFlagRequired("from")
	routeCmd.MarkFlagRequired("to")
}
