package cmd

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Draw the network as an SVG image",
	Long:  "Draw the routes and stops of the input document with its render_settings and print the SVG image.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadNetwork(cmd.InOrStdin())
		if err != nil {
			return err
		}

		svg, ok := n.handler.MapSVG()
		if !ok {
			return errors.New("the input document has no render_settings")
		}
		_, err = io.WriteString(cmd.OutOrStdout(), svg+"\n")
		return err
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)
}
