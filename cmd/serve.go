package cmd

import (
	"log"

	"github.com/rhartert/transit-router/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve statistics and itineraries over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadNetwork(cmd.InOrStdin())
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = n.cfg.Server.Addr
		}

		log.Printf("Transit router listening on %s", addr)
		return server.New(n.handler).Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default: server.addr from the configuration)")
}
