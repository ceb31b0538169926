// Package cmd implements the transit-router command line interface.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rhartert/transit-router/config"
	"github.com/rhartert/transit-router/handler"
	"github.com/rhartert/transit-router/parser"
	"github.com/rhartert/transit-router/render"
	"github.com/rhartert/transit-router/transit"
	"github.com/spf13/cobra"
)

// EnvConfig names the environment variable holding the configuration file
// path, used when --config is not set.
const EnvConfig = "TRANSIT_ROUTER_CONFIG"

var (
	flagInput  string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "transit-router",
	Short: "Statistics and itineraries on a static bus network",
	Long: `transit-router loads a bus network (stops, road distances and routes)
from a JSON document and answers questions about it: route statistics, routes
serving a stop and minimum time itineraries between two stops.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Could not load .env file: %s", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "JSON network document (default: stdin)")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML configuration file (default: $"+EnvConfig+")")
}

// initLogging sends logs to stderr so that stdout only carries answers.
func initLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// network is everything needed to answer requests.
type network struct {
	doc     *parser.Document
	cfg     *config.Config
	handler *handler.Handler
}

func loadNetwork(stdin io.Reader) (*network, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var doc *parser.Document
	if flagInput == "" {
		doc, err = parser.Parse(stdin)
	} else {
		doc, err = parser.ParseFile(flagInput)
	}
	if err != nil {
		return nil, err
	}

	catalogue, err := doc.Catalogue()
	if err != nil {
		return nil, fmt.Errorf("error loading catalogue: %w", err)
	}

	settings, ok := doc.Settings()
	if !ok {
		settings = cfg.Routing.Settings()
	}
	router, err := transit.BuildRouter(catalogue, settings)
	if err != nil {
		return nil, fmt.Errorf("error building router: %w", err)
	}

	var renderer *render.Renderer
	if ms, ok := doc.MapSettings(); ok {
		if renderer, err = render.NewRenderer(ms); err != nil {
			return nil, err
		}
	}

	return &network{
		doc:     doc,
		cfg:     cfg,
		handler: handler.New(catalogue, router, renderer),
	}, nil
}
