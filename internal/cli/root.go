// Package cli implements the scannorm command line tool. It is calling-side
// convenience around the adapter library, not part of the normalization
// contract.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/scannorm/internal/config"
	"github.com/telhawk-systems/scannorm/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scannorm",
	Short: "Normalize security scanner output",
	Long: `scannorm converts heterogeneous scanner exports (CSV, JSON, XML) into
the canonical vulnerability and compliance record schemas used by the
ingestion platform.`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: none)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = config.Default()
	}
	logging.SetDefault(logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format))
}
