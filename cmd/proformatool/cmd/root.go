// Package cmd provides the proformatool CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	modTableCSV    string
	modTableSQLite string
	verbose        bool

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "proformatool",
	Short: "proformatool - ProForma 2.0 proteoform notation toolkit",
	Long: `proformatool parses, validates, mass-calculates, and round-trips
ProForma 2.0/2.1 proteoform strings.

Supports all core notation features: global and localized modifications,
N-/C-terminal modifications, labile and unknown-position modifications,
sequence ambiguity ranges, crosslinks, branches, multi-chain (//) and
chimeric (+) peptidoforms, and charge/ionic-species suffixes.`,
	Version:           "1.0.0",
	PersistentPreRunE: initLogger,
}

func initLogger(cmd *cobra.Command, args []string) error {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.TimeKey = ""
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l.Sugar()
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(roundtripCmd)
	rootCmd.AddCommand(massCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&modTableCSV, "mod-table", "", "path to a CSV mass-override table (name,mass)")
	rootCmd.PersistentFlags().StringVar(&modTableSQLite, "mod-db", "", "path to a SQLite mass-override database")
}
