package cmd

import (
	"github.com/rustyeddy/foreclosure/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "foreclosure",
	Short: "Simulate a borrower paying a mortgage until foreclosure",
	Long: `Foreclosure runs a month-by-month simulation of a borrower paying a loan.

Every month the borrower is paid, then pays what it can. Payments short of
the monthly amount are missed payments; after five of them the loan is
foreclosed and the simulation stops.

It provides tools for:
  - Running the reference scenario or one loaded from a config file
  - Generating and validating configuration files
  - Recording runs to CSV or SQLite and reviewing them later`,
	SilenceUsage: true,
}

var (
	logLevel string
	verbose  bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every simulated month (same as --log-level debug)")
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return logging.New("debug")
	}
	return logging.New(logLevel)
}
