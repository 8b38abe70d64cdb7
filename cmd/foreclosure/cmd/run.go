package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rustyeddy/foreclosure/config"
	"github.com/rustyeddy/foreclosure/journal"
	"github.com/rustyeddy/foreclosure/sim"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation until the loan is foreclosed",
	Long: `Run the month-by-month simulation.

Without a config file the reference scenario is used: a 286000 balance paid
at 1700 a month by a borrower with 2800 in savings and 1350 of monthly income.

Examples:
  foreclosure run
  foreclosure run -f scenario.yaml
  foreclosure run --policy consecutive -v`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runConfigPath string
	runPolicy     string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "file", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().StringVar(&runPolicy, "policy", "", "override loan.miss_policy (cumulative or consecutive)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if runPolicy != "" {
		cfg.Loan.MissPolicy = runPolicy
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	scenario, err := cfg.Scenario()
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}

	return simulate(cmd.Context(), cmd.OutOrStdout(), scenario, cfg.Journal, j, log)
}

// simulate runs the scenario, closes the journal and only then reports where
// the results were saved. It owns j.
func simulate(ctx context.Context, out io.Writer, scenario sim.Scenario, jc config.JournalConfig, j journal.Journal, log *zap.Logger) error {
	engine, err := sim.NewEngine(scenario, j, sim.WithLogger(log))
	if err != nil {
		j.Close()
		return fmt.Errorf("create engine: %w", err)
	}

	res, runErr := engine.Run(ctx)
	if runErr != nil && !errors.Is(runErr, sim.ErrNoForeclosure) {
		j.Close()
		return fmt.Errorf("run: %w", runErr)
	}

	if err := j.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}

	sim.PrintResult(out, res)
	switch jc.Type {
	case "csv":
		fmt.Fprintf(out, "\nResults saved to:\n  - %s\n  - %s\n", jc.MonthsFile, jc.RunsFile)
	case "sqlite":
		fmt.Fprintf(out, "\nResults saved to: %s\n", jc.DBPath)
	}
	return runErr
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.MonthsFile, jc.RunsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return journal.Discard, nil
	}
}
