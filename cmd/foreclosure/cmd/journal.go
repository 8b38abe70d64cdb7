package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/foreclosure/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query recorded runs",
	Long: `Query and display runs recorded in a SQLite journal.

Subcommands:
  runs  - List recorded runs
  show  - Show one run and its months as an Org block

Examples:
  foreclosure journal runs -d runs.sqlite
  foreclosure journal show <run-id>`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and its months",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalShowCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./foreclosure.sqlite", "path to SQLite journal DB")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSTARTED\tPOLICY\tMONTHS\tBALANCE\tSTATUS")
	for _, r := range runs {
		status := "active"
		if r.Foreclosed {
			status = "foreclosed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.RunID, r.StartedAt.Local().Format(time.DateTime), r.Policy,
			r.Months, r.FinalBalance.StringFixed(2), status)
	}
	return w.Flush()
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runID := args[0]
	run, err := j.GetRun(runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	months, err := j.ListMonthsByRunID(runID)
	if err != nil {
		return fmt.Errorf("list months: %w", err)
	}

	org, err := journal.FormatRunOrg(run, months)
	if err != nil {
		return fmt.Errorf("format run: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), org)
	return nil
}
