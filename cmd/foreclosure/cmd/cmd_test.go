package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/rustyeddy/foreclosure/config"
	"github.com/rustyeddy/foreclosure/journal"
	"github.com/rustyeddy/foreclosure/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	runConfigPath, runPolicy = "", ""
	configInitOutput, configValidatePath = "scenario.yaml", ""
	journalDBPath = "./foreclosure.sqlite"
	logLevel, verbose = "error", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "foreclosure version "+version)
}

func TestRunDefaultScenario(t *testing.T) {
	out, err := execute(t, "run")
	require.NoError(t, err)

	assert.Contains(t, out, "Evicted After: 13 months")
	assert.Contains(t, out, "Loan Balance:  265650.00")
	assert.Contains(t, out, "Funds Left:    0.00")
	assert.Contains(t, out, "Miss Policy:   cumulative")
}

func TestRunPolicyOverride(t *testing.T) {
	out, err := execute(t, "run", "--policy", "consecutive")
	require.NoError(t, err)
	assert.Contains(t, out, "Miss Policy:   consecutive")
	assert.Contains(t, out, "Evicted After: 13 months")

	_, err = execute(t, "run", "--policy", "forgiving")
	assert.Error(t, err)
}

func TestRunNoForeclosure(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Borrower.MonthlyIncome = 5000
	cfg.Simulation.MaxMonths = 12
	path := filepath.Join(dir, "rich.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	out, err := execute(t, "run", "-f", path)
	require.Error(t, err)
	assert.Contains(t, out, "Still Active:  12 months simulated")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Journal: none")
}

func TestConfigValidateMissingFile(t *testing.T) {
	_, err := execute(t, "config", "validate", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunWithSQLiteThenQueryJournal(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.sqlite")

	cfg := config.Default()
	cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: db}
	path := filepath.Join(dir, "scenario.json")
	require.NoError(t, cfg.SaveToFile(path))

	out, err := execute(t, "run", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Results saved to: "+db)

	runID := regexp.MustCompile(`Run ID:\s+(\S+)`).FindStringSubmatch(out)
	require.Len(t, runID, 2)

	out, err = execute(t, "journal", "runs", "-d", db)
	require.NoError(t, err)
	assert.Contains(t, out, runID[1])
	assert.Contains(t, out, "foreclosed")

	out, err = execute(t, "journal", "show", runID[1], "-d", db)
	require.NoError(t, err)
	assert.Contains(t, out, "* RUN: "+runID[1]+" FORECLOSED")
	assert.Contains(t, out, ":MONTHS:        13")
	assert.Contains(t, out, "| 13 | 2025-01-01 |")

	_, err = execute(t, "journal", "show", "missing", "-d", db)
	assert.Error(t, err)
}

func TestRunWithCSVJournal(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Journal = config.JournalConfig{
		Type:       "csv",
		MonthsFile: filepath.Join(dir, "months.csv"),
		RunsFile:   filepath.Join(dir, "runs.csv"),
	}
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	out, err := execute(t, "run", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, cfg.Journal.MonthsFile)
	assert.FileExists(t, cfg.Journal.MonthsFile)
	assert.FileExists(t, cfg.Journal.RunsFile)
}

type closeFailJournal struct {
	err    error
	closed int
}

func (j *closeFailJournal) RecordMonth(journal.MonthRecord) error { return nil }
func (j *closeFailJournal) RecordRun(journal.RunRecord) error { return nil }

func (j *closeFailJournal) Close() error {
	j.closed++
	return j.err
}

func TestSimulateReportsCloseError(t *testing.T) {
	flushErr := errors.New("flush failed")
	j := &closeFailJournal{err: flushErr}
	jc := config.JournalConfig{Type: "sqlite", DBPath: "runs.sqlite"}

	var out bytes.Buffer
	err := simulate(context.Background(), &out, sim.DefaultScenario(), jc, j, zap.NewNop())
	assert.ErrorIs(t, err, flushErr)
	assert.Equal(t, 1, j.closed)
	assert.NotContains(t, out.String(), "Results saved to")
}

func TestSimulateClosesJournalOnEngineError(t *testing.T) {
	j := &closeFailJournal{}
	s := sim.DefaultScenario()
	s.Payday = "0 0 30 2 *"

	err := simulate(context.Background(), &bytes.Buffer{}, s, config.JournalConfig{}, j, zap.NewNop())
	assert.ErrorIs(t, err, sim.ErrPaydayNeverFires)
	assert.Equal(t, 1, j.closed)
}

func TestRunRejectsPaydayThatNeverFires(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Payday = "0 0 30 2 *"
	path := filepath.Join(t.TempDir(), "feb30.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	out, err := execute(t, "run", "-f", path)
	require.Error(t, err)
	assert.NotContains(t, out, "0001-01-01")
}
