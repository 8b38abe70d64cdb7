package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var (
	monthHeader = []string{"run_id", "month", "date", "payment", "balance", "funds", "missed", "foreclosed"}
	runHeader   = []string{"run_id", "started_at", "policy", "months", "final_balance", "final_funds", "total_paid", "missed", "foreclosed"}
)

type CSV struct {
	months *csv.Writer
	runs   *csv.Writer
	mf, rf *os.File
}

func NewCSV(monthsPath, runsPath string) (*CSV, error) {
	mf, err := os.Create(monthsPath)
	if err != nil {
		return nil, err
	}
	rf, err := os.Create(runsPath)
	if err != nil {
		mf.Close()
		return nil, err
	}

	j := &CSV{
		months: csv.NewWriter(mf),
		runs:   csv.NewWriter(rf),
		mf:     mf,
		rf:     rf,
	}

	if err := j.write(j.months, monthHeader); err != nil {
		j.Close()
		return nil, err
	}
	if err := j.write(j.runs, runHeader); err != nil {
		j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSV) RecordMonth(m MonthRecord) error {
	return j.write(j.months, []string{
		m.RunID,
		strconv.Itoa(m.Month),
		m.Date.UTC().Format(time.RFC3339),
		m.Payment.String(),
		m.Balance.String(),
		m.Funds.String(),
		strconv.Itoa(m.Missed),
		strconv.FormatBool(m.Foreclosed),
	})
}

func (j *CSV) RecordRun(r RunRecord) error {
	return j.write(j.runs, []string{
		r.RunID,
		r.StartedAt.UTC().Format(time.RFC3339),
		r.Policy,
		strconv.Itoa(r.Months),
		r.FinalBalance.String(),
		r.FinalFunds.String(),
		r.TotalPaid.String(),
		strconv.Itoa(r.Missed),
		strconv.FormatBool(r.Foreclosed),
	})
}

func (j *CSV) write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSV) Close() error {
	j.months.Flush()
	if err := j.months.Error(); err != nil {
		return err
	}
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}

	if err := j.mf.Close(); err != nil {
		return err
	}
	return j.rf.Close()
}
