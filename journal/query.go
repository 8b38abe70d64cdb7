package journal

import (
	"database/sql"
	"errors"
	"fmt"
)

const runColumns = `run_id, started_at, policy, months, final_balance, final_funds, total_paid, missed, foreclosed`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var r RunRecord
	err := s.Scan(
		&r.RunID,
		&r.StartedAt,
		&r.Policy,
		&r.Months,
		&r.FinalBalance,
		&r.FinalFunds,
		&r.TotalPaid,
		&r.Missed,
		&r.Foreclosed,
	)
	return r, err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)

	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, fmt.Errorf("run %q: %w", runID, ErrNotFound)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// ListRuns returns every recorded run, oldest first.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY started_at ASC, run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMonthsByRunID returns the months of a run in order.
func (j *SQLite) ListMonthsByRunID(runID string) ([]MonthRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, month, date, payment, balance, funds, missed, foreclosed
		FROM months
		WHERE run_id = ?
		ORDER BY month ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthRecord
	for rows.Next() {
		var m MonthRecord
		if err := rows.Scan(
			&m.RunID,
			&m.Month,
			&m.Date,
			&m.Payment,
			&m.Balance,
			&m.Funds,
			&m.Missed,
			&m.Foreclosed,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
