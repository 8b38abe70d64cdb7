package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordMonth(m MonthRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO months
		(run_id, month, date, payment, balance, funds, missed, foreclosed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.Month, m.Date.UTC(), m.Payment,
		m.Balance, m.Funds, m.Missed, m.Foreclosed,
	)
	return err
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, started_at, policy, months, final_balance, final_funds, total_paid, missed, foreclosed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.StartedAt.UTC(), r.Policy, r.Months, r.FinalBalance,
		r.FinalFunds, r.TotalPaid, r.Missed, r.Foreclosed,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
