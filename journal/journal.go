// Package journal records simulated months and finished runs.
package journal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// MonthRecord is the state of a run after one payday and payment.
type MonthRecord struct {
	RunID      string
	Month      int
	Date       time.Time
	Payment    decimal.Decimal
	Balance    decimal.Decimal
	Funds      decimal.Decimal
	Missed     int
	Foreclosed bool
}

// RunRecord summarizes a finished run.
type RunRecord struct {
	RunID        string
	StartedAt    time.Time
	Policy       string
	Months       int
	FinalBalance decimal.Decimal
	FinalFunds   decimal.Decimal
	TotalPaid    decimal.Decimal
	Missed       int
	Foreclosed   bool
}

type Journal interface {
	RecordMonth(MonthRecord) error
	RecordRun(RunRecord) error
	Close() error
}

// Discard is a Journal that drops everything.
var Discard Journal = discard{}

type discard struct{}

func (discard) RecordMonth(MonthRecord) error { return nil }
func (discard) RecordRun(RunRecord) error { return nil }
func (discard) Close() error { return nil }
