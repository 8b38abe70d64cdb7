// Package sim drives a loan and its borrower month by month until the loan
// is foreclosed.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rustyeddy/foreclosure/borrower"
	"github.com/rustyeddy/foreclosure/internal/id"
	"github.com/rustyeddy/foreclosure/journal"
	"github.com/rustyeddy/foreclosure/loan"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultPayday is 09:00 on the first day of every month.
	DefaultPayday    = "0 9 1 * *"
	DefaultMaxMonths = 600
)

var (
	ErrNoForeclosure = errors.New("loan was not foreclosed")
	ErrAlreadyRan    = errors.New("engine already ran")
)

// Scenario holds everything needed to start a run.
type Scenario struct {
	Loan     loan.Terms
	Borrower borrower.Terms

	Start     time.Time // zero means today
	Payday    string    // cron spec; empty means DefaultPayday
	MaxMonths int       // zero means DefaultMaxMonths
}

// DefaultScenario returns the reference scenario starting 2024-01-01.
func DefaultScenario() Scenario {
	return Scenario{
		Loan:      loan.DefaultTerms(),
		Borrower:  borrower.DefaultTerms(),
		Start:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Payday:    DefaultPayday,
		MaxMonths: DefaultMaxMonths,
	}
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithRunID(runID string) Option {
	return func(e *Engine) {
		if runID != "" {
			e.runID = runID
		}
	}
}

type Engine struct {
	loan      *loan.Loan
	borrower  *borrower.Borrower
	journal   journal.Journal
	log       *zap.Logger
	payday    cron.Schedule
	start     time.Time
	maxMonths int
	runID     string
	ran       bool
}

func NewEngine(s Scenario, j journal.Journal, opts ...Option) (*Engine, error) {
	l, err := loan.New(s.Loan)
	if err != nil {
		return nil, err
	}
	b, err := borrower.New(s.Borrower, l)
	if err != nil {
		return nil, err
	}

	if s.MaxMonths < 0 {
		return nil, fmt.Errorf("max months must not be negative: %d", s.MaxMonths)
	}
	maxMonths := s.MaxMonths
	if maxMonths == 0 {
		maxMonths = DefaultMaxMonths
	}

	start := s.Start
	if start.IsZero() {
		now := time.Now().UTC()
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	spec := s.Payday
	if spec == "" {
		spec = DefaultPayday
	}
	payday, err := ParsePayday(spec, start)
	if err != nil {
		return nil, err
	}

	if j == nil {
		j = journal.Discard
	}

	e := &Engine{
		loan:      l,
		borrower:  b,
		journal:   j,
		log:       zap.NewNop(),
		payday:    payday,
		start:     start,
		maxMonths: maxMonths,
		runID:     id.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(zap.String("run_id", e.runID))
	return e, nil
}

func (e *Engine) RunID() string { return e.runID }

func (e *Engine) Loan() *loan.Loan { return e.loan }

func (e *Engine) Borrower() *borrower.Borrower { return e.borrower }

// Run pays the borrower and makes a payment every month until the loan is
// foreclosed. An engine runs once.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	if e.ran {
		return Result{}, ErrAlreadyRan
	}
	e.ran = true

	startedAt := time.Now()
	res := Result{
		RunID:     e.runID,
		Policy:    e.loan.Policy().String(),
		TotalPaid: decimal.Zero,
	}

	e.log.Info("simulation started",
		zap.Stringer("balance", e.loan.Balance()),
		zap.Stringer("funds", e.borrower.Funds()),
		zap.String("policy", res.Policy),
	)

	date := e.start
	for !e.loan.IsForeclosed() {
		if err := ctx.Err(); err != nil {
			e.fill(&res)
			return res, err
		}
		if res.Months >= e.maxMonths {
			e.fill(&res)
			if err := e.recordRun(startedAt, res); err != nil {
				return res, err
			}
			return res, fmt.Errorf("%w after %d months", ErrNoForeclosure, res.Months)
		}

		date = e.payday.Next(date)
		if date.IsZero() {
			e.fill(&res)
			return res, fmt.Errorf("month %d: %w", res.Months+1, ErrPaydayNeverFires)
		}
		e.borrower.PayDay()
		paid, err := e.borrower.MakePayment()
		if err != nil {
			e.fill(&res)
			return res, fmt.Errorf("month %d: %w", res.Months+1, err)
		}
		res.Months++
		res.TotalPaid = res.TotalPaid.Add(paid)

		month := journal.MonthRecord{
			RunID:      e.runID,
			Month:      res.Months,
			Date:       date,
			Payment:    paid,
			Balance:    e.loan.Balance(),
			Funds:      e.borrower.Funds(),
			Missed:     e.loan.MissedPayments(),
			Foreclosed: e.loan.IsForeclosed(),
		}
		if err := e.journal.RecordMonth(month); err != nil {
			e.fill(&res)
			return res, fmt.Errorf("record month %d: %w", res.Months, err)
		}

		e.log.Debug("month closed",
			zap.Int("month", res.Months),
			zap.Time("date", date),
			zap.Stringer("paid", paid),
			zap.Stringer("balance", month.Balance),
			zap.Stringer("funds", month.Funds),
			zap.Int("missed", month.Missed),
		)
		if month.Payment.LessThan(e.loan.MonthlyPayment()) {
			e.log.Warn("payment missed", zap.Int("month", res.Months), zap.Int("missed", month.Missed))
		}
	}

	res.ForeclosedOn = date
	e.fill(&res)
	e.log.Info("loan foreclosed",
		zap.Int("months", res.Months),
		zap.Time("date", date),
		zap.Stringer("balance", res.Balance),
	)

	if err := e.recordRun(startedAt, res); err != nil {
		return res, err
	}
	return res, nil
}

func (e *Engine) fill(res *Result) {
	res.Balance = e.loan.Balance()
	res.Funds = e.borrower.Funds()
	res.MissedPayments = e.loan.MissedPayments()
	res.Foreclosed = e.loan.IsForeclosed()
}

func (e *Engine) recordRun(startedAt time.Time, res Result) error {
	err := e.journal.RecordRun(journal.RunRecord{
		RunID:        res.RunID,
		StartedAt:    startedAt,
		Policy:       res.Policy,
		Months:       res.Months,
		FinalBalance: res.Balance,
		FinalFunds:   res.Funds,
		TotalPaid:    res.TotalPaid,
		Missed:       res.MissedPayments,
		Foreclosed:   res.Foreclosed,
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
