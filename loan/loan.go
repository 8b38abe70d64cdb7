// Package loan models a mortgage that is foreclosed after too many
// insufficient monthly payments.
package loan

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultForecloseAfter is the number of missed payments that forecloses a loan.
const DefaultForecloseAfter = 5

var (
	ErrInvalidTerms   = errors.New("invalid loan terms")
	ErrNegativeAmount = errors.New("payment amount is negative")
	ErrForeclosed     = errors.New("loan is foreclosed")
)

// Terms are the initial values of a loan account.
type Terms struct {
	Balance        decimal.Decimal
	MonthlyPayment decimal.Decimal
	ForecloseAfter int // zero means DefaultForecloseAfter
	Policy         MissPolicy
}

// DefaultTerms returns the terms of the reference scenario.
func DefaultTerms() Terms {
	return Terms{
		Balance:        decimal.NewFromInt(286000),
		MonthlyPayment: decimal.NewFromInt(1700),
		ForecloseAfter: DefaultForecloseAfter,
		Policy:         Cumulative,
	}
}

// Loan is the account a borrower pays into. It is not safe for concurrent use.
type Loan struct {
	balance        decimal.Decimal
	monthlyPayment decimal.Decimal
	missed         int
	forecloseAfter int
	foreclosed     bool
	policy         MissPolicy
}

func New(t Terms) (*Loan, error) {
	if t.ForecloseAfter == 0 {
		t.ForecloseAfter = DefaultForecloseAfter
	}
	if t.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance must not be negative", ErrInvalidTerms)
	}
	if !t.MonthlyPayment.IsPositive() {
		return nil, fmt.Errorf("%w: monthly payment must be positive", ErrInvalidTerms)
	}
	if t.ForecloseAfter < 0 {
		return nil, fmt.Errorf("%w: foreclose after must be positive", ErrInvalidTerms)
	}
	if !t.Policy.valid() {
		return nil, fmt.Errorf("%w: unknown miss policy %d", ErrInvalidTerms, int(t.Policy))
	}

	return &Loan{
		balance:        t.Balance,
		monthlyPayment: t.MonthlyPayment,
		forecloseAfter: t.ForecloseAfter,
		policy:         t.Policy,
	}, nil
}

func (l *Loan) Balance() decimal.Decimal { return l.balance }

func (l *Loan) MonthlyPayment() decimal.Decimal { return l.monthlyPayment }

func (l *Loan) IsForeclosed() bool { return l.foreclosed }

// MissedPayments returns the miss counter as seen by the loan's policy.
func (l *Loan) MissedPayments() int { return l.missed }

func (l *Loan) Policy() MissPolicy { return l.policy }

// ReceivePayment applies amount to the balance. Anything below the monthly
// payment counts as a miss, but is still taken off the balance. A foreclosed
// loan accepts nothing.
func (l *Loan) ReceivePayment(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	if l.foreclosed {
		return ErrForeclosed
	}

	if amount.LessThan(l.monthlyPayment) {
		l.missPayment()
	} else if l.policy == Consecutive {
		l.missed = 0
	}

	l.balance = l.balance.Sub(amount)
	return nil
}

func (l *Loan) missPayment() {
	l.missed++
	if l.missed >= l.forecloseAfter {
		l.foreclosed = true
	}
}
