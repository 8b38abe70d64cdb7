package borrower

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidTerms = errors.New("invalid borrower terms")

// Payee is what a borrower pays every month. *loan.Loan satisfies it.
type Payee interface {
	MonthlyPayment() decimal.Decimal
	ReceivePayment(amount decimal.Decimal) error
}

type Terms struct {
	Funds         decimal.Decimal
	MonthlyIncome decimal.Decimal
}

// DefaultTerms returns the terms of the reference scenario.
func DefaultTerms() Terms {
	return Terms{
		Funds:         decimal.NewFromInt(2800),
		MonthlyIncome: decimal.NewFromInt(1350),
	}
}

// Borrower holds cash and pays its loan out of it. Funds never go below zero.
type Borrower struct {
	funds         decimal.Decimal
	monthlyIncome decimal.Decimal
	loan          Payee
}

func New(t Terms, loan Payee) (*Borrower, error) {
	if loan == nil {
		return nil, fmt.Errorf("%w: no loan to pay", ErrInvalidTerms)
	}
	if t.Funds.IsNegative() {
		return nil, fmt.Errorf("%w: funds must not be negative", ErrInvalidTerms)
	}
	if !t.MonthlyIncome.IsPositive() {
		return nil, fmt.Errorf("%w: monthly income must be positive", ErrInvalidTerms)
	}

	return &Borrower{
		funds:         t.Funds,
		monthlyIncome: t.MonthlyIncome,
		loan:          loan,
	}, nil
}

func (b *Borrower) Funds() decimal.Decimal { return b.funds }

func (b *Borrower) MonthlyIncome() decimal.Decimal { return b.monthlyIncome }

// MakePayment pays the monthly payment, or everything left when funds fall
// short, and returns what was paid. Funds are only debited once the loan
// accepts the payment.
func (b *Borrower) MakePayment() (decimal.Decimal, error) {
	payment := decimal.Min(b.funds, b.loan.MonthlyPayment())

	if err := b.loan.ReceivePayment(payment); err != nil {
		return decimal.Zero, fmt.Errorf("make payment of %s: %w", payment, err)
	}

	b.funds = b.funds.Sub(payment)
	return payment, nil
}

// PayDay credits one month of income.
func (b *Borrower) PayDay() {
	b.funds = b.funds.Add(b.monthlyIncome)
}
