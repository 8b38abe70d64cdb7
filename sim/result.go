package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// Result is the final state of a run. Months is the number of months until
// eviction when Foreclosed is true.
type Result struct {
	RunID          string
	Policy         string
	Months         int
	Balance        decimal.Decimal
	Funds          decimal.Decimal
	TotalPaid      decimal.Decimal
	MissedPayments int
	Foreclosed     bool
	ForeclosedOn   time.Time
}

func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Foreclosure Simulation")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Miss Policy:   %s\n", r.Policy)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Outcome")
	fmt.Fprintln(w, "--------------------------------------------------")
	if r.Foreclosed {
		fmt.Fprintf(w, "Evicted After: %d months\n", r.Months)
		fmt.Fprintf(w, "Foreclosed On: %s\n", r.ForeclosedOn.Format("2006-01-02"))
	} else {
		fmt.Fprintf(w, "Still Active:  %d months simulated\n", r.Months)
	}
	fmt.Fprintf(w, "Missed:        %d payments\n", r.MissedPayments)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Accounts")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Loan Balance:  %s\n", r.Balance.StringFixed(2))
	fmt.Fprintf(w, "Total Paid:    %s\n", r.TotalPaid.StringFixed(2))
	fmt.Fprintf(w, "Funds Left:    %s\n", r.Funds.StringFixed(2))
}
