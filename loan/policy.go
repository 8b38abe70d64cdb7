package loan

import (
	"fmt"
	"strings"
)

// MissPolicy decides what a full payment does to the miss counter.
type MissPolicy int

const (
	// Cumulative never forgets a miss.
	Cumulative MissPolicy = iota
	// Consecutive resets the counter on every full payment.
	Consecutive
)

func (p MissPolicy) String() string {
	switch p {
	case Cumulative:
		return "cumulative"
	case Consecutive:
		return "consecutive"
	default:
		return fmt.Sprintf("MissPolicy(%d)", int(p))
	}
}

func (p MissPolicy) valid() bool {
	return p == Cumulative || p == Consecutive
}

// ParseMissPolicy accepts "cumulative" or "consecutive". The empty string
// selects Cumulative.
func ParseMissPolicy(s string) (MissPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cumulative":
		return Cumulative, nil
	case "consecutive":
		return Consecutive, nil
	default:
		return 0, fmt.Errorf("unknown miss policy %q", s)
	}
}
