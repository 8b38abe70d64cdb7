package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrPaydayNeverFires is returned for cron specs that parse but match no
// date, such as "0 0 30 2 *".
var ErrPaydayNeverFires = errors.New("payday schedule never fires")

// ParsePayday parses a standard 5-field cron spec and checks that it fires
// at least once after from.
func ParsePayday(spec string, from time.Time) (cron.Schedule, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("payday schedule %q: %w", spec, err)
	}
	if sched.Next(from).IsZero() {
		return nil, fmt.Errorf("%w: %q", ErrPaydayNeverFires, spec)
	}
	return sched, nil
}
