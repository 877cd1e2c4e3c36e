// Package period handles MM-YYYY pay period keys.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

const layout = "01-2006"

var ErrInvalidPeriod = errors.New("period must be in MM-YYYY format")

type Period struct {
	Month time.Month
	Year  int
}

func Parse(s string) (Period, error) {
	if !validator.IsValidPeriod(s) {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Month: t.Month(), Year: t.Year()}, nil
}

// Of returns the period containing t.
func Of(t time.Time) Period {
	return Period{Month: t.Month(), Year: t.Year()}
}

// Start is the first day of the period at 00:00 UTC.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the first day of the following period, exclusive.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

func (p Period) String() string {
	return fmt.Sprintf("%02d-%04d", int(p.Month), p.Year)
}

// Label renders the period for documents, e.g. "June 2025".
func (p Period) Label() string {
	return p.Start().Format("January 2006")
}
