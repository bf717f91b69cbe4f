package lattice

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidHeadingCount is returned when a heading count cannot be laid out on a square ring.
	ErrInvalidHeadingCount = errors.New("number of headings must be a positive multiple of 8")
	// ErrNonFiniteGeometry is returned when a curve generator produces NaN or infinite values.
	ErrNonFiniteGeometry = errors.New("curve generator produced non-finite geometry")
)

// NewRegenerationError is returned when an accepted primitive cannot be regenerated at the table
// resolution.
func NewRegenerationError(start float64, end Endpoint, err error) error {
	return errors.Wrapf(err, "cannot regenerate primitive from %v° to (%v, %v, %v°)", start, end.X, end.Y, end.Heading)
}
