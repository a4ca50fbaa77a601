package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for line parsing.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNoRecord indicates a line that carries no data: blank, comment-only,
	// or a field this reader does not consume.
	ErrNoRecord = errors.New("no record on line")

	// ErrMalformed indicates a data line that could not be parsed.
	ErrMalformed = errors.New("malformed record")

	// ErrLineTooLong indicates a line longer than the reader accepts. It wraps
	// ErrMalformed, so such lines are counted and skipped like any other.
	ErrLineTooLong = fmt.Errorf("%w: line too long", ErrMalformed)
)

func isNoRecord(err error) bool {
	return errors.Is(err, ErrNoRecord)
}
