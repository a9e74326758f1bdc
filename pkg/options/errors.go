package options

import (
	"errors"
	"fmt"
)

var (
	// ErrRowShape means a table line did not split into exactly three columns.
	ErrRowShape = errors.New("option table row has unexpected shape")

	// ErrClassification means the allowed-values text no longer follows the
	// documented convention (integer without a literal, enum without a bold default).
	ErrClassification = errors.New("cannot classify allowed values")
)

// RowError locates a malformed table line.
type RowError struct {
	Line    int
	Text    string
	Columns int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: expected 3 columns, got %d: %q", e.Line, e.Columns, e.Text)
}

func (e *RowError) Unwrap() error {
	return ErrRowShape
}
