package money

import (
	"errors"
	"fmt"
)

var (
	// ErrCurrencyMismatch is returned when a binary operation combines or
	// compares two amounts denominated in different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrDivisionByZero is returned when an amount is divided by zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// UnknownCurrencyError is returned by [ParseCurr] when the given code is not
// present in the built-in currency table. It carries the rejected code for
// diagnostics.
type UnknownCurrencyError struct {
	Code string
}

// Error implements the error interface.
func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}
