package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money type represents a monetary amount as an exact count of minor units
// of its currency (e.g. cents, pennies, pence).
// The count is an arbitrary-precision integer, so amounts never overflow and
// arithmetic never rounds, except where truncation is documented.
// Its zero value corresponds to "0" with no currency attached; obtain valid
// amounts through the constructors.
// Money is designed to be safe for concurrent use by multiple goroutines.
type Money struct {
	curr  Currency        // currency of the amount
	units decimal.Decimal // count of minor units, always an integer
}

// newMoney creates a new amount from a count of minor units.
// Callers must ensure that units has no fractional part.
func newMoney(c Currency, units decimal.Decimal) Money {
	return Money{curr: c, units: units}
}

// New returns an amount equal to value major units of currency curr,
// truncated toward zero to a whole number of minor units.
// Any precision beyond the minor unit is silently dropped:
// 1.999 in US Dollars becomes exactly 199 cents, and -1.999 becomes -199.
// See also method [Money.Decimal].
func New(curr Currency, value decimal.Decimal) Money {
	return newMoney(curr, value.Shift(int32(curr.Scale())).Truncate(0))
}

// NewFromFloat converts a float to an amount, truncated toward zero to
// a whole number of minor units.
// The float is first converted to its shortest exact decimal representation,
// so NewFromFloat(curr, 1.1) is equivalent to [New] with the decimal 1.1
// rather than with the underlying binary expansion of 1.1.
// See also method [Money.Float64].
//
// NewFromFloat panics if the float is a special value (NaN or Inf).
func NewFromFloat(curr Currency, value float64) Money {
	return New(curr, decimal.NewFromFloat(value))
}

// Zero returns an amount of exactly 0 minor units of the given currency.
func Zero(curr Currency) Money {
	return newMoney(curr, decimal.Zero)
}

// NewFromMinorUnits converts an integer, representing minor units of
// currency (e.g. cents, pennies, fens), to an amount.
// See also method [Money.MinorUnits].
func NewFromMinorUnits(curr Currency, units int64) Money {
	return newMoney(curr, decimal.NewFromInt(units))
}

// Parse converts currency and decimal strings to an amount, truncated toward
// zero to a whole number of minor units.
// See also constructor [ParseCurr].
//
// Parse returns an error if:
//   - the currency string does not represent a supported currency code;
//   - the amount string does not represent a valid decimal number.
func Parse(curr, amount string) (Money, error) {
	// Currency
	c, err := ParseCurr(curr)
	if err != nil {
		return Money{}, fmt.Errorf("parsing currency: %w", err)
	}
	// Decimal
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount: %w", err)
	}
	// Amount
	return New(c, d), nil
}

// MustParse is like [Parse] but panics if any of the strings cannot be parsed.
// This function simplifies safe initialization of global variables holding amounts.
func MustParse(curr, amount string) Money {
	m, err := Parse(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q, %q) failed: %v", curr, amount, err))
	}
	return m
}

// Curr returns the currency of the amount.
func (m Money) Curr() Currency {
	return m.curr
}

// Decimal returns the value of the amount in major units of its currency.
// The result is computed exactly from the minor units, with no rounding at
// any magnitude.
func (m Money) Decimal() decimal.Decimal {
	if m.units.IsZero() {
		return decimal.Zero
	}
	return m.units.Shift(-int32(m.Curr().Scale()))
}

// MinorUnits returns the amount as a count of minor units of its currency
// (e.g. cents, pennies, fens).
// If the count cannot be represented as an int64, then false is returned.
// See also constructor [NewFromMinorUnits].
func (m Money) MinorUnits() (units int64, ok bool) {
	u := m.units.BigInt()
	if !u.IsInt64() {
		return 0, false
	}
	return u.Int64(), true
}

// Float64 returns the nearest binary floating-point number for the amount in
// major units and reports whether the conversion is exact.
// See also constructor [NewFromFloat].
//
// This conversion may lose data, as float64 has a smaller precision
// than the underlying decimal value.
func (m Money) Float64() (f float64, exact bool) {
	return m.Decimal().Float64()
}

// Sign returns:
//
//	-1 if m < 0
//	 0 if m = 0
//	+1 if m > 0
func (m Money) Sign() int {
	return m.units.Sign()
}

// IsNeg returns:
//
//	true  if m < 0
//	false otherwise
func (m Money) IsNeg() bool {
	return m.units.IsNegative()
}

// IsPos returns:
//
//	true  if m > 0
//	false otherwise
func (m Money) IsPos() bool {
	return m.units.IsPositive()
}

// IsZero returns:
//
//	true  if m = 0
//	false otherwise
func (m Money) IsZero() bool {
	return m.units.IsZero()
}

// Abs returns the absolute value of the amount.
func (m Money) Abs() Money {
	return newMoney(m.Curr(), m.units.Abs())
}

// Neg returns an amount with the opposite sign.
func (m Money) Neg() Money {
	return newMoney(m.Curr(), m.units.Neg())
}

// SameCurr returns true if amounts are denominated in the same currency.
// Currency codes are compared case-insensitively.
// See also method [Money.Curr].
func (m Money) SameCurr(other Money) bool {
	return m.Curr().SameCurr(other.Curr())
}

// Add returns the exact sum of amounts m and other.
//
// Add returns an error if amounts are denominated in different currencies.
func (m Money) Add(other Money) (Money, error) {
	o, err := m.add(other)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v + %v]: %w", m, other, err)
	}
	return o, nil
}

func (m Money) add(other Money) (Money, error) {
	if !m.SameCurr(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return newMoney(m.Curr(), m.units.Add(other.units)), nil
}

// Sub returns the exact difference between amounts m and other.
// The result may be negative.
//
// Sub returns an error if amounts are denominated in different currencies.
func (m Money) Sub(other Money) (Money, error) {
	o, err := m.sub(other)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v - %v]: %w", m, other, err)
	}
	return o, nil
}

func (m Money) sub(other Money) (Money, error) {
	if !m.SameCurr(other) {
		return Money{}, ErrCurrencyMismatch
	}
	return newMoney(m.Curr(), m.units.Sub(other.units)), nil
}

// Mul returns the exact product of amount m and integer factor n.
func (m Money) Mul(n int64) Money {
	return newMoney(m.Curr(), m.units.Mul(decimal.NewFromInt(n)))
}

// Div returns the quotient of amount m and integer divisor n, truncated
// toward zero to a whole number of minor units.
// The discarded remainder carries the sign of the dividend:
// dividing 100 cents by 3 yields exactly 33 cents, and -100 cents yields -33.
//
// Div returns an error if the divisor is 0.
func (m Money) Div(n int64) (Money, error) {
	o, err := m.div(n)
	if err != nil {
		return Money{}, fmt.Errorf("computing [%v / %v]: %w", m, n, err)
	}
	return o, nil
}

func (m Money) div(n int64) (Money, error) {
	if n == 0 {
		return Money{}, ErrDivisionByZero
	}
	q, _ := m.units.QuoRem(decimal.NewFromInt(n), 0)
	return newMoney(m.Curr(), q), nil
}

// Cmp compares amounts and returns:
//
//	-1 if m < other
//	 0 if m = other
//	+1 if m > other
//
// See also methods [Money.Less], [Money.Greater].
//
// Cmp returns an error if amounts are denominated in different currencies.
func (m Money) Cmp(other Money) (int, error) {
	if !m.SameCurr(other) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", m, other, ErrCurrencyMismatch)
	}
	return m.units.Cmp(other.units), nil
}

// Less reports whether amount m is strictly smaller than amount other.
// See also method [Money.Cmp].
//
// Less returns an error if amounts are denominated in different currencies.
func (m Money) Less(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Greater reports whether amount m is strictly greater than amount other.
// See also method [Money.Cmp].
//
// Greater returns an error if amounts are denominated in different currencies.
func (m Money) Greater(other Money) (bool, error) {
	c, err := m.Cmp(other)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Min returns the smaller amount.
// See also method [Money.Cmp].
//
// Min returns an error if amounts are denominated in different currencies.
func (m Money) Min(other Money) (Money, error) {
	switch c, err := m.Cmp(other); {
	case err != nil:
		return Money{}, err
	case c <= 0: // m <= other
		return m, nil
	default:
		return other, nil
	}
}

// Max returns the larger amount.
// See also method [Money.Cmp].
//
// Max returns an error if amounts are denominated in different currencies.
func (m Money) Max(other Money) (Money, error) {
	switch c, err := m.Cmp(other); {
	case err != nil:
		return Money{}, err
	case c >= 0: // m >= other
		return m, nil
	default:
		return other, nil
	}
}

// Equal reports whether amounts m and other are the same: denominated in the
// same currency and counting the same number of minor units.
// Unlike [Money.Cmp], Equal never fails; amounts in different currencies are
// simply not equal.
func (m Money) Equal(other Money) bool {
	return m.SameCurr(other) && m.units.Equal(other.units)
}

// Beautify returns a human-oriented representation of the amount: the
// currency symbol followed by the value formatted according to the
// conventions of the currency's locale, with exactly [Currency.Scale]
// digits after the decimal separator.
//
//	USD -1234.5 => "USD -1,234.50"
//	EUR -1234.5 => "EUR -1.234,50"
//
// The rendition is exact at any magnitude: values within float64 precision
// go through the locale engine, and beyond it the exact digits are grouped
// with the currency's own separators, so the digits shown are always the
// digits stored.
//
// Beautify is meant for display; for a locale-independent representation
// use [Money.String].
func (m Money) Beautify() string {
	c := m.Curr()
	d := m.Decimal()
	f, _ := d.Float64()
	if !math.IsInf(f, 0) && decimal.NewFromFloat(f).Equal(d) {
		return c.Symbol() + " " + c.printer().Sprint(c.format(f))
	}
	return c.Symbol() + " " + c.formatExact(d)
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the amount: the currency code, a space, and the value
// with exactly [Currency.Scale] digits after the decimal point.
// See also methods [Currency.String], [Money.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (m Money) String() string {
	c := m.Curr()
	if c.Code() == "" {
		return m.Decimal().String()
	}
	return c.Code() + " " + m.Decimal().StringFixed(int32(c.Scale()))
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example    | Description                |
//	| ------ | ---------- | -------------------------- |
//	| %s, %v | USD 5.67   | Currency and amount        |
//	| %q     | "USD 5.67" | Quoted currency and amount |
//	| %f     | 5.67       | Amount                     |
//	| %d     | 567        | Amount in minor units      |
//	| %c     | USD        | Currency                   |
//
// The '-' format flag can be used with all verbs.
//
// Precision is only supported for the %f verb and cannot be smaller than
// the scale of the currency.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (m Money) Format(state fmt.State, verb rune) {
	// Verb
	var text string
	switch verb {
	case 'q', 'Q':
		text = `"` + m.String() + `"`
	case 'f', 'F':
		scale := m.Curr().Scale()
		if p, ok := state.Precision(); ok && p > scale {
			scale = p
		}
		text = m.Decimal().StringFixed(int32(scale))
	case 'd', 'D':
		text = m.units.String()
	case 'c', 'C':
		text = m.Curr().Code()
	default:
		text = m.String()
	}

	// Calculating padding
	width := len(text)
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, width)
	pos := width - 1

	// Trailing spaces
	for range tspaces {
		buf[pos] = ' '
		pos--
	}

	// Amount
	for i := len(text); i > 0; i-- {
		buf[pos] = text[i-1]
		pos--
	}

	// Leading spaces
	for range lspaces {
		buf[pos] = ' '
		pos--
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F', 'd', 'D', 'c', 'C':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(money.Money="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}
