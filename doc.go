/*
Package money implements exact monetary values in a fixed set of currencies.
It stores each amount as an arbitrary-precision count of the currency's minor
units on top of the [decimal] package and combines it with a [Currency]
descriptor holding the currency's code, scale, and display locale.

# Features

  - Immutable monetary values, ensuring safe usage across multiple goroutines
  - Exact arithmetic on arbitrary-precision minor units, with no overflow
  - Comparison operations that refuse to mix currencies
  - Deterministic truncation toward zero wherever sub-minor-unit precision occurs
  - Locale-aware display formatting built on golang.org/x/text

# Representation

The package consists of two main types: Money and Currency.
A Money value represents a monetary amount and consists of a Currency and an
integer decimal.Decimal counting the minor units of the currency, so USD 10.99
is stored as 1099 cents.
The Currency type is an immutable descriptor looked up by its 3-letter code in
a built-in table holding the scale, the major-to-minor factor, and the display
locale. The table currently contains EUR, USD, and GBP.

# Truncation

Construction from decimals, floats, or strings truncates toward zero to a
whole number of minor units: USD 1.999 becomes exactly 199 cents.
Division by an integer likewise truncates the quotient toward zero and
discards the remainder.
No other operation loses precision: sums, differences, and products are exact,
and [Money.Decimal] recovers the major-unit value exactly.

# Formatting

[Money.String] renders a locale-independent form such as "USD 1234.50", and
[Money.Format] supports the standard formatting verbs.
[Money.Beautify] renders a human-oriented form using the grouping and decimal
separators of the currency's locale, e.g. "EUR 1.234,50" for Euros and
"USD 1,234.50" for US Dollars.
Beautification keeps the exact digits at any magnitude, including amounts
beyond float64 precision.

# Errors

Errors may occur during the parsing of Money and Currency values, as well as
during binary operations on amounts denominated in different currencies and
during division by zero.
Failures are reported through error returns that wrap the sentinel errors
[ErrCurrencyMismatch] and [ErrDivisionByZero] or carry the typed
[UnknownCurrencyError], so callers can test for them with [errors.Is] and
[errors.As].
The Must variants of constructors panic instead of returning errors.

[decimal]: https://pkg.go.dev/github.com/shopspring/decimal
*/
package money
