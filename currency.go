package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency type represents a currency in the global financial system.
// The zero value is not a valid currency; use [ParseCurr] to obtain one.
//
// Currency is implemented as an immutable descriptor holding the 3-letter
// alphabetic code, the number of digits in the minor unit, the power-of-ten
// factor between major and minor units, and the locale and separator glyphs
// that drive display formatting. All properties are derived from the code
// through the built-in table, so currencies with the same code are
// interchangeable.
// This design ensures safe concurrency for multiple goroutines accessing
// the same Currency value.
//
// When persisting a currency value, use the alphabetic code returned by
// the [Currency.Code] method.
type Currency struct {
	code     string
	scale    int
	factor   int64
	locale   language.Tag
	groupSep string
	decSep   string
}

var errInvalidBSON = errors.New("invalid BSON string")

// currencies maps codes to descriptors. The table is established at package
// initialization and never modified afterwards, so unsynchronized reads are
// safe. The separator glyphs carry the CLDR values of each locale.
var currencies = map[string]Currency{
	"EUR": {code: "EUR", scale: 2, factor: 100, locale: language.MustParse("de-DE"), groupSep: ".", decSep: ","},
	"USD": {code: "USD", scale: 2, factor: 100, locale: language.MustParse("en-US"), groupSep: ",", decSep: "."},
	"GBP": {code: "GBP", scale: 2, factor: 100, locale: language.MustParse("en-GB"), groupSep: ",", decSep: "."},
}

// ParseCurr converts a string to currency.
// The input string must exactly match one of the supported codes:
//
//	EUR
//	USD
//	GBP
//
// The match is case-sensitive, so "eur" is rejected.
// ParseCurr returns an [UnknownCurrencyError] if the string does not
// represent a supported currency code.
func ParseCurr(curr string) (Currency, error) {
	c, ok := currencies[curr]
	if !ok {
		return Currency{}, &UnknownCurrencyError{Code: curr}
	}
	return c, nil
}

// MustParseCurr is like [ParseCurr] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding currencies.
func MustParseCurr(curr string) Currency {
	c, err := ParseCurr(curr)
	if err != nil {
		panic(fmt.Sprintf("ParseCurr(%q) failed: %v", curr, err))
	}
	return c
}

// Code returns the 3-letter alphabetic code of the currency.
// The code is the unique identifier of the currency and is used in
// international finance and commerce.
// For currencies obtained through [ParseCurr] this method always returns
// a valid code; for the zero value it returns an empty string.
func (c Currency) Code() string {
	return c.code
}

// Scale returns the number of digits after the decimal point required for
// representing the minor unit of a currency.
// All currently supported currencies use a scale of 2: for example, the
// [US Dollar] represents its minor unit, 1 cent, as 0.01 dollars.
//
// [US Dollar]: https://en.wikipedia.org/wiki/United_States_dollar
func (c Currency) Scale() int {
	return c.scale
}

// Factor returns the number of minor units in one major unit of the currency.
// Factor is always 10 raised to the power of [Currency.Scale], so for
// a scale of 2 the factor is 100.
func (c Currency) Factor() int64 {
	return c.factor
}

// Locale returns the [BCP 47] language tag that determines the digit grouping
// and decimal separators used by [Money.Beautify].
//
// [BCP 47]: https://en.wikipedia.org/wiki/IETF_language_tag
func (c Currency) Locale() language.Tag {
	return c.locale
}

// Symbol returns the display prefix used by [Money.Beautify].
// For all currently supported currencies the symbol is the alphabetic code.
func (c Currency) Symbol() string {
	return c.code
}

// SameCurr returns true if two currencies have the same code.
// Codes are compared case-insensitively.
// See also method [Money.SameCurr].
func (c Currency) SameCurr(other Currency) bool {
	return strings.EqualFold(c.code, other.code)
}

// Equal reports whether two currencies are the same.
// It is identical to [Currency.SameCurr]: the code is the whole identity of
// a currency.
func (c Currency) Equal(other Currency) bool {
	return c.SameCurr(other)
}

// printer returns a message printer localized for the currency.
func (c Currency) printer() *message.Printer {
	return message.NewPrinter(c.locale)
}

// format returns a localized decimal formatter for v with the fraction digits
// pinned to the currency's scale.
func (c Currency) format(v float64) number.Formatter {
	return number.Decimal(v,
		number.MinFractionDigits(c.scale),
		number.MaxFractionDigits(c.scale))
}

// formatExact renders the exact digits of d with the currency's grouping and
// decimal separators. It serves [Money.Beautify] for amounts beyond float64
// precision, which the CLDR formatter cannot take exactly.
// All supported locales group digits in threes.
func (c Currency) formatExact(d decimal.Decimal) string {
	s := d.StringFixed(int32(c.scale))
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	if s[0] == '-' {
		b.WriteByte('-')
		s = s[1:]
	}
	num, frac := s, ""
	if c.scale > 0 {
		num, frac = s[:len(s)-c.scale-1], s[len(s)-c.scale:]
	}
	for i := range len(num) {
		if i > 0 && (len(num)-i)%3 == 0 {
			b.WriteString(c.groupSep)
		}
		b.WriteByte(num[i])
	}
	if frac != "" {
		b.WriteString(c.decSep)
		b.WriteString(frac)
	}
	return b.String()
}

// String method implements the [fmt.Stringer] interface and returns
// a string representation of the Currency value.
// See also method [Currency.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (c Currency) String() string {
	return c.Code()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseCurr].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (c *Currency) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*c, err = ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Currency{}, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns a quoted 3-letter code.
// See also method [Currency.Code].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (c Currency) MarshalJSON() ([]byte, error) {
	text := make([]byte, 0, 5)
	text = append(text, '"')
	text = append(text, c.Code()...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// See also constructor [ParseCurr].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (c *Currency) UnmarshalText(text []byte) error {
	var err error
	*c, err = ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Currency{}, err)
	}
	return err
}

// AppendText implements the [encoding.TextAppender] interface.
// AppendText always appends a 3-letter code.
// See also method [Currency.Code].
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (c Currency) AppendText(text []byte) ([]byte, error) {
	return append(text, c.Code()...), nil
}

// MarshalText implements [encoding.TextMarshaler] interface.
// MarshalText always returns a 3-letter code.
// See also method [Currency.Code].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// See also constructor [ParseCurr].
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (c *Currency) UnmarshalBinary(text []byte) error {
	var err error
	*c, err = ParseCurr(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Currency{}, err)
	}
	return err
}

// AppendBinary implements the [encoding.BinaryAppender] interface.
// AppendBinary always appends a 3-letter code.
// See also method [Currency.Code].
//
// [encoding.BinaryAppender]: https://pkg.go.dev/encoding#BinaryAppender
func (c Currency) AppendBinary(data []byte) ([]byte, error) {
	return append(data, c.Code()...), nil
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
// MarshalBinary always returns a 3-letter code.
// See also method [Currency.Code].
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (c Currency) MarshalBinary() ([]byte, error) {
	return []byte(c.Code()), nil
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// See also constructor [ParseCurr].
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (c *Currency) UnmarshalBSONValue(typ byte, data []byte) error {
	// constants are from https://bsonspec.org/spec.html
	var err error
	switch typ {
	case 2:
		*c, err = parseBSONString(data)
	case 10:
		// null, do nothing
	default:
		err = fmt.Errorf("BSON type %d is not supported", typ)
	}
	if err != nil {
		err = fmt.Errorf("converting from BSON type %d to %T: %w", typ, Currency{}, err)
	}
	return err
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// MarshalBSONValue always returns a 3-letter code.
// See also method [Currency.Code].
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (c Currency) MarshalBSONValue() (typ byte, data []byte, err error) {
	return 2, c.bsonString(), nil
}

// parseBSONString parses a BSON string to currency.
// The byte order of the input data must be little-endian.
func parseBSONString(data []byte) (Currency, error) {
	if len(data) < 4 {
		return Currency{}, fmt.Errorf("%w: invalid data length %v", errInvalidBSON, len(data))
	}
	u := uint32(data[0])
	u |= uint32(data[1]) << 8
	u |= uint32(data[2]) << 16
	u |= uint32(data[3]) << 24
	l := int(int32(u)) //nolint:gosec
	if l < 1 || len(data) < l+4 {
		return Currency{}, fmt.Errorf("%w: invalid string length %v", errInvalidBSON, l)
	}
	if data[l+4-1] != 0 {
		return Currency{}, fmt.Errorf("%w: invalid null terminator %v", errInvalidBSON, data[l+4-1])
	}
	s := string(data[4 : l+4-1])
	return ParseCurr(s)
}

// bsonString returns the BSON string representation of the currency.
// The byte order of the result is little-endian.
func (c Currency) bsonString() []byte {
	s := c.String()
	l := len(s) + 1
	data := make([]byte, 4+l)
	data[0] = byte(l)
	data[1] = byte(l >> 8)
	data[2] = byte(l >> 16)
	data[3] = byte(l >> 24)
	copy(data[4:], s)
	data[4+l-1] = 0
	return data
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (c *Currency) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*c, err = ParseCurr(value)
	case []byte:
		*c, err = ParseCurr(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values, use %T or *%T", Currency{}, NullCurrency{}, Currency{})
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Currency{}, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (c Currency) Value() (driver.Value, error) {
	return c.Code(), nil
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb       | Example | Description     |
//	| ---------- | ------- | --------------- |
//	| %c, %s, %v | USD     | Currency        |
//	| %q         | "USD"   | Quoted currency |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (c Currency) Format(state fmt.State, verb rune) {
	// Currency symbols
	curr := c.Code()
	currlen := len(curr)

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + currlen + tquote
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

	// Closing quote
	for range tquote {
		buf[pos] = '"'
		pos--
	}

	// Currency symbols
	for i := range currlen {
		buf[pos] = curr[currlen-i-1]
		pos--
	}

	// Opening quote
	for range lquote {
		buf[pos] = '"'
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
	case 'q', 'Q', 's', 'S', 'v', 'V', 'c', 'C':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(money.Currency="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// NullCurrency represents a currency that can be null.
// Its zero value is null.
// NullCurrency is not thread-safe.
type NullCurrency struct {
	Currency Currency
	Valid    bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Currency.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullCurrency) Scan(value any) error {
	if value == nil {
		n.Currency = Currency{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Currency.Scan(value)
}

// Value implements the [driver.Valuer] interface.
// See also method [Currency.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullCurrency) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Currency.Value()
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also method [Currency.UnmarshalJSON].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (n *NullCurrency) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		n.Currency = Currency{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Currency.UnmarshalJSON(text)
}

// MarshalJSON implements the [json.Marshaler] interface.
// See also method [Currency.MarshalJSON].
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (n NullCurrency) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Currency.MarshalJSON()
}

// UnmarshalBSONValue implements the [v2/bson.ValueUnmarshaler] interface.
// See also method [Currency.UnmarshalBSONValue].
//
// [v2/bson.ValueUnmarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueUnmarshaler
func (n *NullCurrency) UnmarshalBSONValue(typ byte, data []byte) error {
	if typ == 10 {
		n.Currency = Currency{}
		n.Valid = false
		return nil
	}
	n.Valid = true
	return n.Currency.UnmarshalBSONValue(typ, data)
}

// MarshalBSONValue implements the [v2/bson.ValueMarshaler] interface.
// See also method [Currency.MarshalBSONValue].
//
// [v2/bson.ValueMarshaler]: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2/bson#ValueMarshaler
func (n NullCurrency) MarshalBSONValue() (typ byte, data []byte, err error) {
	if !n.Valid {
		return 10, nil, nil
	}
	return n.Currency.MarshalBSONValue()
}
