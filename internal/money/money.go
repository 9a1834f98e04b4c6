// Package money holds the rounding, parsing and formatting rules for dollar amounts.
package money

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Round2 rounds to cents. Answer keys are rounded here, never at display time.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Int returns a whole-dollar amount.
func Int(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Percent converts a whole or fractional percentage (e.g. 7.65) to a rate.
func Percent(p decimal.Decimal) decimal.Decimal {
	return p.Div(decimal.NewFromInt(100))
}

const maxEntryExponent = 20

// ParseEntry reads a user-typed amount. It accepts surrounding whitespace, a leading
// dollar sign and thousands separators. ok is false for blank or unparseable text
// and for exponents beyond 1e20 either way;
// the returned value is zero in that case.
func ParseEntry(text string) (d decimal.Decimal, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, false
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	// arithmetic on a huge exponent allocates 10^exp
	if v.Exponent() < -maxEntryExponent || v.Exponent() > maxEntryExponent {
		return decimal.Zero, false
	}
	if neg {
		v = v.Neg()
	}
	return v, true
}

// Format renders an amount as $1,234.56.
func Format(d decimal.Decimal) string {
	f, _ := d.Float64()
	return FormatFloat(f)
}

// FormatFloat renders a float amount as $1,234.56.
func FormatFloat(f float64) string {
	if f < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -f)
	}
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// FormatWhole renders an amount without cents, as $1,234.
func FormatWhole(d decimal.Decimal) string {
	f, _ := d.Float64()
	if f < 0 {
		return "-$" + humanize.FormatFloat("#,###.", -f)
	}
	return "$" + humanize.FormatFloat("#,###.", f)
}
