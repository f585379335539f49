package money

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RoundHalfUp rounds an amount to 2 fractional digits, with ties rounded away
// from zero. Financial documents use this convention rather than banker's
// rounding, so 10.125 becomes 10.13.
func RoundHalfUp(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatCurrency renders an amount with thousands separators and exactly two
// decimal places. Negative amounts are treated as zero.
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	fixed := RoundHalfUp(amount).StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)

	return b.String()
}

// FormatCurrencyPtr is a nil-safe variant of FormatCurrency. A nil amount is
// rendered as zero.
func FormatCurrencyPtr(amount *decimal.Decimal) string {
	if amount == nil {
		return FormatCurrency(decimal.Zero)
	}
	return FormatCurrency(*amount)
}

// FormatDate renders a calendar date as DD/MM/YYYY. The zero time renders as
// an empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
