package overlay

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ValueFormatter formats label values with the grouping and decimal
// separators of locale and exactly decimals fraction digits. An unknown
// locale falls back to the root locale.
func ValueFormatter(locale string, decimals int) func(float64) string {
	p := message.NewPrinter(language.Make(locale))
	decimals = max(decimals, 0)

	return func(v float64) string {
		return p.Sprint(number.Decimal(v, number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)))
	}
}
