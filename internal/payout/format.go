// internal/payout/format.go
package payout

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is assumed when no currency code is given.
const DefaultCurrency = "NGN"

var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"GHS": "GH₵",
	"KES": "KSh",
}

var displayPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount in minor units as a display string,
// e.g. 500000 NGN -> "₦5,000.00". The number of fraction digits follows the
// currency's standard scale; unknown codes are shown with two digits and the
// code as prefix.
func FormatCurrency(amountMinor int64, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "" {
		code = DefaultCurrency
	}

	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}

	// Minor units stay integral; negating as uint64 covers math.MinInt64.
	magnitude := uint64(amountMinor)
	sign := ""
	if amountMinor < 0 {
		sign = "-"
		magnitude = -magnitude
	}
	pow := uint64(1)
	for i := 0; i < scale; i++ {
		pow *= 10
	}

	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}
	digits := displayPrinter.Sprint(number.Decimal(magnitude / pow))
	if scale > 0 {
		digits += fmt.Sprintf(".%0*d", scale, magnitude%pow)
	}
	return sign + symbol + digits
}
