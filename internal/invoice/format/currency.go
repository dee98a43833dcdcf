package format

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/invoiceboard/internal/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Options selects the symbol and digit grouping used for display.
type Options struct {
	Symbol string
	Locale string
}

func OptionsFrom(cfg config.DisplayConfig) Options {
	return Options{
		Symbol: cfg.Currency.Symbol,
		Locale: cfg.Currency.Locale,
	}
}

// Currency renders an amount in cents as a display string, e.g. 123456 -> "$1,234.56".
// Dollars and cents are formatted separately so no precision is lost.
func Currency(cents int64, opts Options) string {
	tag, err := language.Parse(strings.TrimSpace(opts.Locale))
	if err != nil {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)

	sign := ""
	dollars, rem := cents/100, cents%100
	if cents < 0 {
		sign = "-"
		dollars, rem = -dollars, -rem
	}

	return sign + opts.Symbol + p.Sprint(number.Decimal(dollars)) + decimalSeparator(p) + fmt.Sprintf("%02d", rem)
}

// decimalSeparator reads the locale's fraction separator off a formatted 1.5.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.Scale(1)))
	return strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
}
