package render

import (
	"strings"
	"time"

	"canteen/pkg/sanitizer"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "2006-01-02"

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders a price with thousands separators and two decimals.
func formatAmount(symbol string, amount float64) string {
	s := amountPrinter.Sprintf("%.2f", amount)
	if symbol == "" {
		return s
	}
	return symbol + " " + s
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(loc).Format(dateLayout)
}

// clean strips markup and collapses whitespace in user-entered text.
func clean(s string) string {
	return sanitizer.PlainText(s)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func orDefault(s, fallback string) string {
	if s = clean(s); s == "" {
		return fallback
	}
	return s
}
