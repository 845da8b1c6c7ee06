package services

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats an amount as US dollars with thousands separators and
// exactly 2 decimal places (e.g., $1,234,567.89, -$42.00). Rounding is half
// away from zero and happens only here, never on stored values.
func FormatUSD(amount float64) string {
	return formatAmount(amount, "$")
}

// FormatAmount is FormatUSD without the currency symbol.
func FormatAmount(amount float64) string {
	return formatAmount(amount, "")
}

// FormatPercent renders a ratio as a percentage with one decimal (0.35 -> 35.0%).
func FormatPercent(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 0
	}
	return decimal.NewFromFloat(ratio).Shift(2).StringFixed(1) + "%"
}

func formatAmount(amount float64, symbol string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	d := decimal.NewFromFloat(amount).Round(2)

	negative := d.IsNegative()
	raw := d.Abs().StringFixed(2)

	parts := strings.SplitN(raw, ".", 2)
	result := symbol + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		return "-" + result
	}
	return result
}

// groupThousands inserts a comma between every group of 3 digits, counting
// from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
