package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatLKR форматирует цену для отображения: "LKR 1,234.50".
func FormatLKR(price decimal.Decimal) string {
	fixed := price.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if price.IsNegative() {
		sign = "-"
	}

	return sign + "LKR " + b.String() + "." + frac
}
