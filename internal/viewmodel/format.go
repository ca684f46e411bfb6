// Package viewmodel maps aggregates and entity rows onto the shapes
// the frontend renders: dashboard cards, table rows and the payment
// calendar. Everything here is pure; formatting is presentation only
// and never feeds back into arithmetic.
package viewmodel

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount in Brazilian currency notation:
// R$ 1.234,56 with a leading minus for negatives.
func FormatBRL(d decimal.Decimal) string {
	neg := d.IsNegative()
	cents := d.Abs().Round(2).Shift(2).IntPart()

	reais := cents / 100
	rem := cents % 100

	s := groupThousands(strconv.FormatInt(reais, 10)) + "," + pad2(rem)
	if neg {
		return "-R$ " + s
	}
	return "R$ " + s
}

// FormatPercent renders a percentage with one decimal place and a
// comma separator: 30,0%.
func FormatPercent(d decimal.Decimal) string {
	s := d.StringFixed(1)
	return strings.Replace(s, ".", ",", 1) + "%"
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
