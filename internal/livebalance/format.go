package livebalance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount as rupees with Indian digit grouping:
// the last three digits form one group, the rest pair off in twos
// (₹12,34,567). Whole amounts drop the paise.
func FormatINR(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs().Round(2)

	intPart := d.Truncate(0)
	frac := d.Sub(intPart)

	digits := intPart.String()
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(digits))
	if !frac.IsZero() {
		// ".xy" with exactly two places
		cents := frac.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		b.WriteByte('.')
		if cents < 10 {
			b.WriteByte('0')
		}
		b.WriteString(decimal.NewFromInt(cents).String())
	}
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
