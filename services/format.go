package services

import (
	"fmt"
	"strings"
)

// FormatCAD formats an amount as Canadian dollars, e.g. "$12,345.67".
// Thousands are grouped in threes and the result always carries exactly two
// decimal places.
func FormatCAD(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// FormatPct renders a percentage the way the builder displays it: trailing
// zeros trimmed, so 5 stays "5" and 7.25 stays "7.25".
func FormatPct(pct float64) string {
	s := fmt.Sprintf("%.2f", pct)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" {
		return "0"
	}
	return s
}
