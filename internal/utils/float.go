package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber parses a spreadsheet or CSV cell into a float64.
// Blank cells and non-numeric markers return false. Spaces and non-breaking
// spaces are treated as thousands separators and a lone decimal comma is
// accepted ("1 234,5" -> 1234.5).
func ParseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}

	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseYear parses a year cell; spreadsheet exports sometimes store it as "2019.0".
// Years outside (0, MaxYear] are rejected.
func ParseYear(cell string) (int, bool) {
	v, ok := ParseNumber(cell)
	if !ok || v != math.Trunc(v) || v <= 0 || v > MaxYear {
		return 0, false
	}
	return int(v), true
}
