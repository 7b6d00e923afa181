package storylog

import (
	"math"
	"strconv"
	"strings"
)

// Clamp truncates s to at most n characters and strips ASCII control characters (0x00-0x1F).
// Truncation happens first, so the result never exceeds n.
func Clamp(s string, n int) string {
	if n <= 0 || s == "" {
		return ""
	}

	var b strings.Builder

	count := 0

	for _, r := range s {
		if count == n {
			break
		}

		count++

		if r < 0x20 {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Round2 rounds a numeric string to two decimal places.
// Empty or unparseable input yields an empty string.
func Round2(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}

	rounded := math.Floor(f*100+0.5) / 100
	if math.IsInf(rounded, 0) {
		return ""
	}

	if rounded == 0 {
		rounded = 0 // drop negative zero
	}

	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
