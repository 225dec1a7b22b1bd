package tournament

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders the age of t relative to now in coarse units.
func FormatTimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatAddress shortens an address to its first 6 and last 4 characters.
// Characters are runes, so multibyte input is never split.
func FormatAddress(address string) string {
	r := []rune(address)
	if len(r) <= 10 {
		return address
	}
	return string(r[:6]) + "..." + string(r[len(r)-4:])
}
