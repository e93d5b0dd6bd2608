package service

import (
	"fmt"
	"time"
)

// TimeAgo renders a timestamp as a coarse relative age against now, e.g.
// "just now", "5 min", "3 hrs", "2 days". A zero timestamp or one in the
// future collapses to "just now".
func TimeAgo(ts, now time.Time) string {
	if ts.IsZero() {
		return "just now"
	}

	seconds := int(now.Sub(ts).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return "just now"
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d %s", hours, pluralUnit(hours, "hr", "hrs"))
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d %s", days, pluralUnit(days, "day", "days"))
	}

	weeks := days / 7
	if weeks < 5 {
		return fmt.Sprintf("%d %s", weeks, pluralUnit(weeks, "wk", "wks"))
	}

	months := days / 30
	if months < 12 {
		return fmt.Sprintf("%d %s", months, pluralUnit(months, "mo", "mos"))
	}

	years := days / 365
	return fmt.Sprintf("%d %s", years, pluralUnit(years, "yr", "yrs"))
}

func pluralUnit(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
