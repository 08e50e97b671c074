package tmdb

import (
	"strconv"
	"strings"
	"time"
)

// FormatDate renders a TMDB date ("2006-01-02") as "January 2, 2006".
// Empty input renders "Unknown"; anything unparseable is returned as is.
func FormatDate(date string) string {
	if date == "" {
		return "Unknown"
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// ReleaseYear returns the year part of a TMDB date, or "" if there is none.
func ReleaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	if _, err := strconv.Atoi(date[:4]); err != nil {
		return ""
	}
	return date[:4]
}

// FormatRating renders a vote average with one decimal.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatRuntime renders minutes as "2h 16m".
func FormatRuntime(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return "Unknown"
	}
	h, m := *minutes/60, *minutes%60
	if h == 0 {
		return strconv.Itoa(m) + "m"
	}
	return strconv.Itoa(h) + "h " + strconv.Itoa(m) + "m"
}

// FormatMoney renders whole dollars with thousands separators: "$1,234,567".
func FormatMoney(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
