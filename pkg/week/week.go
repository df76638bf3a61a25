// Package week implements the Monday-keyed week arithmetic used to
// partition all availability and assignment data.
package week

import (
	"fmt"
	"time"
)

// Layout is the wire format of a week key: the ISO date of a Monday.
const Layout = "2006-01-02"

// Start returns the week key for the week containing t.
func Start(t time.Time) string {
	distanceToMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -distanceToMonday)
	return monday.Format(Layout)
}

// Parse validates a week key and returns the Monday it denotes.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week key %q: %w", key, err)
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("week key %q is not a Monday", key)
	}
	return t, nil
}

// Shift moves a week key by offset weeks. The key must be valid.
func Shift(key string, offset int) (string, error) {
	t, err := Parse(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, offset*7).Format(Layout), nil
}

// Heading formats a week key for display, e.g. "03.11.2025".
func Heading(key string) string {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return key
	}
	return t.Format("02.01.2006")
}
