// Package timeutil converts business-local wall-clock input into absolute UTC
// instants. All reservation windows are [start, end) in UTC from here on.
package timeutil

import (
	"fmt"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Normalize resolves a local calendar date and 24h wall-clock time in the
// given IANA zone to a single UTC instant. It is pure: identical inputs
// always yield the identical instant, with no dependence on server-local
// time.
func Normalize(date, clock, zone string) (time.Time, error) {
	if zone == "" {
		return time.Time{}, fmt.Errorf("%w: zone is empty", domain.ErrInvalidTimeZone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidTimeZone, zone)
	}

	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", domain.ErrInvalidDateTime, date)
	}
	c, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", domain.ErrInvalidDateTime, clock)
	}

	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc).UTC(), nil
}
