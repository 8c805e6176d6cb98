// Package timeseries reduces irregular NWS grid series ("start/duration"
// intervals) to the point covering an instant or to fixed hourly slots.
package timeseries

import (
	"strings"
	"time"
	_ "time/tzdata" // Lambda images ship without a zoneinfo database

	"github.com/rs/zerolog/log"
	"github.com/sosodev/duration"
)

// Interval is the parsed form of an NWS validTime. Start and End are zero when
// either half of the validTime failed to parse; such an interval never matches.
type Interval struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Valid reports whether both bounds were parsed
func (i Interval) Valid() bool {
	return !i.Start.IsZero() && !i.End.IsZero()
}

// Contains reports whether t lies in [Start, End)
func (i Interval) Contains(t time.Time) bool {
	if !i.Valid() {
		return false
	}
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps reports whether the interval intersects [start, end)
func (i Interval) Overlaps(start, end time.Time) bool {
	if !i.Valid() {
		return false
	}
	return i.Start.Before(end) && i.End.After(start)
}

// ParseValidTimeInterval splits an NWS validTime such as
// "2024-06-01T06:00:00+00:00/PT4H" into its bounds, converted to loc.
// It never fails: unparseable input yields an invalid Interval.
func ParseValidTimeInterval(validTime string, loc *time.Location) Interval {
	if loc == nil {
		loc = time.UTC
	}

	var interval Interval
	parts := strings.SplitN(validTime, "/", 2)
	if len(parts) != 2 {
		return interval
	}

	d, err := duration.Parse(parts[1])
	if err == nil {
		interval.Duration = d.ToTimeDuration()
	}

	start, startErr := time.Parse(time.RFC3339, parts[0])
	if startErr != nil || err != nil {
		log.Trace().Str("valid_time", validTime).Msg("Unparseable validTime interval")
		return interval
	}

	interval.Start = start.In(loc)
	interval.End = start.Add(interval.Duration).In(loc)
	return interval
}

// Location resolves an IANA timezone name, falling back to UTC
func Location(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Debug().Str("timezone", name).Err(err).Msg("Unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}
