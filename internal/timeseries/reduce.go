package timeseries

import (
	"time"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/units"
)

// FindCurrentPoint returns the point whose interval covers the current time in loc
func FindCurrentPoint(points []models.NWSDataPoint, loc *time.Location) (models.NWSDataPoint, bool) {
	if loc == nil {
		loc = time.UTC
	}
	return FindCurrentPointAt(points, time.Now().In(loc))
}

// FindCurrentPointAt returns the point whose [start, end) covers now. When no
// interval covers now it falls back to the point whose start is nearest to now;
// on equal distance the earlier point in input order wins. Points with
// unparseable intervals are skipped, so ok is false for empty input or input
// with no valid interval.
func FindCurrentPointAt(points []models.NWSDataPoint, now time.Time) (models.NWSDataPoint, bool) {
	var (
		nearest     models.NWSDataPoint
		nearestDist time.Duration
		found       bool
	)

	for _, p := range points {
		interval := ParseValidTimeInterval(p.ValidTime, now.Location())
		if !interval.Valid() {
			continue
		}
		if interval.Contains(now) {
			return p, true
		}

		dist := absDuration(interval.Start.Sub(now))
		if !found || dist < nearestDist {
			nearest = p
			nearestDist = dist
			found = true
		}
	}

	return nearest, found
}

// BucketHourly re-buckets points into horizonHours slots starting at the
// current hour in loc
func BucketHourly(points []models.NWSDataPoint, loc *time.Location, horizonHours int) []models.HourlyValue {
	if loc == nil {
		loc = time.UTC
	}
	return BucketHourlyAt(points, time.Now().In(loc), horizonHours)
}

// BucketHourlyAt produces exactly horizonHours slots, the first starting at
// now floored to the hour. A slot takes the value of the first point whose
// interval overlaps it, or nil when none does.
func BucketHourlyAt(points []models.NWSDataPoint, now time.Time, horizonHours int) []models.HourlyValue {
	if horizonHours <= 0 {
		return []models.HourlyValue{}
	}

	loc := now.Location()
	intervals := make([]Interval, len(points))
	for i, p := range points {
		intervals[i] = ParseValidTimeInterval(p.ValidTime, loc)
	}

	// floor the instant, not the wall clock, so a repeated fall-back hour
	// and half-hour offsets both start at the current hour
	first := now.Add(-(time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second +
		time.Duration(now.Nanosecond())))
	slots := make([]models.HourlyValue, horizonHours)
	for i := range slots {
		slotStart := first.Add(time.Duration(i) * time.Hour)
		slotEnd := slotStart.Add(time.Hour)
		slots[i].Time = slotStart

		for j, interval := range intervals {
			if interval.Overlaps(slotStart, slotEnd) {
				v := points[j].Value
				slots[i].Value = &v
				break
			}
		}
	}

	return slots
}

// ParseCurrentForecast builds the current NWS snapshot as of now in loc
func ParseCurrentForecast(data models.NWSWaveData, loc *time.Location) models.ParsedCurrentForecast {
	if loc == nil {
		loc = time.UTC
	}
	return ParseCurrentForecastAt(data, time.Now().In(loc))
}

// ParseCurrentForecastAt picks the covering point of every layer at now.
// Heights are converted from meters to feet; missing layers read as 0.
func ParseCurrentForecastAt(data models.NWSWaveData, now time.Time) models.ParsedCurrentForecast {
	value := func(points []models.NWSDataPoint) float64 {
		if p, ok := FindCurrentPointAt(points, now); ok {
			return p.Value
		}
		return 0
	}

	return models.ParsedCurrentForecast{
		Timestamp:            now,
		SwellWaveHeight:      units.MetersToFeet(value(data.WaveHeight)),
		SwellWavePeriod:      value(data.WavePeriod),
		SwellWaveDirection:   value(data.PrimarySwellDirection),
		WaveDirection:        value(data.WaveDirection),
		PrimarySwellHeight:   units.MetersToFeet(value(data.PrimarySwellHeight)),
		SecondarySwellHeight: units.MetersToFeet(value(data.SecondarySwellHeight)),
		WindWaveHeight:       units.MetersToFeet(value(data.WindWaveHeight)),
		WindSpeed:            value(data.WindSpeed),
		WindDirection:        value(data.WindDirection),
	}
}

// HourlyFeet converts a bucketed meter series to feet, keeping empty slots empty
func HourlyFeet(slots []models.HourlyValue) []models.HourlyValue {
	out := make([]models.HourlyValue, len(slots))
	for i, s := range slots {
		out[i].Time = s.Time
		if s.Value != nil {
			ft := units.MetersToFeet(*s.Value)
			out[i].Value = &ft
		}
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
