package tide

import (
	"sort"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
)

const msPerHour = float64(60 * 60 * 1000)

// InterpolateTide returns the tide height at each query timestamp (unix ms).
// Predictions must be in chronological order. Queries outside the predicted
// range extrapolate along the first or last two predictions rather than
// clamping, so results may exceed the observed min or max.
func InterpolateTide(predictions []models.TidePrediction, queries []int64) []float64 {
	if len(predictions) == 0 || len(queries) == 0 {
		return []float64{}
	}

	heights := make([]float64, len(queries))
	for i, q := range queries {
		heights[i] = InterpolateAt(predictions, q)
	}
	return heights
}

// InterpolateAt returns the height at timestamp. It returns 0 for no
// predictions and the single height for one.
func InterpolateAt(predictions []models.TidePrediction, timestamp int64) float64 {
	switch len(predictions) {
	case 0:
		return 0
	case 1:
		return predictions[0].Height
	}

	// idx is the first prediction strictly after timestamp, so idx-1 is the
	// last one at or before it
	idx := sort.Search(len(predictions), func(i int) bool {
		return predictions[i].Timestamp > timestamp
	})
	switch {
	case idx == 0:
		idx = 1
	case idx == len(predictions):
		idx = len(predictions) - 1
	}

	p0, p1 := predictions[idx-1], predictions[idx]
	return lerp(p0.Timestamp, p0.Height, p1.Timestamp, p1.Height, timestamp)
}

// CurrentState describes the tide at timestamp relative to the surrounding
// high and low extremes. ok is false unless there is an extreme at or before
// timestamp and one after it.
func CurrentState(extremes []models.TideExtreme, timestamp int64) (models.TideState, bool) {
	idx := sort.Search(len(extremes), func(i int) bool {
		return extremes[i].Timestamp > timestamp
	})
	if idx == 0 || idx == len(extremes) {
		return models.TideState{}, false
	}

	prev, next := extremes[idx-1], extremes[idx]

	direction := models.TideFalling
	if next.Type == models.TideTypeHigh {
		direction = models.TideRising
	}

	var rate float64
	if span := float64(next.Timestamp - prev.Timestamp); span > 0 {
		rate = (next.Height - prev.Height) / (span / msPerHour)
	}

	return models.TideState{
		CurrentHeight: lerp(prev.Timestamp, prev.Height, next.Timestamp, next.Height, timestamp),
		Direction:     direction,
		RateOfChange:  rate,
		TimeToNext:    int((next.Timestamp - timestamp) / (60 * 1000)),
		NextType:      next.Type,
		NextHeight:    next.Height,
		NextTime:      next.LocalTime,
	}, true
}

func lerp(t0 int64, v0 float64, t1 int64, v1 float64, t int64) float64 {
	if t1 == t0 {
		return v0
	}
	return v0 + (v1-v0)*float64(t-t0)/float64(t1-t0)
}
