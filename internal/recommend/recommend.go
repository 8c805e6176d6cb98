// Package recommend picks the best, cleanest and biggest spots out of a batch
// of nearby forecasts.
package recommend

import (
	"context"
	"time"

	"github.com/crubio/surfe-diem/backend-go/internal/conditions"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxBatchSpots bounds how many spots one batch fetches
	MaxBatchSpots = 10

	MinCleanliness = 40.0
	MinWaveHeight  = 1.0 // ft

	defaultConcurrency = 5
)

// Fetcher returns the raw forecast for a spot
type Fetcher interface {
	FetchForecast(ctx context.Context, spot models.Spot) (models.Forecast, error)
}

// Recommendation holds the three independent picks. A nil pick means nothing
// worth recommending in that category.
type Recommendation struct {
	Best     *models.ConditionResult  `json:"bestConditions"`
	Cleanest *models.ConditionResult  `json:"cleanestConditions"`
	Highest  *models.ConditionResult  `json:"highestWaves"`
	Results  []models.ConditionResult `json:"results"`
}

type Selector struct {
	fetcher     Fetcher
	concurrency int
	now         func() time.Time
}

func NewSelector(fetcher Fetcher, concurrency int) *Selector {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Selector{
		fetcher:     fetcher,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Recommend fetches up to MaxBatchSpots forecasts concurrently and selects
// from the ones that succeeded. It returns nil for an empty spot list.
func (s *Selector) Recommend(ctx context.Context, spots []models.Spot) (*Recommendation, error) {
	if len(spots) == 0 {
		return nil, nil
	}

	results := s.FetchConditions(ctx, spots)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Recommendation{
		Best:     BestConditions(results),
		Cleanest: CleanestConditions(results),
		Highest:  HighestWaves(results),
		Results:  results,
	}, nil
}

// FetchConditions returns a ConditionResult per spot in input order, leaving
// out spots whose fetch or transform failed.
func (s *Selector) FetchConditions(ctx context.Context, spots []models.Spot) []models.ConditionResult {
	if len(spots) > MaxBatchSpots {
		spots = spots[:MaxBatchSpots]
	}

	slots := make([]*models.ConditionResult, len(spots))
	now := s.now()

	// errors never reach the group so one failed spot cannot cancel the rest
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, spot := range spots {
		g.Go(func() error {
			f, err := s.fetcher.FetchForecast(ctx, spot)
			if err != nil {
				log.Warn().Err(err).Str("spot_id", spot.ID).Msg("Failed to fetch forecast")
				return nil
			}

			result, err := conditions.TransformAt(f, spot, now)
			if err != nil {
				log.Warn().Err(err).Str("spot_id", spot.ID).Msg("Failed to transform forecast")
				return nil
			}

			slots[i] = &result
			return nil
		})
	}
	_ = g.Wait()

	results := make([]models.ConditionResult, 0, len(slots))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

// BestConditions returns the first result with the highest overall score
func BestConditions(results []models.ConditionResult) *models.ConditionResult {
	return maxBy(results, overallScore)
}

// overallScore reads the numeric score, falling back to the "(n/100)" in the
// description for results decoded without a score field.
func overallScore(r models.ConditionResult) float64 {
	if r.Score.Score == 0 {
		if n, ok := conditions.ScoreFromDescription(r.Score.Description); ok {
			return float64(n)
		}
	}
	return float64(r.Score.Score)
}

// CleanestConditions returns the result with the best wind and period mix, or
// nil if even the winner scores under MinCleanliness.
func CleanestConditions(results []models.ConditionResult) *models.ConditionResult {
	best := maxBy(results, cleanliness)
	if best == nil || cleanliness(*best) < MinCleanliness {
		return nil
	}
	return best
}

// HighestWaves returns the result with the tallest waves, or nil if they are
// under MinWaveHeight.
func HighestWaves(results []models.ConditionResult) *models.ConditionResult {
	best := maxBy(results, func(r models.ConditionResult) float64 {
		return r.WaveHeightValue
	})
	if best == nil || best.WaveHeightValue < MinWaveHeight {
		return nil
	}
	return best
}

func cleanliness(r models.ConditionResult) float64 {
	var period float64
	if r.SwellPeriod != nil {
		period = *r.SwellPeriod
	}
	return conditions.CleanlinessScore(r.WindSpeedValue, period)
}

// maxBy keeps the first occurrence of the maximum
func maxBy(results []models.ConditionResult, key func(models.ConditionResult) float64) *models.ConditionResult {
	if len(results) == 0 {
		return nil
	}

	bestIdx, bestVal := 0, key(results[0])
	for i := 1; i < len(results); i++ {
		if v := key(results[i]); v > bestVal {
			bestIdx, bestVal = i, v
		}
	}

	best := results[bestIdx]
	return &best
}
