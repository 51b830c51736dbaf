// Package predict forecasts when a community metric will cross a milestone.
// It fits a linear trend over a recent window of the series and solves for
// the crossing date, rating its own confidence. Nothing here errors: a series
// that cannot support a forecast just yields a low-confidence result with no
// predicted date.
package predict

import (
	"sort"
	"time"

	"github.com/n8n-pulse/pulse/core/stats"
	"github.com/n8n-pulse/pulse/schema"
)

// Options tune a prediction. The zero value selects all defaults.
type Options struct {
	MinDataPoints  int // minimum points required to attempt a fit (default 4)
	LookbackMonths int // recent window the fit is restricted to (default 6)
}

// Defaults applied when Options fields are unset.
const (
	DefaultMinDataPoints  = 4
	DefaultLookbackMonths = 6

	// maxHorizonDays suppresses forecasts too far out to be worth showing.
	maxHorizonDays = 730
)

func (o Options) withDefaults() Options {
	if o.MinDataPoints <= 0 {
		o.MinDataPoints = DefaultMinDataPoints
	}
	if o.LookbackMonths <= 0 {
		o.LookbackMonths = DefaultLookbackMonths
	}
	return o
}

// datedPoint pairs a parsed instant with its observed value.
type datedPoint struct {
	at    time.Time
	value float64
}

// PredictMilestone fits a trend over series and forecasts when it crosses
// target. Zero and negative values are treated as "not yet measuring" and
// dropped before fitting, consistent with the registry's ExcludeZero hint.
func PredictMilestone(series []schema.TimeSeriesPoint, target float64, opts Options) schema.MilestonePrediction {
	return predictAt(series, target, opts, time.Now().UTC())
}

// predictAt is the clock-injected implementation backing PredictMilestone.
func predictAt(series []schema.TimeSeriesPoint, target float64, opts Options, now time.Time) schema.MilestonePrediction {
	opts = opts.withDefaults()

	pred := schema.MilestonePrediction{
		Milestone:  target,
		Confidence: schema.LowConfidence,
	}

	points := make([]datedPoint, 0, len(series))
	for _, p := range series {
		if p.Value <= 0 {
			continue
		}
		at, err := schema.ParseFlexibleDate(p.Date)
		if err != nil {
			continue
		}
		points = append(points, datedPoint{at: at, value: p.Value})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].at.Before(points[j].at) })

	if len(points) == 0 {
		return pred
	}
	pred.CurrentValue = points[len(points)-1].value
	if len(points) < opts.MinDataPoints {
		return pred
	}

	// Restrict the fit to the recent window; when the window is too sparse,
	// fall back to the last MinDataPoints raw points so a prediction is
	// always attempted once minimum data exists.
	cutoff := now.AddDate(0, -opts.LookbackMonths, 0)
	var window []datedPoint
	for i, p := range points {
		if !p.at.Before(cutoff) {
			window = points[i:]
			break
		}
	}
	if len(window) < opts.MinDataPoints {
		window = points[len(points)-opts.MinDataPoints:]
	}

	first := window[0].at
	fitPoints := make([]stats.Point, len(window))
	for i, p := range window {
		fitPoints[i] = stats.Point{
			X: p.at.Sub(first).Hours() / 24,
			Y: p.value,
		}
	}
	pred.PointsUsed = len(fitPoints)

	reg := stats.LinearRegression(fitPoints)
	if reg != nil {
		pred.GrowthPerDay = reg.Slope
		pred.RSquared = reg.RSquared
	}

	// Milestone already reached: nothing to forecast.
	if pred.CurrentValue >= target {
		pred.Confidence = schema.HighConfidence
		return pred
	}

	// No fit, or no path to the milestone under a non-increasing trend.
	if reg == nil || reg.Slope <= 0 {
		return pred
	}

	crossingDays := (target - reg.Intercept) / reg.Slope
	lastDays := fitPoints[len(fitPoints)-1].X
	daysOut := int(crossingDays - lastDays + 0.5)
	if daysOut < 0 {
		daysOut = 0
	}
	if daysOut > maxHorizonDays {
		return pred
	}

	pred.PredictedDate = schema.FormatDay(window[len(window)-1].at.AddDate(0, 0, daysOut))
	pred.DaysUntil = daysOut
	pred.Confidence = rateConfidence(reg.RSquared, len(fitPoints))
	return pred
}

// rateConfidence maps fit quality and sample size to a rating.
func rateConfidence(rSquared float64, points int) schema.Confidence {
	switch {
	case rSquared >= 0.9 && points >= 8:
		return schema.HighConfidence
	case rSquared >= 0.7 && points >= 5:
		return schema.MediumConfidence
	default:
		return schema.LowConfidence
	}
}

// milestoneLadder is the fixed ascending ladder of celebrated values.
var milestoneLadder = []float64{
	1_000, 2_000, 2_500, 5_000, 10_000, 20_000, 25_000,
	50_000, 100_000, 200_000, 250_000, 500_000, 1_000_000,
}

// NextMilestones returns up to 3 ladder values strictly greater than current.
func NextMilestones(current float64) []float64 {
	var next []float64
	for _, m := range milestoneLadder {
		if m > current {
			next = append(next, m)
			if len(next) == 3 {
				break
			}
		}
	}
	return next
}
