// Package stats has the descriptive statistics primitives used by the
// loader and the prediction engine. Every function defines an explicit
// non-error fallback for degenerate input instead of propagating NaN.
package stats

import (
	"math"
	"sort"
)

// Point is one (x, y) observation fed to a regression.
type Point struct {
	X float64
	Y float64
}

// Regression is a fitted ordinary least squares line.
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64 // 0 when all y values are equal, never NaN
}

// Predict evaluates the fitted line at x.
func (r *Regression) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// TrendLine returns the fitted endpoints over [minX, maxX] for rendering.
func (r *Regression) TrendLine(minX, maxX float64) [2]Point {
	return [2]Point{
		{X: minX, Y: r.Predict(minX)},
		{X: maxX, Y: r.Predict(maxX)},
	}
}

// LinearRegression fits y against x by least squares. It returns nil for
// fewer than 2 points or a zero-variance x distribution.
func LinearRegression(points []Point) *Regression {
	n := len(points)
	if n < 2 {
		return nil
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var ssXY, ssXX, ssYY float64
	for _, p := range points {
		dx := p.X - meanX
		dy := p.Y - meanY
		ssXY += dx * dy
		ssXX += dx * dx
		ssYY += dy * dy
	}

	if ssXX == 0 {
		return nil
	}

	slope := ssXY / ssXX
	reg := &Regression{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}
	if ssYY > 0 {
		reg.RSquared = (ssXY * ssXY) / (ssXX * ssYY)
	}
	return reg
}

// PearsonCorrelation computes the correlation coefficient of two series.
// Mismatched lengths, fewer than 2 points, or zero variance in either axis
// all yield 0 rather than an error.
func PearsonCorrelation(x, y []float64) float64 {
	n := len(x)
	if n < 2 || len(y) != n {
		return 0
	}

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var ssXY, ssXX, ssYY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		ssXY += dx * dy
		ssXX += dx * dx
		ssYY += dy * dy
	}

	if ssXX == 0 || ssYY == 0 {
		return 0
	}
	return ssXY / math.Sqrt(ssXX*ssYY)
}

// Summary holds descriptive statistics for a numeric sample.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64 // population standard deviation
	Count  int
}

// CalculateStats summarizes a sample. Empty input yields the zero Summary.
func CalculateStats(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var ssDev float64
	for _, v := range sorted {
		d := v - mean
		ssDev += d * d
	}

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return Summary{
		Min:    sorted[0],
		Max:    sorted[n-1],
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(ssDev / float64(n)),
		Count:  n,
	}
}

// Bin is one histogram bucket covering [Min, Max).
type Bin struct {
	Min   float64
	Max   float64
	Count int
}

// AutoBinCount signals Sturges' rule bin selection.
const AutoBinCount = 0

// maxAutoBins caps Sturges' rule so huge samples stay readable.
const maxAutoBins = 20

// SturgesBinCount applies Sturges' rule, capped at maxAutoBins.
func SturgesBinCount(n int) int {
	if n <= 0 {
		return 1
	}
	bins := int(math.Ceil(math.Log2(float64(n)) + 1))
	if bins < 1 {
		bins = 1
	}
	if bins > maxAutoBins {
		bins = maxAutoBins
	}
	return bins
}

// CreateHistogramBins buckets values into binCount integer-width bins covering
// [min, max]. Pass AutoBinCount for Sturges' rule. Degenerate samples where
// min == max collapse to a single unit-width bin. Empty input yields no bins.
func CreateHistogramBins(values []float64, binCount int) []Bin {
	n := len(values)
	if n == 0 {
		return nil
	}
	if binCount <= 0 {
		binCount = SturgesBinCount(n)
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	width := math.Ceil((maxV - minV + 1) / float64(binCount))
	if width < 1 {
		width = 1
	}

	bins := make([]Bin, binCount)
	for i := range bins {
		lo := minV + float64(i)*width
		bins[i] = Bin{Min: lo, Max: lo + width}
	}

	for _, v := range values {
		idx := int((v - minV) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx].Count++
	}
	return bins
}
