// Package effectsize computes standardized effect sizes from raw samples or
// from precomputed sums of squares.
package effectsize

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	domainStats "statkit/domain/stats"
	"statkit/internal/errors"
)

// Cohen's d thresholds for qualitative labels
const (
	smallThreshold  = 0.2
	mediumThreshold = 0.5
	largeThreshold  = 0.8
)

// CohensDOneSample computes (mean - mu) / sd using the n-1 standard deviation
func CohensDOneSample(sample []float64, mu float64) (float64, error) {
	if len(sample) < 2 {
		return 0, errors.InvalidInputf("one-sample cohen's d needs at least 2 values, got %d", len(sample))
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return 0, errors.WithCode(errors.CodeInvalidInput, err)
	}
	sd, err := stats.StandardDeviationSample(sample)
	if err != nil {
		return 0, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if sd == 0 || math.IsNaN(sd) {
		return 0, errors.InvalidInput("one-sample cohen's d is undefined for a zero-variance sample")
	}

	return (mean - mu) / sd, nil
}

// CohensDTwoSample computes (mean(x) - mean(y)) / pooled sd.
// Positive when x has the higher mean.
func CohensDTwoSample(x, y []float64) (float64, error) {
	nx, ny := len(x), len(y)
	if nx == 0 || ny == 0 {
		return 0, errors.InvalidInput("two-sample cohen's d needs two non-empty groups")
	}
	if nx+ny < 3 {
		return 0, errors.InvalidInputf("two-sample cohen's d needs at least 3 values in total, got %d", nx+ny)
	}

	mx, ssx := meanAndSumSquares(x)
	my, ssy := meanAndSumSquares(y)

	// (n-1)*var is the within-group sum of squares
	pooledVar := (ssx + ssy) / float64(nx+ny-2)
	pooledSD := math.Sqrt(pooledVar)
	if pooledSD == 0 {
		return 0, errors.InvalidInput("two-sample cohen's d is undefined when both groups have zero variance")
	}

	return (mx - my) / pooledSD, nil
}

// HedgesG applies the small-sample bias correction to a two-sample Cohen's d
func HedgesG(d float64, totalN int) (float64, error) {
	if totalN < 3 {
		return 0, errors.InvalidInputf("hedges' g needs a total sample size of at least 3, got %d", totalN)
	}
	correction := 1.0 - 3.0/(4.0*float64(totalN)-9.0)
	return d * correction, nil
}

// EtaSquared is the share of total variance explained by group membership.
// Both sums of squares are supplied by the caller.
func EtaSquared(ssBetween, ssTotal float64) (float64, error) {
	if ssTotal == 0 {
		return 0, errors.InvalidInput("eta squared is undefined for a zero total sum of squares")
	}
	return ssBetween / ssTotal, nil
}

// GroupSumsOfSquares decomposes the pooled groups into between-group and total
// sums of squares, suitable for EtaSquared.
func GroupSumsOfSquares(groups ...[]float64) (ssBetween, ssTotal float64, err error) {
	if len(groups) < 2 {
		return 0, 0, errors.InvalidInputf("sum of squares decomposition needs at least 2 groups, got %d", len(groups))
	}

	var all []float64
	for i, g := range groups {
		if len(g) == 0 {
			return 0, 0, errors.InvalidInputf("group %d is empty", i)
		}
		all = append(all, g...)
	}

	grand := stat.Mean(all, nil)
	for _, v := range all {
		d := v - grand
		ssTotal += d * d
	}
	for _, g := range groups {
		d := stat.Mean(g, nil) - grand
		ssBetween += float64(len(g)) * d * d
	}

	return ssBetween, ssTotal, nil
}

// InterpretCohensD maps |d| to a qualitative label
func InterpretCohensD(d float64) domainStats.EffectSizeCategory {
	d = math.Abs(d)
	switch {
	case d < smallThreshold:
		return domainStats.EffectNegligible
	case d < mediumThreshold:
		return domainStats.EffectSmall
	case d < largeThreshold:
		return domainStats.EffectMedium
	default:
		return domainStats.EffectLarge
	}
}

func meanAndSumSquares(data []float64) (mean, ss float64) {
	mean = stat.Mean(data, nil)
	for _, v := range data {
		d := v - mean
		ss += d * d
	}
	return mean, ss
}
