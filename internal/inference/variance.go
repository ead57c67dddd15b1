package inference

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	domainStats "statkit/domain/stats"
	"statkit/internal/errors"
)

// Levene computes the median-centered (Brown-Forsythe) Levene statistic and its
// F(k-1, N-k) p-value for the null hypothesis that all groups share a variance.
func Levene(samples ...[]float64) (domainStats.TestResult, error) {
	k := len(samples)
	if k < 2 {
		return domainStats.TestResult{}, errors.InvalidInputf("levene's test needs at least 2 groups, got %d", k)
	}

	deviations := make([][]float64, k)
	groupMeans := make([]float64, k)
	total := 0
	var grandSum float64

	for i, s := range samples {
		if len(s) < 2 {
			return domainStats.TestResult{}, errors.InvalidInputf("levene's test needs at least 2 values per group, group %d has %d", i, len(s))
		}
		median, err := stats.Median(s)
		if err != nil {
			return domainStats.TestResult{}, errors.WithCode(errors.CodeInvalidInput, err)
		}

		z := make([]float64, len(s))
		var sum float64
		for j, v := range s {
			z[j] = math.Abs(v - median)
			sum += z[j]
		}
		deviations[i] = z
		groupMeans[i] = sum / float64(len(s))
		grandSum += sum
		total += len(s)
	}

	grandMean := grandSum / float64(total)

	var between, within float64
	for i, z := range deviations {
		d := groupMeans[i] - grandMean
		between += float64(len(z)) * d * d
		for _, v := range z {
			e := v - groupMeans[i]
			within += e * e
		}
	}
	if within == 0 {
		return domainStats.TestResult{}, errors.InvalidInput("levene's test is undefined when every group has constant absolute deviations")
	}

	df1 := float64(k - 1)
	df2 := float64(total - k)
	w := (df2 / df1) * (between / within)

	return domainStats.TestResult{
		Statistic: w,
		PValue:    distuv.F{D1: df1, D2: df2}.Survival(w),
	}, nil
}

// CheckEqualVariance reports whether equal variances are not rejected at level alpha
func CheckEqualVariance(x, y []float64, alpha float64) (bool, error) {
	if err := validateAlpha(alpha); err != nil {
		return false, err
	}
	res, err := Levene(x, y)
	if err != nil {
		return false, err
	}
	return res.PValue > alpha, nil
}
