package profiling

import (
	"math"

	"github.com/montanaflynn/stats"

	"statkit/internal/errors"
)

// Summary holds descriptive statistics for one numeric column
type Summary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"` // n-1 denominator
	Min      float64 `json:"min"`
	Q25      float64 `json:"q25"`
	Median   float64 `json:"median"`
	Q75      float64 `json:"q75"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`        // adjusted Fisher-Pearson
	Kurtosis float64 `json:"excess_kurtosis"` // bias-corrected excess kurtosis
}

// minSummaryN is the smallest column with defined quartiles
const minSummaryN = 4

// Summarize computes descriptive statistics for a column of at least 4 values
func Summarize(data []float64) (Summary, error) {
	if len(data) < minSummaryN {
		return Summary{}, errors.InvalidInputf("summary needs at least %d values, got %d", minSummaryN, len(data))
	}

	s := Summary{N: len(data)}
	var err error

	if s.Mean, err = stats.Mean(data); err != nil {
		return Summary{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if s.StdDev, err = stats.StandardDeviationSample(data); err != nil {
		return Summary{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if s.Min, err = stats.Min(data); err != nil {
		return Summary{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if s.Max, err = stats.Max(data); err != nil {
		return Summary{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if s.Median, err = stats.Median(data); err != nil {
		return Summary{}, errors.WithCode(errors.CodeInvalidInput, err)
	}

	// Quartiles for IQR reporting
	if s.Q25, err = stats.Percentile(data, 25); err != nil {
		return Summary{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if s.Q75, err = stats.Percentile(data, 75); err != nil {
		return Summary{}, errors.WithCode(errors.CodeInvalidInput, err)
	}

	s.Skewness, s.Kurtosis = shapeMoments(data, s.Mean)
	return s, nil
}

// shapeMoments returns sample skewness (n >= 3) and excess kurtosis (n >= 4);
// either is 0 when undefined.
func shapeMoments(data []float64, mean float64) (skewness, kurtosis float64) {
	n := float64(len(data))

	var m2, m3, m4 float64
	for _, x := range data {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n
	if m2 == 0 {
		return 0, 0
	}

	if n >= 3 {
		g1 := m3 / math.Pow(m2, 1.5)
		skewness = g1 * math.Sqrt(n*(n-1)) / (n - 2)
	}
	if n >= 4 {
		g2 := m4/(m2*m2) - 3
		kurtosis = ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
	}
	return skewness, kurtosis
}
