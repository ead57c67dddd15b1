package inference

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	domainStats "statkit/domain/stats"
	"statkit/internal/errors"
)

// DefaultConfidence is the confidence level used when callers have no preference
const DefaultConfidence = 0.95

// ConfidenceIntervalMean computes the two-sided Student-t interval for the
// population mean, with n-1 degrees of freedom and scale sd/sqrt(n).
func ConfidenceIntervalMean(sample []float64, confidence float64) (domainStats.ConfidenceInterval, error) {
	if err := validateConfidence(confidence); err != nil {
		return domainStats.ConfidenceInterval{}, err
	}
	n := len(sample)
	if n < 2 {
		return domainStats.ConfidenceInterval{}, errors.InvalidInputf("mean confidence interval needs at least 2 values, got %d", n)
	}

	mean, err := stats.Mean(sample)
	if err != nil {
		return domainStats.ConfidenceInterval{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	sd, err := stats.StandardDeviationSample(sample)
	if err != nil {
		return domainStats.ConfidenceInterval{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	se := sd / math.Sqrt(float64(n))

	return tInterval(mean, se, float64(n-1), confidence), nil
}

// ConfidenceIntervalDiffMeans computes the interval for mean(x) - mean(y) with
// the unpooled standard error sqrt(vx/nx + vy/ny). Degrees of freedom are the
// conservative min(nx, ny) - 1 rather than Welch-Satterthwaite.
func ConfidenceIntervalDiffMeans(x, y []float64, confidence float64) (domainStats.ConfidenceInterval, error) {
	if err := validateConfidence(confidence); err != nil {
		return domainStats.ConfidenceInterval{}, err
	}
	nx, ny := len(x), len(y)
	if nx < 2 || ny < 2 {
		return domainStats.ConfidenceInterval{}, errors.InvalidInputf("difference-of-means interval needs at least 2 values per group, got %d and %d", nx, ny)
	}

	mx, err := stats.Mean(x)
	if err != nil {
		return domainStats.ConfidenceInterval{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	my, err := stats.Mean(y)
	if err != nil {
		return domainStats.ConfidenceInterval{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	vx, err := stats.SampleVariance(x)
	if err != nil {
		return domainStats.ConfidenceInterval{}, errors.WithCode(errors.CodeInvalidInput, err)
	}
	vy, err := stats.SampleVariance(y)
	if err != nil {
		return domainStats.ConfidenceInterval{}, errors.WithCode(errors.CodeInvalidInput, err)
	}

	se := math.Sqrt(vx/float64(nx) + vy/float64(ny))
	df := float64(min(nx, ny) - 1)

	return tInterval(mx-my, se, df, confidence), nil
}

// tInterval centers a symmetric t interval at estimate
func tInterval(estimate, se, df, confidence float64) domainStats.ConfidenceInterval {
	tCritical := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(0.5 + confidence/2)
	margin := tCritical * se

	return domainStats.ConfidenceInterval{
		Lower:    estimate - margin,
		Upper:    estimate + margin,
		Estimate: estimate,
		Level:    confidence,
	}
}

func validateConfidence(confidence float64) error {
	if !(confidence > 0 && confidence < 1) {
		return errors.InvalidInputf("confidence level must be in (0, 1), got %v", confidence)
	}
	return nil
}
