package stats

import "fmt"

// EffectSizeCategory is the qualitative label for a standardized mean difference
type EffectSizeCategory string

const (
	EffectNegligible EffectSizeCategory = "negligible" // |d| < 0.2
	EffectSmall      EffectSizeCategory = "small"      // 0.2 <= |d| < 0.5
	EffectMedium     EffectSizeCategory = "medium"     // 0.5 <= |d| < 0.8
	EffectLarge      EffectSizeCategory = "large"      // |d| >= 0.8
)

// ConfidenceInterval is a two-sided interval around a point estimate
// INVARIANTS:
// - Lower <= Estimate <= Upper
// - Level in (0, 1)
type ConfidenceInterval struct {
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Estimate float64 `json:"estimate"`
	Level    float64 `json:"level"`
}

// Width returns Upper - Lower
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// Contains reports whether v lies inside the closed interval
func (ci ConfidenceInterval) Contains(v float64) bool {
	return ci.Lower <= v && v <= ci.Upper
}

func (ci ConfidenceInterval) String() string {
	return fmt.Sprintf("%.0f%% CI [%.4f, %.4f] around %.4f", ci.Level*100, ci.Lower, ci.Upper, ci.Estimate)
}

// TestResult holds the raw output of a hypothesis test
type TestResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
}

// Rejects reports whether the null hypothesis is rejected at level alpha
func (r TestResult) Rejects(alpha float64) bool {
	return r.PValue <= alpha
}
