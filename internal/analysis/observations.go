package analysis

import (
	"fmt"
	"math"
)

// observations renders short plain-text findings for a report
func observations(r *Report) []string {
	var out []string

	out = append(out, fmt.Sprintf("Mean score %.2f, %s (n=%d, pass rate %.1f%%)",
		r.ScoreMeanCI.Estimate, r.ScoreMeanCI, r.Rows, r.PassRate*100))

	for _, cmp := range []GroupComparison{r.Gender, r.School} {
		out = append(out, describeComparison(cmp))
		if !cmp.EqualVariances {
			out = append(out, fmt.Sprintf("Score variances differ between %s and %s; prefer unpooled intervals", cmp.First, cmp.Second))
		}
		if !cmp.FirstNormal || !cmp.SecondNormal {
			out = append(out, fmt.Sprintf("Scores for %s vs %s depart from normality (score is clipped to [0, 100])", cmp.First, cmp.Second))
		}
	}

	out = append(out, fmt.Sprintf("Teaching method explains %.1f%% of score variance (eta squared %.4f)",
		r.Method.EtaSquared*100, r.Method.EtaSquared))

	return out
}

func describeComparison(cmp GroupComparison) string {
	if cmp.DiffCI.Contains(0) {
		return fmt.Sprintf("No clear score difference between %s and %s (d=%.3f, %s, n1=%d, n2=%d)",
			cmp.First, cmp.Second, cmp.CohensD, cmp.Magnitude, cmp.FirstN, cmp.SecondN)
	}

	direction := "higher"
	if cmp.CohensD < 0 {
		direction = "lower"
	}
	return fmt.Sprintf("%s scores %.2f points %s than %s (d=%.3f, %s effect, n1=%d, n2=%d)",
		cmp.First, math.Abs(cmp.DiffCI.Estimate), direction, cmp.Second, cmp.CohensD, cmp.Magnitude, cmp.FirstN, cmp.SecondN)
}
