package inference

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	domainStats "statkit/domain/stats"
	"statkit/internal/errors"
)

// DefaultAlpha is the significance threshold used by the boolean checks
const DefaultAlpha = 0.05

const shapiroMinN = 3

// ShapiroAccurateMaxN is the largest sample for which the Royston p-value is
// calibrated; larger samples are still tested but the p-value may be inaccurate.
const ShapiroAccurateMaxN = 5000

// Royston (1995) polynomial coefficients, AS R94
var (
	swC1 = []float64{0.0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swC2 = []float64{0.0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

// ShapiroWilk computes the W statistic and p-value for the null hypothesis
// that sample was drawn from a normal distribution.
func ShapiroWilk(sample []float64) (domainStats.TestResult, error) {
	n := len(sample)
	if n < shapiroMinN {
		return domainStats.TestResult{}, errors.InvalidInputf("shapiro-wilk needs at least %d values, got %d", shapiroMinN, n)
	}

	x := make([]float64, n)
	copy(x, sample)
	sort.Float64s(x)

	if x[n-1]-x[0] == 0 {
		return domainStats.TestResult{}, errors.InvalidInput("shapiro-wilk is undefined for a sample with zero range")
	}

	a := shapiroWilkCoefficients(n)
	mean := stat.Mean(x, nil)

	var num, ssx float64
	for i, v := range x {
		num += a[i] * v
		d := v - mean
		ssx += d * d
	}

	w := num * num / ssx
	if w > 1 {
		w = 1
	}

	return domainStats.TestResult{
		Statistic: w,
		PValue:    shapiroWilkPValue(w, n),
	}, nil
}

// CheckNormality reports whether normality is not rejected at level alpha
func CheckNormality(sample []float64, alpha float64) (bool, error) {
	if err := validateAlpha(alpha); err != nil {
		return false, err
	}
	res, err := ShapiroWilk(sample)
	if err != nil {
		return false, err
	}
	return res.PValue > alpha, nil
}

// shapiroWilkCoefficients returns the antisymmetric weight vector applied to
// the ordered sample; it has unit norm.
func shapiroWilkCoefficients(n int) []float64 {
	a := make([]float64, n)
	if n == 3 {
		a[0], a[2] = -math.Sqrt2/2, math.Sqrt2/2
		return a
	}

	half := n / 2
	an := float64(n)

	// lower-half expected normal order statistics (negative)
	m := make([]float64, half)
	var summ2 float64
	for i := range m {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (an + 0.25))
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)

	upper := make([]float64, half)
	upper[0] = poly(swC1, rsn) - m[0]/ssumm2

	first := 1
	var fac float64
	if n > 5 {
		first = 2
		upper[1] = poly(swC2, rsn) - m[1]/ssumm2
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) /
			(1 - 2*upper[0]*upper[0] - 2*upper[1]*upper[1]))
	} else {
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*upper[0]*upper[0]))
	}
	for i := first; i < half; i++ {
		upper[i] = -m[i] / fac
	}

	for i := 0; i < half; i++ {
		a[n-1-i] = upper[i]
		a[i] = -upper[i]
	}
	return a
}

func shapiroWilkPValue(w float64, n int) float64 {
	if n == 3 {
		// exact for n = 3
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Pi/3)
		return math.Max(0, math.Min(1, p))
	}

	an := float64(n)
	y := math.Log(1 - w)

	var mu, sigma float64
	if n <= 11 {
		gamma := poly(swG, an)
		if y >= gamma {
			return 0
		}
		y = -math.Log(gamma - y)
		mu = poly(swC3, an)
		sigma = math.Exp(poly(swC4, an))
	} else {
		lnN := math.Log(an)
		mu = poly(swC5, lnN)
		sigma = math.Exp(poly(swC6, lnN))
	}

	return distuv.UnitNormal.Survival((y - mu) / sigma)
}

// poly evaluates c[0] + c[1]*x + c[2]*x^2 + ...
func poly(c []float64, x float64) float64 {
	res := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		res = res*x + c[i]
	}
	return res
}

func validateAlpha(alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return errors.InvalidInputf("significance level must be in (0, 1), got %v", alpha)
	}
	return nil
}
