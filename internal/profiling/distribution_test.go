package profiling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statkit/internal/errors"
)

func TestSummarize_Basic(t *testing.T) {
	s, err := Summarize([]float64{5, 1, 4, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 5, s.N)
	assert.Equal(t, 3.0, s.Mean)
	assert.InDelta(t, math.Sqrt(2.5), s.StdDev, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 3.0, s.Median)
	assert.LessOrEqual(t, s.Q25, s.Median)
	assert.GreaterOrEqual(t, s.Q75, s.Median)
	assert.InDelta(t, 0, s.Skewness, 1e-12)
	// excess kurtosis of 1..5 is -1.2
	assert.InDelta(t, -1.2, s.Kurtosis, 1e-12)
}

func TestSummarize_RightSkew(t *testing.T) {
	s, err := Summarize([]float64{1, 1, 1, 2, 2, 3, 10})
	require.NoError(t, err)
	assert.Greater(t, s.Skewness, 0.0)
}

func TestSummarize_ConstantColumn(t *testing.T) {
	s, err := Summarize([]float64{4, 4, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 0.0, s.Skewness)
	assert.Equal(t, 0.0, s.Kurtosis)
}

func TestSummarize_TooFewValues(t *testing.T) {
	_, err := Summarize([]float64{1, 2, 3})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
