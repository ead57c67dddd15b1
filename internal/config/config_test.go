package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"statkit/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STATKIT_SAMPLES", "STATKIT_SEED", "STATKIT_OUTPUT", "STATKIT_CONFIDENCE", "STATKIT_ALPHA", "STATKIT_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Generator.Samples)
	assert.Equal(t, int64(42), cfg.Generator.Seed)
	assert.Empty(t, cfg.Generator.OutputPath)
	assert.Equal(t, 0.95, cfg.Inference.Confidence)
	assert.Equal(t, 0.05, cfg.Inference.Alpha)
	assert.Equal(t, zapcore.InfoLevel, cfg.Log.Level)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STATKIT_SAMPLES", "250")
	t.Setenv("STATKIT_SEED", "7")
	t.Setenv("STATKIT_OUTPUT", "/tmp/students.xlsx")
	t.Setenv("STATKIT_CONFIDENCE", "0.99")
	t.Setenv("STATKIT_ALPHA", "0.01")
	t.Setenv("STATKIT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Generator.Samples)
	assert.Equal(t, int64(7), cfg.Generator.Seed)
	assert.Equal(t, "/tmp/students.xlsx", cfg.Generator.OutputPath)
	assert.Equal(t, 0.99, cfg.Inference.Confidence)
	assert.Equal(t, 0.01, cfg.Inference.Alpha)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log.Level)
}

func TestLoad_UnparsableValuesFallBack(t *testing.T) {
	t.Setenv("STATKIT_SAMPLES", "many")
	t.Setenv("STATKIT_CONFIDENCE", "high")
	t.Setenv("STATKIT_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Generator.Samples)
	assert.Equal(t, 0.95, cfg.Inference.Confidence)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"zero samples":     {"STATKIT_SAMPLES", "0"},
		"confidence one":   {"STATKIT_CONFIDENCE", "1"},
		"negative alpha":   {"STATKIT_ALPHA", "-0.1"},
		"unknown loglevel": {"STATKIT_LOG_LEVEL", "loud"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
