package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"statkit/internal/config"
	"statkit/internal/errors"
)

func bufferedLogger(t *testing.T) (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	ws := &zapcore.BufferedWriteSyncer{
		WS:            zapcore.AddSync(&buf),
		Size:          1 << 20,
		FlushInterval: time.Hour,
	}
	t.Cleanup(func() { _ = ws.Stop() })

	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), ws, zap.InfoLevel)
	return zap.New(core), &buf
}

func TestExecute_FlushesFailureLog(t *testing.T) {
	logger, buf := bufferedLogger(t)
	cmd := &cobra.Command{
		Use:           "statkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			return errors.InvalidInput("bad dataset")
		},
	}
	cmd.SetArgs(nil)
	cmd.SetErr(&bytes.Buffer{})

	require.Equal(t, 1, execute(cmd, logger))
	assert.Contains(t, buf.String(), "command failed")
	assert.Contains(t, buf.String(), "bad dataset")
}

func TestExecute_GenerateSucceeds(t *testing.T) {
	logger, buf := bufferedLogger(t)
	cfg := &config.Config{Generator: config.GeneratorConfig{Samples: 20, Seed: 7}}

	root := &cobra.Command{Use: "statkit", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(newGenerateCmd(cfg, logger))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"generate", "--samples", "10"})

	require.Equal(t, 0, execute(root, logger))
	assert.Contains(t, out.String(), "[10 rows x 8 columns]")
	assert.Contains(t, buf.String(), "generated student dataset")
}
