package logger

import (
	"testing"

	"github.com/fatflowers/wellbeing/pkg/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_AppliesLevel(t *testing.T) {
	l, err := New(&config.Config{Env: config.EnvProd, Log: config.LogConfig{Level: "warn"}})
	require.NoError(t, err)
	require.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(&config.Config{Log: config.LogConfig{Level: "chatty"}})
	require.Error(t, err)
}
