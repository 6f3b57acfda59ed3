package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"info":   zapcore.InfoLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextHelpers checks that loggers stored in a context are used by the helpers.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx := ToContext(context.Background(), New(&buf, zapcore.DebugLevel))
	ctx = WithName(ctx, "installer")
	ctx = WithKV(ctx, "tag", "v1.0.0")

	InfoKV(ctx, "Fetched release")

	out := buf.String()
	require.Contains(t, out, "installer")
	require.Contains(t, out, "Fetched release")
	require.Contains(t, out, "v1.0.0")
}

// TestFromContextFallsBackToGlobal ensures an empty context yields the global logger.
func TestFromContextFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}
