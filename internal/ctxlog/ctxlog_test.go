package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", "text", &buf)

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Debug("classified", "sites", 4)

	require.Contains(t, buf.String(), "classified")
	require.Contains(t, buf.String(), "sites=4")
}

func TestFromContextWithoutLogger(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	require.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewJSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", "json", &buf)

	logger.Info("dropped")
	require.Zero(t, buf.Len())

	logger.Warn("kept", "row", 7)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "kept", rec["msg"])
	require.InDelta(t, 7, rec["row"], 0)
}
