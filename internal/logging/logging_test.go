package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("order-api", &buf, slog.LevelInfo)

	l.Info("hello", "order_id", 7)
	l.Debug("hidden")

	var got map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got))
	assert.Equal(t, "order-api", got["component"])
	assert.Equal(t, "hello", got["msg"])
	assert.Equal(t, float64(7), got["order_id"])
}

func TestFromCtx(t *testing.T) {
	base := Discard()
	reqLogger := base.With("request_id", "r1")

	assert.Same(t, base, FromCtx(context.Background(), base))
	assert.Same(t, reqLogger, FromCtx(WithCtx(context.Background(), reqLogger), base))
}

func TestLevelFromEnv(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LevelFromEnv("prod"))
	assert.Equal(t, slog.LevelDebug, LevelFromEnv("dev"))
}
