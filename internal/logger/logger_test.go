package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	SetLevel("debug")
	assert.True(t, L.Enabled(context.Background(), slog.LevelDebug))

	SetLevel("error")
	assert.False(t, L.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, L.Enabled(context.Background(), slog.LevelError))

	SetLevel("nonsense")
	assert.True(t, L.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, L.Enabled(context.Background(), slog.LevelDebug))
}
