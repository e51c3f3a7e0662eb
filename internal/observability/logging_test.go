package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/freshdesk-proxy/internal/config"
)

func TestNewLogger_DevelopmentMode(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "debug"}, "development")
	require.NoError(t, err)
	defer logger.Sync() //nolint:errcheck

	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLogger_ProductionMode(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "warn"}, "production")
	require.NoError(t, err)
	defer logger.Sync() //nolint:errcheck

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty"}, "development")
	require.NoError(t, err)
	defer logger.Sync() //nolint:errcheck

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}
