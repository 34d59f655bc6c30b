package logger_test

import (
	"testing"

	"freightops/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("production logs at info", func(t *testing.T) {
		l, err := logger.New(logger.Production)

		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zap.DebugLevel))
		assert.True(t, l.Core().Enabled(zap.InfoLevel))
	})

	t.Run("development logs at debug", func(t *testing.T) {
		l, err := logger.New("development")

		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zap.DebugLevel))
	})
}

func TestSync_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { logger.Sync(nil) })
}
