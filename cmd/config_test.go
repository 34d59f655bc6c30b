package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"freightops/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	config, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 25, config.DBMaxOpenConns)
	assert.Equal(t, 5*time.Second, config.DBLockTimeout)
	assert.Equal(t, "*/5 * * * * *", config.RelaySchedule)
	assert.Equal(t, 100, config.RelayBatchSize)
	assert.False(t, config.RelayEnabled())
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=freightops sslmode=disable", config.DSN())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("RELAY_BATCH_SIZE", "25")
	t.Setenv("DB_LOCK_TIMEOUT", "750ms")

	config, err := cmd.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "9090", config.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.KafkaBrokers)
	assert.True(t, config.RelayEnabled())
	assert.Equal(t, 25, config.RelayBatchSize)
	assert.Equal(t, 750*time.Millisecond, config.DBLockTimeout)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=from-file\nDB_NAME=freight_test\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("JWT_SECRET")
		_ = os.Unsetenv("DB_NAME")
	})

	config, err := cmd.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "from-file", config.JWTSecret)
	assert.Equal(t, "freight_test", config.DBName)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RELAY_BATCH_SIZE", "0")

	_, err := cmd.LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Contains(t, err.Error(), "RELAY_BATCH_SIZE must be positive")
}
