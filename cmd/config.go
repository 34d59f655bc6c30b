package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort    string
	Environment string

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBLockTimeout  time.Duration

	JWTSecret string

	KafkaBrokers           []string
	KafkaStatusEventsTopic string

	RelaySchedule  string
	RelayBatchSize int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "freightops")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_LOCK_TIMEOUT", "5s")
	v.SetDefault("KAFKA_STATUS_EVENTS_TOPIC", "shipment.status-events")
	v.SetDefault("RELAY_SCHEDULE", "*/5 * * * * *")
	v.SetDefault("RELAY_BATCH_SIZE", 100)
}

// LoadConfig reads the optional env file into the process environment and
// then resolves every key from the environment with defaults. Variables
// already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		Environment:            v.GetString("ENVIRONMENT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		DBMaxOpenConns:         v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:         v.GetInt("DB_MAX_IDLE_CONNS"),
		DBLockTimeout:          v.GetDuration("DB_LOCK_TIMEOUT"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		KafkaBrokers:           splitList(v.GetString("KAFKA_BROKERS")),
		KafkaStatusEventsTopic: v.GetString("KAFKA_STATUS_EVENTS_TOPIC"),
		RelaySchedule:          v.GetString("RELAY_SCHEDULE"),
		RelayBatchSize:         v.GetInt("RELAY_BATCH_SIZE"),
	}

	return config, config.Validate()
}

// Validate reports every missing or out-of-range setting at once.
func (c Config) Validate() error {
	var errList []error
	if c.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}
	if c.DBMaxOpenConns < 1 {
		errList = append(errList, fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns))
	}
	if c.DBLockTimeout <= 0 {
		errList = append(errList, fmt.Errorf("DB_LOCK_TIMEOUT must be positive, got %s", c.DBLockTimeout))
	}
	if c.RelayBatchSize < 1 {
		errList = append(errList, fmt.Errorf("RELAY_BATCH_SIZE must be positive, got %d", c.RelayBatchSize))
	}
	return errors.Join(errList...)
}

// DSN is the libpq keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// RelayEnabled is false when no brokers are configured; events then stay in
// the outbox until a relay with brokers runs.
func (c Config) RelayEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
