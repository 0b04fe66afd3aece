package main

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	assert.NoError(t, err)

	assert.Equal(t, "localhost", cfg.appHost)
	assert.Equal(t, "8080", cfg.appPort)
	assert.Equal(t, "info", cfg.logLevel)

	assert.Equal(t, "localhost", cfg.pgHost)
	assert.Equal(t, 5432, cfg.pgPort)
	assert.Equal(t, "expenses", cfg.pgDB)
	assert.Equal(t, 16, cfg.pgMaxOpenConns)
	assert.Equal(t, 8, cfg.pgMaxIdleConns)

	assert.Equal(t, "localhost", cfg.redisHost)
	assert.Equal(t, 6379, cfg.redisPort)
	assert.Equal(t, 5*time.Minute, cfg.summaryCacheTTL)

	assert.Empty(t, cfg.kafkaBrokers)
	assert.Equal(t, "expense-events", cfg.kafkaTopic)

	assert.Equal(t, 86400, cfg.jwtExpSecond)
	assert.Equal(t, 10, cfg.bcryptCost)
}

func TestParseConfig_FromEnv(t *testing.T) {
	resetEnv()

	os.Setenv("APP_PORT", "9090")
	os.Setenv("POSTGRES_PORT", "5433")
	os.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	os.Setenv("SUMMARY_CACHE_TTL_SECOND", "60")
	os.Setenv("JWT_EXP_SECOND", "3600")
	defer resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.appPort)
	assert.Equal(t, 5433, cfg.pgPort)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.kafkaBrokers)
	assert.Equal(t, time.Minute, cfg.summaryCacheTTL)
	assert.Equal(t, 3600, cfg.jwtExpSecond)
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	resetEnv()

	os.Setenv("POSTGRES_PORT", "not-a-number")
	defer resetEnv()

	_, err := parseConfig("nonexistent.env")
	assert.Error(t, err)
}
