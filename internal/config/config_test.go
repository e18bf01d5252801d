package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "50051", cfg.Port)
	assert.Equal(t, "8080", cfg.WebPort)
	assert.Equal(t, "8081", cfg.RESTPort)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestEnvFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_DRIVER=SQLite\nSQLITE_PATH=/tmp/x.db\nRATE_LIMIT_BURST=3\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("SQLITE_PATH")
		os.Unsetenv("RATE_LIMIT_BURST")
	})
	t.Setenv("JWT_SECRET", "x")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("port", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--port", "9000"}))

	cfg, err := Load(envFile, fs)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.Equal(t, "9000", cfg.Port, "explicit flag wins")
	assert.Equal(t, "info", cfg.LogLevel, "unset flag keeps default")
	require.NoError(t, cfg.Validate(true))
}

func TestValidate(t *testing.T) {
	ok := Config{DBDriver: "postgres", DatabaseURL: "postgres://x", JWTSecret: "s", RateLimitRPS: 1, RateLimitBurst: 1}
	require.NoError(t, ok.Validate(true))

	noSecret := ok
	noSecret.JWTSecret = ""
	assert.Error(t, noSecret.Validate(true))
	assert.NoError(t, noSecret.Validate(false))

	badDriver := ok
	badDriver.DBDriver = "mysql"
	assert.Error(t, badDriver.Validate(false))

	badRate := ok
	badRate.RateLimitBurst = 0
	assert.Error(t, badRate.Validate(false))
}
