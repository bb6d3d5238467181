package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if v, ok := os.LookupEnv(key); ok {
		t.Cleanup(func() { _ = os.Setenv(key, v) })
	} else {
		t.Cleanup(func() { _ = os.Unsetenv(key) })
	}
	require.NoError(t, os.Unsetenv(key))
}

func useEnvFile(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	orig := envFile
	envFile = path
	t.Cleanup(func() { envFile = orig })
}

func TestParseEnv_ProcessEnvironment(t *testing.T) {
	useEnvFile(t, "")

	t.Setenv("GRPC_ADDR", ":6000")
	t.Setenv("DATABASE_URL", "postgres://db/todo")
	t.Setenv("SECRET_KEY", "k")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("CLOCK_SKEW", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://todo.example.com,")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":6000", c.GRPCAddr)
	assert.Equal(t, "postgres://db/todo", c.DatabaseDSN)
	assert.Equal(t, "k", c.SecretKey)
	assert.Equal(t, 5*time.Minute, c.AccessTokenTTL)
	assert.Equal(t, 4, c.BcryptCost)
	assert.Equal(t, 3*time.Second, c.ClockSkew)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000", "https://todo.example.com"}, c.CORSOrigins)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	unsetEnv(t, "SECRET_KEY")
	unsetEnv(t, "BCRYPT_COST")
	useEnvFile(t, "SECRET_KEY=from-dotenv\nBCRYPT_COST=6\n")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "from-dotenv", c.SecretKey)
	assert.Equal(t, 6, c.BcryptCost)
}

func TestParseEnv_ProcessEnvWinsOverDotEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "from-process")
	useEnvFile(t, "SECRET_KEY=from-dotenv\n")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "from-process", c.SecretKey)
}

func TestParseEnv_BadNumberPanics(t *testing.T) {
	useEnvFile(t, "")
	t.Setenv("BCRYPT_COST", "twelve")

	var c Config
	require.Panics(t, func() { parseEnv(&c) })
}
