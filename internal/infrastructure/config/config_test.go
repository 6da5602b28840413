package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"STOREFRONT_APP_NAME",
	"STOREFRONT_APP_ENV",
	"STOREFRONT_APP_PORT",
	"STOREFRONT_DATABASE_HOST",
	"STOREFRONT_DATABASE_PORT",
	"STOREFRONT_DATABASE_PASSWORD",
	"STOREFRONT_DATABASE_MAX_OPEN_CONNS",
	"STOREFRONT_DATABASE_MAX_IDLE_CONNS",
	"STOREFRONT_JWT_SECRET",
	"STOREFRONT_COOKIE_SECURE",
	"STOREFRONT_COOKIE_SAME_SITE",
	"STOREFRONT_PAYPAL_CLIENT_ID",
	"STOREFRONT_PAYPAL_CLIENT_SECRET",
	"STOREFRONT_PAYPAL_ENVIRONMENT",
	"STOREFRONT_SWAGGER_ENABLED",
	"STOREFRONT_SWAGGER_REQUIRE_AUTH",
	"STOREFRONT_SITE_BASE_URL",
}

// clearEnv blanks every variable the tests touch; viper ignores empty values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storefront", cfg.Database.DBName)
		assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
		assert.Equal(t, 30*24*time.Hour, cfg.Cookie.CartTTL)
		assert.Equal(t, "sandbox", cfg.PayPal.Environment)
		assert.Equal(t, "GBP", cfg.PayPal.Currency)
		assert.Equal(t, "https://archerandash.com", cfg.Site.BaseURL)
		assert.Equal(t, "https://www.archerandash.com", cfg.Site.FeedBaseURL)
		assert.Empty(t, cfg.Redis.Host)
	})

	t.Run("loads values from environment variables with STOREFRONT prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOREFRONT_APP_NAME", "shop")
		t.Setenv("STOREFRONT_APP_PORT", "9000")
		t.Setenv("STOREFRONT_DATABASE_HOST", "db.local")
		t.Setenv("STOREFRONT_DATABASE_PORT", "5433")
		t.Setenv("STOREFRONT_PAYPAL_ENVIRONMENT", "live")
		t.Setenv("STOREFRONT_SITE_BASE_URL", "https://example.com/")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shop", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "live", cfg.PayPal.Environment)
		assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOREFRONT_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("STOREFRONT_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown paypal environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOREFRONT_PAYPAL_ENVIRONMENT", "staging")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "paypal.environment")
	})

	t.Run("same_site none requires secure cookies", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOREFRONT_COOKIE_SAME_SITE", "none")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cookie.secure=true")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STOREFRONT_APP_ENV", "production")
		t.Setenv("STOREFRONT_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("STOREFRONT_DATABASE_PASSWORD", "secure-password")
		t.Setenv("STOREFRONT_COOKIE_SECURE", "true")
		t.Setenv("STOREFRONT_PAYPAL_CLIENT_ID", "client")
		t.Setenv("STOREFRONT_PAYPAL_CLIENT_SECRET", "secret")
		t.Setenv("STOREFRONT_SWAGGER_ENABLED", "false")
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("STOREFRONT_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires secure cookies in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("STOREFRONT_COOKIE_SECURE", "false")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cookie.secure must be true")
	})

	t.Run("requires paypal credentials in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("STOREFRONT_PAYPAL_CLIENT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "paypal.client_id and paypal.client_secret")
	})

	t.Run("fails if swagger enabled without protection in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("STOREFRONT_SWAGGER_ENABLED", "true")
		t.Setenv("STOREFRONT_SWAGGER_REQUIRE_AUTH", "false")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "swagger endpoint must be disabled")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_APP_NAME", "shell")
	t.Cleanup(func() { _ = os.Unsetenv("STOREFRONT_LOG_LEVEL") })

	dir := t.TempDir()
	dotenv := "STOREFRONT_APP_NAME=dotenv\nSTOREFRONT_LOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shell", cfg.App.Name, "the environment wins over .env")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_PAYPAL_ENVIRONMENT", "staging")
	t.Setenv("STOREFRONT_COOKIE_SAME_SITE", "none")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "paypal.environment")
	assert.Contains(t, err.Error(), "cookie.secure=true")
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_APP_PORT", "9100")

	dir := t.TempDir()
	toml := `[app]
port = "7000"

[http]
cors_allow_origins = ["https://archerandash.com"]
rate_limit_window = "30s"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.App.Port, "the environment wins over config.toml")
	assert.Equal(t, []string{"https://archerandash.com"}, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RateLimitWindow)
	assert.Equal(t, 20, cfg.HTTP.RateLimitRequests)
}
