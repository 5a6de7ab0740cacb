package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ENV", "LOG_LEVEL", "PORT", "CORS_ORIGINS", "STORAGE_DRIVER", "DATABASE_URL",
	"SQLITE_PATH", "TOKEN_SECRET", "TOKEN_TTL", "AUTH_RATE_LIMIT", "VERIFICATION_BACKEND",
	"VERIFICATION_CODE_TTL", "VERIFICATION_SWEEP", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"CONFIG_FILE",
}

// isolate runs the test from an empty directory with no config variables set.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		unsetenv(t, k)
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.Verification.CodeTTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
env: staging
log_level: debug
server:
  port: "9000"
  cors_origins: ["https://app.example.com"]
storage:
  driver: sqlite
  sqlite_path: /var/lib/lyfestyler/app.db
auth:
  token_secret: from-file
  token_ttl: 1h
verification:
  code_ttl: 5m
  sweep: "*/5 * * * *"
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("PORT", "9100")
	t.Setenv("TOKEN_TTL", "45m")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvStaging, cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/lyfestyler/app.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "from-file", cfg.Auth.TokenSecret)
	assert.Equal(t, 45*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Verification.CodeTTL)
	assert.Equal(t, "*/5 * * * *", cfg.Verification.Sweep)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("VERIFICATION_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_RATE_LIMIT", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, VerificationRedis, cfg.Verification.Backend)
	assert.Equal(t, "cache:6379", cfg.Verification.Redis.Addr)
	assert.Equal(t, 3, cfg.Verification.Redis.DB)
	assert.Equal(t, 10, cfg.Auth.RateLimit, "invalid integers keep the default")
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	isolate(t)
	dir, err := os.Getwd()
	require.NoError(t, err)
	env := "# local\nexport PORT=7000\nLOG_LEVEL='warn'\nTOKEN_SECRET=\"from-dotenv\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "from-dotenv", cfg.Auth.TokenSecret)
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_UnknownDriver(t *testing.T) {
	isolate(t)
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := Load("")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad env", func(c *Config) { c.Env = "qa" }, "env must be one of"},
		{"postgres without dsn", func(c *Config) { c.Storage.DatabaseURL = "" }, "database url is required"},
		{"sqlite without path", func(c *Config) { c.Storage.Driver = "sqlite"; c.Storage.SQLitePath = "" }, "sqlite path is required"},
		{"default secret in production", func(c *Config) { c.Env = EnvProduction }, "token secret must be changed"},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "token ttl must be positive"},
		{"negative code ttl", func(c *Config) { c.Verification.CodeTTL = -time.Second }, "code ttl must be positive"},
		{"bad sweep", func(c *Config) { c.Verification.Sweep = "every minute" }, "verification sweep"},
		{"unknown verification backend", func(c *Config) { c.Verification.Backend = "etcd" }, "unknown verification backend"},
		{"redis without addr", func(c *Config) { c.Verification.Backend = "redis"; c.Verification.Redis.Addr = "" }, "redis addr is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("production with secret", func(t *testing.T) {
		cfg := Default()
		cfg.Env = EnvProduction
		cfg.Auth.TokenSecret = "s3cret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("joins errors", func(t *testing.T) {
		cfg := Default()
		cfg.Server.Port = ""
		cfg.Auth.TokenTTL = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, 2, len(strings.Split(err.Error(), "\n")))
	})
}

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFIG_FILE", "/etc/lyfestyler.yaml")
	assert.Equal(t, "cli.yaml", ResolvePath("cli.yaml"))
	assert.Equal(t, "/etc/lyfestyler.yaml", ResolvePath(""))
}

func TestParseEnvFile(t *testing.T) {
	t.Setenv("LYFE_PRESET", "keep")
	for _, k := range []string{"LYFE_BOM", "LYFE_QUOTED", "LYFE_EMPTYVAL"} {
		unsetenv(t, k)
	}

	input := "\ufeffLYFE_BOM=1\nLYFE_PRESET=override\nnot a pair\n=novalue\nLYFE_QUOTED='a b'\nLYFE_EMPTYVAL=\n"
	require.NoError(t, parseEnvFile(zerolog.Nop(), strings.NewReader(input)))

	assert.Equal(t, "1", os.Getenv("LYFE_BOM"))
	assert.Equal(t, "keep", os.Getenv("LYFE_PRESET"))
	assert.Equal(t, "a b", os.Getenv("LYFE_QUOTED"))
	v, ok := os.LookupEnv("LYFE_EMPTYVAL")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestParseCSV(t *testing.T) {
	assert.Nil(t, ParseCSV(""))
	assert.Equal(t, []string{"a", "b"}, ParseCSV(" a ,, b "))
}
