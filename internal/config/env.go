package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/log"
)

func applyEnv(cfg *Config) {
	logger := log.WithComponent("config")

	envString(logger, "APP_ENV", &cfg.Env)
	envString(logger, "LOG_LEVEL", &cfg.LogLevel)
	envString(logger, "PORT", &cfg.Server.Port)
	envCSV(logger, "CORS_ORIGINS", &cfg.Server.CORSOrigins)

	envString(logger, "STORAGE_DRIVER", &cfg.Storage.Driver)
	envString(logger, "DATABASE_URL", &cfg.Storage.DatabaseURL)
	envString(logger, "SQLITE_PATH", &cfg.Storage.SQLitePath)

	envString(logger, "TOKEN_SECRET", &cfg.Auth.TokenSecret)
	envDuration(logger, "TOKEN_TTL", &cfg.Auth.TokenTTL)
	envInt(logger, "AUTH_RATE_LIMIT", &cfg.Auth.RateLimit)

	envString(logger, "VERIFICATION_BACKEND", &cfg.Verification.Backend)
	envDuration(logger, "VERIFICATION_CODE_TTL", &cfg.Verification.CodeTTL)
	envString(logger, "VERIFICATION_SWEEP", &cfg.Verification.Sweep)
	envString(logger, "REDIS_ADDR", &cfg.Verification.Redis.Addr)
	envString(logger, "REDIS_PASSWORD", &cfg.Verification.Redis.Password)
	envInt(logger, "REDIS_DB", &cfg.Verification.Redis.DB)
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func sensitive(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "secret") || strings.Contains(k, "password") || strings.Contains(k, "database_url")
}

func envString(logger zerolog.Logger, key string, dst *string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	ev := logger.Debug().Str("key", key).Str("source", "environment")
	if sensitive(key) {
		ev = ev.Bool("sensitive", true)
	} else {
		ev = ev.Str("value", v)
	}
	ev.Msg("using environment variable")
	*dst = v
}

func envInt(logger zerolog.Logger, key string, dst *int) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", v).Int("default", *dst).Err(err).
			Msg("invalid integer in environment variable, using default")
		return
	}
	*dst = i
}

func envDuration(logger zerolog.Logger, key string, dst *time.Duration) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", v).Dur("default", *dst).Err(err).
			Msg("invalid duration in environment variable, using default")
		return
	}
	*dst = d
}

func envCSV(logger zerolog.Logger, key string, dst *[]string) {
	v, ok := lookup(key)
	if !ok {
		return
	}
	logger.Debug().Str("key", key).Str("value", v).Str("source", "environment").Msg("using environment variable")
	*dst = ParseCSV(v)
}

// ParseCSV splits a comma separated list and drops empty entries.
func ParseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
