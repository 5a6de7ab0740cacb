package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/app"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/auth"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/clock"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/config"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/log"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/mail"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/storage"
	transporthttp "github.com/AstroPolly/LyfeStylerWebApp-main/internal/transport/http"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/verification"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to $CONFIG_FILE)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		logger := log.Base()
		logger.Error().Err(err).Msg("api exited")
		os.Exit(1)
	}
}

func run(configFlag string) error {
	cfg, err := config.Load(config.ResolvePath(configFlag))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("api")

	if cfg.Env == config.EnvDevelopment && cfg.Auth.TokenSecret == config.DefaultTokenSecret {
		logger.Warn().Msg("TOKEN_SECRET not set, using development secret")
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(rootCtx, startupTimeout)
	defer cancel()

	backend, err := storage.Open(startupCtx, storage.Config{
		Driver:      cfg.Storage.Driver,
		DatabaseURL: cfg.Storage.DatabaseURL,
		Path:        cfg.Storage.SQLitePath,
	}, log.WithComponent("storage"))
	if err != nil {
		return err
	}
	defer backend.Close()

	codes, closeCodes, err := openCodeStore(startupCtx, cfg)
	if err != nil {
		return err
	}
	defer closeCodes()

	sweeper := verification.NewSweeper(codes, cfg.Verification.Sweep, log.WithComponent("verification"))
	if err := sweeper.Start(); err != nil {
		return err
	}

	clk := clock.NewSystem()
	issuer := auth.NewIssuer([]byte(cfg.Auth.TokenSecret), cfg.Auth.TokenTTL, auth.WithClock(clk))
	authSvc := app.NewAuthService(
		backend.Users,
		codes,
		mail.NewLogMailer(log.WithComponent("mail")),
		issuer,
		clk,
		app.WithCodeTTL(cfg.Verification.CodeTTL),
		app.WithAuthLogger(log.WithComponent("auth")),
	)
	eventSvc := app.NewEventService(backend.Events, clk, app.WithEventLogger(log.WithComponent("events")))

	server := &http.Server{
		Addr: ":" + cfg.Server.Port,
		Handler: transporthttp.NewRouter(transporthttp.RouterConfig{
			Auth:          authSvc,
			Events:        eventSvc,
			Ready:         backend,
			CORSOrigins:   cfg.Server.CORSOrigins,
			AuthRateLimit: cfg.Auth.RateLimit,
			Logger:        log.WithComponent("http"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().
		Str("addr", server.Addr).
		Str("env", cfg.Env).
		Str("storage", backend.Driver).
		Str("verification", cfg.Verification.Backend).
		Msg("api listening")

	g, gctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutdown signal received, stopping server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		sweeper.Stop(shutdownCtx)
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	logger.Info().Msg("server stopped")
	return err
}

func openCodeStore(ctx context.Context, cfg config.Config) (verification.Store, func(), error) {
	if cfg.Verification.Backend != config.VerificationRedis {
		return verification.NewMemoryStore(nil), func() {}, nil
	}

	logger := log.WithComponent("verification")
	rs, err := verification.NewRedisStore(ctx, verification.RedisConfig{
		Addr:     cfg.Verification.Redis.Addr,
		Password: cfg.Verification.Redis.Password,
		DB:       cfg.Verification.Redis.DB,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return rs, func() { closeQuietly(logger, rs.Close) }, nil
}

func closeQuietly(logger zerolog.Logger, fn func() error) {
	if err := fn(); err != nil {
		logger.Warn().Err(err).Msg("close failed")
	}
}
