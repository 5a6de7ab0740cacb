package verification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/metrics"
)

// DefaultSweepSchedule runs the sweep once a minute.
const DefaultSweepSchedule = "@every 1m"

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule validates a sweep schedule.
func ParseSchedule(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("parse sweep schedule %q: %w", spec, err)
	}
	return nil
}

// Sweeper periodically removes expired codes from a Store.
type Sweeper struct {
	store    Store
	schedule string
	timeout  time.Duration
	logger   zerolog.Logger

	mu sync.Mutex
	c  *cron.Cron
}

func NewSweeper(store Store, schedule string, logger zerolog.Logger) *Sweeper {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &Sweeper{
		store:    store,
		schedule: schedule,
		timeout:  10 * time.Second,
		logger:   logger,
	}
}

// Start registers the sweep job and starts the cron runner. Calling Start
// twice is a no-op.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return nil
	}

	c := cron.New(cron.WithParser(parser), cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(s.schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	c.Start()
	s.c = c
	s.logger.Info().Str("schedule", s.schedule).Msg("verification sweeper started")
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *Sweeper) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.c
	s.c = nil
	s.mu.Unlock()
	if c == nil {
		return
	}

	select {
	case <-c.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn().Msg("verification sweeper stop timed out")
		return
	}
	s.logger.Info().Msg("verification sweeper stopped")
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.store.Sweep(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("verification sweep failed")
		return 0
	}
	metrics.RecordCodesSwept(n)
	if n > 0 {
		s.logger.Info().Int("removed", n).Msg("expired verification codes removed")
	}
	return n
}
