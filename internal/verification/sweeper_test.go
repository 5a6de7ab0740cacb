package verification

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/clock"
)

func TestSweeper_RunOnce(t *testing.T) {
	ctx := context.Background()
	c := clock.NewManual(t0)
	store := NewMemoryStore(c)
	require.NoError(t, store.Put(ctx, "a@example.com", "111111", time.Minute))
	require.NoError(t, store.Put(ctx, "b@example.com", "222222", time.Minute))
	c.Advance(time.Hour)

	s := NewSweeper(store, "", zerolog.Nop())
	assert.Equal(t, 2, s.RunOnce(ctx))
	assert.Equal(t, 0, s.RunOnce(ctx))
}

func TestSweeper_StartStopNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := NewSweeper(NewMemoryStore(nil), "@every 1h", zerolog.Nop())
	require.NoError(t, s.Start())
	require.NoError(t, s.Start(), "second start is a no-op")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Stop(ctx)
	s.Stop(ctx)
}

func TestSweeper_BadSchedule(t *testing.T) {
	s := NewSweeper(NewMemoryStore(nil), "not a schedule", zerolog.Nop())
	assert.Error(t, s.Start())
}

func TestParseSchedule(t *testing.T) {
	assert.NoError(t, ParseSchedule("@every 1m"))
	assert.NoError(t, ParseSchedule("*/5 * * * *"))
	assert.Error(t, ParseSchedule("* * *"))
}
