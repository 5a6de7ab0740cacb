package http

import (
	"context"
	"testing"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/storage/postgres"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/testutil"
)

func TestRouter_EventLifecyclePostgres(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	s := newStackWith(t, postgres.NewUserRepository(pool), postgres.NewEventRepository(pool), pool)
	checkEventLifecycle(t, s)
}
