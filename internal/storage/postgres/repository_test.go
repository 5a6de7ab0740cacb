package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/domain"
	"github.com/AstroPolly/LyfeStylerWebApp-main/internal/testutil"
)

func TestRepositories(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)

	testutil.RunRepositoryContract(t, func(t *testing.T) testutil.Repos {
		testutil.TruncateAll(t, context.Background(), pool)
		return testutil.Repos{
			Events: NewEventRepository(pool),
			Users:  NewUserRepository(pool),
		}
	})
}

func TestEventRepository_CreateForUnknownUser(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	userID := testutil.InsertUser(t, ctx, pool, "seed@example.com")
	repo := NewEventRepository(pool)

	id := testutil.InsertEvent(t, ctx, pool, userID, newSeedEvent())
	if _, err := repo.GetEvent(ctx, userID, id); err != nil {
		t.Fatalf("expected seeded event, got %v", err)
	}

	e := newSeedEvent()
	e.ID = "00000000-0000-0000-0000-000000000001"
	e.UserID = "00000000-0000-0000-0000-000000000002"
	if err := repo.CreateEvent(ctx, e); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown owner, got %v", err)
	}
}

func newSeedEvent() domain.Event {
	return domain.Event{Title: "Seed", Date: "2025-06-01", Tags: []string{"a"}}
}
