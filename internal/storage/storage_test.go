package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDriver(t *testing.T) {
	cases := map[string]string{
		"":           DriverPostgres,
		"Postgres":   DriverPostgres,
		"postgresql": DriverPostgres,
		"pgx":        DriverPostgres,
		"sqlite":     DriverSQLite,
		" SQLite3 ":  DriverSQLite,
	}
	for in, want := range cases {
		got, err := NormalizeDriver(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := NormalizeDriver("mongo")
	assert.Error(t, err)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "app.db")}, zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, DriverSQLite, b.Driver)
	assert.NotNil(t, b.Events)
	assert.NotNil(t, b.Users)
	assert.NoError(t, b.Ping(ctx))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "bolt"}, zerolog.Nop())
	assert.Error(t, err)
}
