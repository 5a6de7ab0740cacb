package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_StopTimer_NotStarted(t *testing.T) {
	t.Parallel()

	ev := Event{ID: "ev-1", Title: "Run"}
	_, err := ev.StopTimer(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))

	require.ErrorIs(t, err, ErrInvalidState)
	assert.Nil(t, ev.ActualEnd)
	assert.False(t, ev.Completed)
}

func TestEvent_StartStop_Scenario(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 6, 1, 7, 30, 0, 0, time.UTC)
	ev := Event{ID: "ev-1", Title: "Run"}

	started := ev.StartTimer(t0)
	assert.Equal(t, t0, started)
	assert.Nil(t, ev.ActualEnd)
	assert.False(t, ev.Completed)

	res, err := ev.StopTimer(t0.Add(45 * time.Second))
	require.NoError(t, err)

	assert.Equal(t, int64(45), res.DurationSeconds)
	assert.Equal(t, t0.Add(45*time.Second), res.ActualEnd)
	assert.False(t, res.WorldRecord)
	assert.True(t, ev.Completed)
}

func TestEvent_StartTimer_NormalizesToUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("MSK", 3*60*60)
	ev := Event{}
	got := ev.StartTimer(time.Date(2025, 6, 1, 10, 0, 0, 0, loc))

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 7, got.Hour())
}

func TestEvent_StartTimer_RestartOverwrites(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	end := t0.Add(time.Minute)
	ev := Event{ActualEnd: &end, Completed: true}

	ev.StartTimer(t0)
	ev.StartTimer(t0.Add(10 * time.Minute))

	require.NotNil(t, ev.ActualStart)
	assert.Equal(t, t0.Add(10*time.Minute), *ev.ActualStart)
	assert.Equal(t, end, *ev.ActualEnd, "restart must not touch the end")
	assert.True(t, ev.Completed, "restart must not touch completed")
}

func TestEvent_DurationSeconds(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := base.Add(d)
		return &ts
	}

	tests := []struct {
		name   string
		start  *time.Time
		end    *time.Time
		want   int64
		wantOK bool
	}{
		{name: "no timestamps"},
		{name: "start only", start: at(0)},
		{name: "end only", end: at(time.Minute)},
		{name: "zero length", start: at(0), end: at(0), want: 0, wantOK: true},
		{name: "whole seconds", start: at(0), end: at(90 * time.Second), want: 90, wantOK: true},
		{name: "rounds down", start: at(0), end: at(10*time.Second + 400*time.Millisecond), want: 10, wantOK: true},
		{name: "rounds up", start: at(0), end: at(10*time.Second + 600*time.Millisecond), want: 11, wantOK: true},
		{name: "inverted", start: at(time.Minute), end: at(0), want: -60, wantOK: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev := Event{ActualStart: tt.start, ActualEnd: tt.end}
			got, ok := ev.DurationSeconds()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_ApplyUpdate(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("accepts end before start", func(t *testing.T) {
		t.Parallel()
		ev := Event{ActualStart: &start}
		earlier := start.Add(-5 * time.Minute)

		view := ev.ApplyUpdate(TimingPatch{ActualEnd: &earlier, Completed: true})

		require.NotNil(t, view.DurationSeconds)
		assert.Equal(t, int64(-300), *view.DurationSeconds)
		assert.True(t, ev.InvertedRange())
		assert.True(t, ev.Completed)
	})

	t.Run("absent fields are kept", func(t *testing.T) {
		t.Parallel()
		notes := "cat jumped on the keyboard"
		end := start.Add(time.Hour)
		ev := Event{ActualStart: &start, ActualEnd: &end, Completed: true, Notes: &notes}

		view := ev.ApplyUpdate(TimingPatch{Completed: false})

		assert.Equal(t, start, *ev.ActualStart)
		assert.Equal(t, end, *ev.ActualEnd)
		assert.Equal(t, notes, *ev.Notes)
		assert.False(t, ev.Completed)
		require.NotNil(t, view.DurationSeconds)
		assert.Equal(t, int64(3600), *view.DurationSeconds)
	})

	t.Run("sets notes and start", func(t *testing.T) {
		t.Parallel()
		notes := "water spilled"
		ev := Event{}

		view := ev.ApplyUpdate(TimingPatch{ActualStart: &start, Notes: &notes, Completed: false})

		assert.Nil(t, view.DurationSeconds)
		require.NotNil(t, ev.Notes)
		assert.Equal(t, notes, *ev.Notes)
		assert.Equal(t, start, *ev.ActualStart)
	})
}
