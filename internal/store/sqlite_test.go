package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgenshkuropat/shiftmate-bot/internal/domain"
)

func TestSQLiteRepo_SnapshotRoundTrip(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	ctx := context.Background()
	repo, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "shiftmate.db"), loc)
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	monday := time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)
	event := time.Date(2025, time.July, 4, 14, 0, 0, 0, loc)

	anchors := map[int64]domain.Anchor{
		1: {Monday: monday, Type: domain.ShiftNight},
		2: {Monday: monday.AddDate(0, 0, 7), Type: domain.ShiftEarly},
	}
	reminders := map[int64][]*domain.Reminder{
		1: {
			{ChatID: 1, Title: "Checkup", EventAt: event, NotifyAt: event.Add(-time.Hour), Sent: false},
			{ChatID: 1, Title: "Workout", EventAt: event.AddDate(0, 0, 1), NotifyAt: event.AddDate(0, 0, 1), Sent: true},
		},
	}

	require.NoError(t, repo.SaveAll(ctx, anchors, reminders))

	gotAnchors, gotReminders, err := repo.LoadAll(ctx)
	require.NoError(t, err)

	require.Len(t, gotAnchors, 2)
	assert.True(t, gotAnchors[1].Monday.Equal(monday))
	assert.Equal(t, domain.ShiftNight, gotAnchors[1].Type)
	assert.Equal(t, domain.ShiftEarly, gotAnchors[2].Type)

	require.Len(t, gotReminders[1], 2)
	first := gotReminders[1][0]
	assert.Equal(t, "Checkup", first.Title)
	assert.True(t, first.EventAt.Equal(event))
	assert.True(t, first.NotifyAt.Equal(event.Add(-time.Hour)))
	assert.False(t, first.Sent)
	assert.True(t, gotReminders[1][1].Sent)
}

func TestSQLiteRepo_SaveReplacesEverything(t *testing.T) {
	loc := time.UTC
	ctx := context.Background()
	repo, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "shiftmate.db"), loc)
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	monday := time.Date(2024, time.January, 1, 0, 0, 0, 0, loc)

	require.NoError(t, repo.SaveAll(ctx,
		map[int64]domain.Anchor{1: {Monday: monday, Type: domain.ShiftDay}},
		map[int64][]*domain.Reminder{1: {{ChatID: 1, Title: "old", EventAt: monday, NotifyAt: monday}}},
	))

	// Second snapshot drops user 1 entirely.
	require.NoError(t, repo.SaveAll(ctx,
		map[int64]domain.Anchor{2: {Monday: monday, Type: domain.ShiftEarly}},
		map[int64][]*domain.Reminder{},
	))

	anchors, reminders, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, anchors, 1)
	_, ok := anchors[2]
	assert.True(t, ok)
	assert.Empty(t, reminders)
}

func TestSQLiteRepo_EmptyDatabase(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "shiftmate.db"), time.UTC)
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	anchors, reminders, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, anchors)
	assert.Empty(t, reminders)
}
