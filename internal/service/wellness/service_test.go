package wellness

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/afyasync/afyasync/backend/internal/model/profile"
	"github.com/afyasync/afyasync/backend/internal/storage"
)

func TestMoodRoundTrip(t *testing.T) {
	svc := NewService(storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, svc.AddMood(ctx, "alice", profile.MoodEntry{Date: "2026-08-29", Mood: 6, Note: "okay day"}))
	require.NoError(t, svc.AddMood(ctx, "alice", profile.MoodEntry{Date: "2026-08-30", Mood: 8}))

	moods, err := svc.Moods(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, moods, 2)
	require.Equal(t, "okay day", moods[0].Note)
	require.Equal(t, 8, moods[1].Mood)
}

func TestMoodValidation(t *testing.T) {
	svc := NewService(storage.NewMemory())
	ctx := context.Background()

	require.ErrorIs(t, svc.AddMood(ctx, "alice", profile.MoodEntry{Mood: 0}), ErrInvalidMood)
	require.ErrorIs(t, svc.AddMood(ctx, "alice", profile.MoodEntry{Mood: 11}), ErrInvalidMood)
	require.ErrorIs(t, svc.AddMood(ctx, "", profile.MoodEntry{Mood: 5}), ErrIdentityRequired)
}

func TestJournalAddDelete(t *testing.T) {
	svc := NewService(storage.NewMemory())
	ctx := context.Background()

	first, err := svc.AddJournal(ctx, "alice", profile.JournalEntry{Content: "first", Date: "2026-08-29", CreatedAt: time.Now()})
	require.NoError(t, err)
	second, err := svc.AddJournal(ctx, "alice", profile.JournalEntry{Content: "second", Date: "2026-08-30", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	require.NoError(t, svc.DeleteJournal(ctx, "alice", first.ID))
	require.ErrorIs(t, svc.DeleteJournal(ctx, "alice", first.ID), ErrEntryNotFound)

	entries, err := svc.Journal(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "second", entries[0].Content)
}

func TestIdentityIsolation(t *testing.T) {
	svc := NewService(storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, svc.AddMood(ctx, "alice", profile.MoodEntry{Date: "2026-08-30", Mood: 3}))

	moods, err := svc.Moods(ctx, "bob")
	require.NoError(t, err)
	require.Empty(t, moods)
}

func TestHintsWindows(t *testing.T) {
	svc := NewService(storage.NewMemory())
	ctx := context.Background()

	require.Nil(t, svc.Hints(ctx, "alice"))

	for i := 0; i < 10; i++ {
		require.NoError(t, svc.AddMood(ctx, "alice", profile.MoodEntry{Date: fmt.Sprintf("2026-08-%02d", i+1), Mood: 5}))
	}
	for i := 0; i < 5; i++ {
		_, err := svc.AddJournal(ctx, "alice", profile.JournalEntry{Content: fmt.Sprintf("entry %d", i), Date: "2026-08-30"})
		require.NoError(t, err)
	}

	hints := svc.Hints(ctx, "alice")
	require.NotNil(t, hints)
	require.Len(t, hints.RecentMoods, hintMoodCount)
	require.Len(t, hints.RecentJournal, hintJournalCount)
	require.Equal(t, "2026-08-04", hints.RecentMoods[0].Date) // oldest excess dropped
	require.Equal(t, "entry 2", hints.RecentJournal[0].Content)
}

func TestClearRemovesRecords(t *testing.T) {
	svc := NewService(storage.NewMemory())
	ctx := context.Background()

	require.NoError(t, svc.AddMood(ctx, "alice", profile.MoodEntry{Date: "2026-08-30", Mood: 5}))
	_, err := svc.AddJournal(ctx, "alice", profile.JournalEntry{Content: "x", Date: "2026-08-30"})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "alice"))
	require.Nil(t, svc.Hints(ctx, "alice"))
}
