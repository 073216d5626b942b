package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomo/internal/modules/history/adapter/out"
	"pomo/internal/modules/history/domain"
)

func TestSQLiteStoreAppendAndQuery(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteIntervalStore(filepath.Join(t.TempDir(), "data", "pomo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i, interval := range []domain.Interval{
		{ID: "a", Mode: domain.ModeWork, PlannedSeconds: 1500, Outcome: domain.OutcomeCompleted, EndedAt: base, CompletedWorkCycles: 1},
		{ID: "b", Mode: domain.ModeShortBreak, PlannedSeconds: 300, Outcome: domain.OutcomeSkipped, EndedAt: base.Add(10 * time.Minute), CompletedWorkCycles: 1},
		{ID: "c", Mode: domain.ModeWork, PlannedSeconds: 1500, Outcome: domain.OutcomeCompleted, EndedAt: base.Add(24 * time.Hour), CompletedWorkCycles: 2},
	} {
		require.NoError(t, store.Append(ctx, interval), "append %d", i)
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.Equal(t, domain.OutcomeSkipped, recent[1].Outcome)
	assert.True(t, recent[1].EndedAt.Equal(base.Add(10*time.Minute)))

	day, err := store.Between(ctx, base.Truncate(24*time.Hour), base.Truncate(24*time.Hour).Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "a", day[0].ID)
	assert.Equal(t, 1, day[0].CompletedWorkCycles)
}

func TestSQLiteStoreRejectsDuplicateID(t *testing.T) {
	t.Parallel()
	store, err := out.NewSQLiteIntervalStore(filepath.Join(t.TempDir(), "pomo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	interval := domain.Interval{ID: "dup", Mode: domain.ModeWork, PlannedSeconds: 60, Outcome: domain.OutcomeCompleted, EndedAt: time.Now()}
	require.NoError(t, store.Append(context.Background(), interval))
	require.Error(t, store.Append(context.Background(), interval))
}
