package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/da11an/repo-query-surface/internal/errors"
	"github.com/da11an/repo-query-surface/internal/insights"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveAndLoadRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	runs := []Run{
		{RunID: "r1", Timestamp: base, Language: "python", FileCount: 10, EdgeCount: 12, CycleCount: 1, MaxLayer: 3, ScoreMean: 2.5, ScoreMax: 9},
		{RunID: "r2", Timestamp: base.Add(time.Hour), Language: "python", FileCount: 11, EdgeCount: 14, CycleCount: 0, MaxLayer: 4, ScoreMean: 2.75, ScoreMax: 10},
		{RunID: "r3", Timestamp: base.Add(2 * time.Hour), Language: "python", FileCount: 11, EdgeCount: 15, CycleCount: 2, MaxLayer: 4, ScoreMean: 3, ScoreMax: 11},
	}
	for _, run := range runs {
		require.NoError(t, store.SaveRun(run))
	}

	got, err := store.LoadRuns(0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "r1", got[0].RunID)
	assert.Equal(t, "r3", got[2].RunID)
	assert.Equal(t, 2.75, got[1].ScoreMean)
	assert.Equal(t, base.Add(time.Hour), got[1].Timestamp)

	latest, err := store.LoadRuns(2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "r2", latest[0].RunID)
	assert.Equal(t, "r3", latest[1].RunID)
}

func TestStore_UpsertByRunID(t *testing.T) {
	store := openTestStore(t)
	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(Run{RunID: "r1", Timestamp: ts, FileCount: 5}))
	require.NoError(t, store.SaveRun(Run{RunID: "r1", Timestamp: ts, FileCount: 8}))

	got, err := store.LoadRuns(0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 8, got[0].FileCount)
}

func TestStore_RejectsBadPaths(t *testing.T) {
	_, err := Open("")
	assert.True(t, errors.IsCode(err, errors.CodeHistoryIO))

	_, err = Open(t.TempDir())
	assert.True(t, errors.IsCode(err, errors.CodeHistoryIO))
}

func TestDeltas(t *testing.T) {
	runs := []Run{
		{RunID: "r1", FileCount: 10, EdgeCount: 12, CycleCount: 1, MaxLayer: 3, ScoreMean: 2},
		{RunID: "r2", FileCount: 12, EdgeCount: 11, CycleCount: 0, MaxLayer: 4, ScoreMean: 2.5},
	}

	points := Deltas(runs)
	require.Len(t, points, 2)
	assert.Zero(t, points[0].DeltaFiles)
	assert.Equal(t, 2, points[1].DeltaFiles)
	assert.Equal(t, -1, points[1].DeltaEdges)
	assert.Equal(t, -1, points[1].DeltaCycles)
	assert.Equal(t, 1, points[1].DeltaMaxLayer)
	assert.Equal(t, 0.5, points[1].DeltaScore)
}

func TestFromReport(t *testing.T) {
	rep := &insights.Report{
		RunID:          "r9",
		GeneratedAt:    time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		Language:       "rust",
		FileCount:      7,
		EdgeCount:      9,
		ComponentCount: 6,
		CycleCount:     1,
		MaxLayer:       2,
		ScoreMean:      1.5,
		ScoreMax:       4,
	}

	run := FromReport(rep)
	assert.Equal(t, "r9", run.RunID)
	assert.Equal(t, rep.GeneratedAt, run.Timestamp)
	assert.Equal(t, "rust", run.Language)
	assert.Equal(t, 9, run.EdgeCount)
	assert.Equal(t, 1.5, run.ScoreMean)
}
