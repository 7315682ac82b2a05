package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kyotei-ai/kyotei-cli/internal/common"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_AppliesMigrations(t *testing.T) {
	store := newTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, expectedSchemaVersion, version)
}

func TestOpen_Reopenable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening an already-migrated database must be a no-op.
	store, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestSaveAnalysis_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	resp := &model.AnalysisResponse{
		Status:        model.StatusSuccess,
		PredictionID:  "pred_20260824_101530",
		Venue:         "大村",
		RaceNumber:    12,
		Category:      model.CategoryStable,
		Stability:     80,
		ExpectedValue: 12.5,
		Predictions: &model.Predictions{
			Honmei: []model.PredictionLine{{Boats: []int{1, 2, 3}, Confidence: 78}},
		},
		Recommendations: &model.Recommendations{
			Strategy: "安定レース: 本命1点 + 保険",
			Tickets:  []model.Ticket{{Combination: "1-2-3", Type: "三連単", Amount: 2500, Odds: 6.8}},
		},
	}

	require.NoError(t, store.SaveAnalysis(ctx, resp))

	got, err := store.LatestAnalysis(ctx, "大村", 12)
	require.NoError(t, err)
	assert.Equal(t, resp, got)
}

func TestLatestAnalysis_ReturnsNewest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAnalysis(ctx, &model.AnalysisResponse{
		Venue: "大村", RaceNumber: 12, Status: model.StatusDataInsufficient,
	}))
	require.NoError(t, store.SaveAnalysis(ctx, &model.AnalysisResponse{
		Venue: "大村", RaceNumber: 12, Status: model.StatusSuccess, Category: model.CategoryMixed,
	}))

	got, err := store.LatestAnalysis(ctx, "大村", 12)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, got.Status)
	assert.Equal(t, model.CategoryMixed, got.Category)
}

func TestLatestAnalysis_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LatestAnalysis(context.Background(), "桐生", 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLatestAnalysis_ScopedToRace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAnalysis(ctx, &model.AnalysisResponse{
		Venue: "大村", RaceNumber: 11, Status: model.StatusSuccess,
	}))

	_, err := store.LatestAnalysis(ctx, "大村", 12)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveAnalysis_InfersStatusFromSkipFlag(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAnalysis(ctx, &model.AnalysisResponse{
		Venue: "戸田", RaceNumber: 3, ShouldSkip: true,
	}))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.SkippedRaces)
}

func TestSaveResult_Upserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := model.ResultReport{PredictionID: "pred_1", ActualResult: "1-2-3", ActualOdds: 6.8}
	require.NoError(t, store.SaveResult(ctx, report))

	report.ActualOdds = 7.2
	require.NoError(t, store.SaveResult(ctx, report))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RegisteredResults)
}

func TestStats_Aggregates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	responses := []*model.AnalysisResponse{
		{Venue: "大村", RaceNumber: 1, Status: model.StatusSuccess, Category: model.CategoryStable, Stability: 80},
		{Venue: "大村", RaceNumber: 2, Status: model.StatusSuccess, Category: model.CategoryStable, Stability: 70},
		{Venue: "大村", RaceNumber: 3, Status: model.StatusSuccess, Category: model.CategoryUpset, Stability: 20},
		{Venue: "大村", RaceNumber: 4, Status: model.StatusSkip, ShouldSkip: true},
		{Venue: "大村", RaceNumber: 5, Status: model.StatusDataInsufficient},
	}
	for _, resp := range responses {
		require.NoError(t, store.SaveAnalysis(ctx, resp))
	}

	stats, err := store.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalAnalyses)
	assert.Equal(t, 3, stats.SuccessfulAnalyses)
	assert.Equal(t, 1, stats.SkippedRaces)
	assert.Equal(t, 1, stats.InsufficientData)
	assert.InDelta(t, (80.0+70.0+20.0)/3.0, stats.AverageStability, 0.001)
	assert.Equal(t, 2, stats.CategoryDistribution[model.CategoryStable])
	assert.Equal(t, 1, stats.CategoryDistribution[model.CategoryUpset])
	assert.False(t, stats.FirstAnalysis.IsZero())
	assert.False(t, stats.LastAnalysis.IsZero())
}

func TestStats_EmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalAnalyses)
	assert.Zero(t, stats.AverageStability)
	assert.Empty(t, stats.CategoryDistribution)
	assert.True(t, stats.FirstAnalysis.IsZero())
}
