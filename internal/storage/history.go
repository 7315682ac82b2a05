package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kyotei-ai/kyotei-cli/internal/common"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

// SaveAnalysis records one analysis response. The full payload is stored as
// JSON so cached responses replay through the classifier unchanged.
func (s *Store) SaveAnalysis(ctx context.Context, resp *model.AnalysisResponse) error {
	if resp == nil {
		return fmt.Errorf("analysis response cannot be nil")
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	status := resp.Status
	if status == "" && resp.ShouldSkip {
		status = model.StatusSkip
	}
	if status == "" {
		status = model.StatusSuccess
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (prediction_id, venue, race_number, status, category, stability, expected_value, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		resp.PredictionID, resp.Venue, resp.RaceNumber, status,
		resp.Category, resp.Stability, resp.ExpectedValue, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// LatestAnalysis returns the most recently stored response for a race, or
// common.ErrNotFound when the race has never been analyzed.
func (s *Store) LatestAnalysis(ctx context.Context, venue string, raceNumber int) (*model.AnalysisResponse, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM analyses
		WHERE venue = ? AND race_number = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		venue, raceNumber).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no cached analysis for %s %dR: %w", venue, raceNumber, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cached analysis: %w", err)
	}

	var resp model.AnalysisResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse cached analysis: %w", err)
	}

	return &resp, nil
}

// SaveResult records a race outcome that was registered with the backend.
func (s *Store) SaveResult(ctx context.Context, report model.ResultReport) error {
	if report.PredictionID == "" {
		return fmt.Errorf("prediction id cannot be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (prediction_id, actual_result, actual_odds)
		VALUES (?, ?, ?)
		ON CONFLICT(prediction_id) DO UPDATE SET
			actual_result = excluded.actual_result,
			actual_odds = excluded.actual_odds,
			registered_at = CURRENT_TIMESTAMP`,
		report.PredictionID, report.ActualResult, report.ActualOdds)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// HistoryStats aggregates the locally recorded analyses.
type HistoryStats struct {
	CategoryDistribution map[string]int
	TotalAnalyses        int
	SkippedRaces         int
	InsufficientData     int
	SuccessfulAnalyses   int
	RegisteredResults    int
	AverageStability     float64
	FirstAnalysis        time.Time
	LastAnalysis         time.Time
}

// Stats computes aggregates over the local history.
func (s *Store) Stats(ctx context.Context) (*HistoryStats, error) {
	stats := &HistoryStats{CategoryDistribution: make(map[string]int)}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(CASE WHEN status = ? THEN stability END), 0)
		FROM analyses`,
		model.StatusSkip, model.StatusDataInsufficient, model.StatusSuccess, model.StatusSuccess).
		Scan(&stats.TotalAnalyses, &stats.SkippedRaces, &stats.InsufficientData,
			&stats.SuccessfulAnalyses, &stats.AverageStability)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate analyses: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM analyses
		WHERE status = ? AND category != ''
		GROUP BY category`, model.StatusSuccess)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		stats.CategoryDistribution[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category rows: %w", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM results`).Scan(&stats.RegisteredResults); err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}

	if stats.TotalAnalyses > 0 {
		// Aggregates lose the column's declared type, so the driver hands
		// back text here.
		var first, last sql.NullString
		err = s.db.QueryRowContext(ctx,
			`SELECT MIN(created_at), MAX(created_at) FROM analyses`).Scan(&first, &last)
		if err != nil {
			return nil, fmt.Errorf("failed to read analysis range: %w", err)
		}
		stats.FirstAnalysis = parseTimestamp(first.String)
		stats.LastAnalysis = parseTimestamp(last.String)
	}

	return stats, nil
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
