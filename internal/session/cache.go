package session

import (
	"context"
	"errors"

	"github.com/kyotei-ai/kyotei-cli/internal/api"
	"github.com/kyotei-ai/kyotei-cli/internal/common"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

// AnalysisCache stores and recalls analysis responses per race.
type AnalysisCache interface {
	SaveAnalysis(ctx context.Context, resp *model.AnalysisResponse) error
	LatestAnalysis(ctx context.Context, venue string, raceNumber int) (*model.AnalysisResponse, error)
}

// CachedAnalyzer is a network-first analyzer: a successful response is
// written through to the cache, and a transport failure falls back to the
// most recent cached analysis for the same race. Backend verdicts (skip,
// data_insufficient, non-2xx) are served as-is; only unreachable-backend
// errors trigger the fallback.
type CachedAnalyzer struct {
	Analyzer Analyzer
	Cache    AnalysisCache
}

// Analyze implements Analyzer.
func (c *CachedAnalyzer) Analyze(ctx context.Context, venue string, raceNumber int) (*model.AnalysisResponse, error) {
	resp, err := c.Analyzer.Analyze(ctx, venue, raceNumber)
	if err == nil {
		if saveErr := c.Cache.SaveAnalysis(ctx, resp); saveErr != nil {
			common.LogError(saveErr, "failed to cache analysis",
				common.Fields{"venue": venue, "race": raceNumber})
		}
		return resp, nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		// The backend answered; its verdict stands.
		return nil, err
	}

	cached, cacheErr := c.Cache.LatestAnalysis(ctx, venue, raceNumber)
	if cacheErr != nil {
		return nil, err
	}

	common.LogInfo("backend unreachable, serving cached analysis",
		common.Fields{"venue": venue, "race": raceNumber, "error": err.Error()})
	return cached, nil
}
