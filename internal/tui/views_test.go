package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/kyotei-ai/kyotei-cli/internal/model"
)

func analysisModel(state model.ViewState) Model {
	m := newModel(testConfig())
	m.phase = phaseAnalysis
	m.state = state
	return m
}

func TestViewVenuePickerListsVenues(t *testing.T) {
	out := newModel(testConfig()).View()

	assert.Contains(t, out, "会場を選択してください")
	assert.Contains(t, out, "桐生")
	assert.Contains(t, out, "大村")
}

func TestViewRacePickerShowsAllRaces(t *testing.T) {
	m := newModel(testConfig())
	m.phase = phaseRacePick

	out := m.View()

	assert.Contains(t, out, "1R")
	assert.Contains(t, out, "12R")
}

func TestViewLoading(t *testing.T) {
	out := analysisModel(model.ViewState{Kind: model.ViewLoading}).View()

	assert.Contains(t, out, "分析しています")
}

func TestViewFailedShowsReason(t *testing.T) {
	out := analysisModel(model.ViewState{
		Kind:   model.ViewFailed,
		Reason: "接続できませんでした",
	}).View()

	assert.Contains(t, out, "分析失敗")
	assert.Contains(t, out, "接続できませんでした")
}

func TestViewSkipShowsReasons(t *testing.T) {
	out := analysisModel(model.ViewState{
		Kind:          model.ViewSkipRecommended,
		Stability:     42,
		ExpectedValue: -8.5,
		SkipReasons:   []string{"展示タイム未確定", "気象条件が不安定"},
	}).View()

	assert.Contains(t, out, "見送り推奨")
	assert.Contains(t, out, "展示タイム未確定")
	assert.Contains(t, out, "気象条件が不安定")
	assert.Contains(t, out, "42%")
}

func TestViewInsufficientShowsQuality(t *testing.T) {
	out := analysisModel(model.ViewState{
		Kind:         model.ViewDataInsufficient,
		Message:      "情報不足のため精度が低下します",
		QualityScore: 0.4,
	}).View()

	assert.Contains(t, out, "情報不足")
	assert.Contains(t, out, "40%")
}

func TestViewFullAnalysisTruncatesPredictions(t *testing.T) {
	out := analysisModel(model.ViewState{
		Kind:        model.ViewFullAnalysis,
		Venue:       "住之江",
		RaceNumber:  7,
		Category:    model.CategoryStable,
		Description: "イン逃げ有力",
		Stability:   85,
		Predictions: model.Predictions{
			Honmei: []model.PredictionLine{
				{Boats: []int{1, 2, 3}, Confidence: 80},
				{Boats: []int{1, 3, 2}, Confidence: 70},
				{Boats: []int{1, 2, 4}, Confidence: 60},
				{Boats: []int{1, 4, 2}, Confidence: 50},
			},
		},
		Recommendations: model.Recommendations{
			Strategy:        "本命中心",
			Tickets:         []model.Ticket{{Type: "3連単", Combination: "1-2-3", Amount: 500}},
			TotalInvestment: 500,
		},
	}).View()

	assert.Contains(t, out, "🟢")
	assert.Contains(t, out, "イン逃げ有力")
	assert.Contains(t, out, "1-2-3")
	assert.Contains(t, out, "500円")
	assert.NotContains(t, out, "1-4-2")
}

func TestViewFullAnalysisUnknownCategoryHasNoIcon(t *testing.T) {
	out := analysisModel(model.ViewState{
		Kind:        model.ViewFullAnalysis,
		Venue:       "桐生",
		RaceNumber:  1,
		Category:    "chaos",
		Description: "判定不能",
	}).View()

	assert.Contains(t, out, "判定不能")
	assert.NotContains(t, out, "🟢")
	assert.NotContains(t, out, "🟡")
	assert.NotContains(t, out, "🔴")
}

func TestViewQuittingIsEmpty(t *testing.T) {
	m := newModel(testConfig())
	m.quitting = true

	assert.Empty(t, m.View())
}
