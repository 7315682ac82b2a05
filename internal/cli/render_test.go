package cli

import (
	"testing"

	"github.com/kyotei-ai/kyotei-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderViewState_EveryKindRenders(t *testing.T) {
	states := []model.ViewState{
		{Kind: model.ViewLoading},
		{Kind: model.ViewFailed, Reason: "connection refused"},
		{Kind: model.ViewSkipRecommended, Stability: 40, ExpectedValue: -5, SkipReasons: []string{"期待値マイナス"}},
		{Kind: model.ViewDataInsufficient, Message: "too few races", QualityScore: 0.3},
		{Kind: model.ViewFullAnalysis, Venue: "大村", RaceNumber: 12, Category: model.CategoryStable},
	}

	for _, state := range states {
		t.Run(state.Kind.String(), func(t *testing.T) {
			out := RenderViewState(state)
			assert.NotEmpty(t, out)
		})
	}
}

func TestRenderViewState_FailedShowsReason(t *testing.T) {
	out := RenderViewState(model.ViewState{Kind: model.ViewFailed, Reason: "connection refused"})
	assert.Contains(t, out, "connection refused")
}

func TestRenderViewState_SkipShowsReasons(t *testing.T) {
	out := RenderViewState(model.ViewState{
		Kind:        model.ViewSkipRecommended,
		Stability:   40,
		SkipReasons: []string{"not enough starters"},
	})
	assert.Contains(t, out, "not enough starters")
	assert.Contains(t, out, "見送り")
}

func TestRenderViewState_FullAnalysisShowsTicketsInOrder(t *testing.T) {
	out := RenderViewState(model.ViewState{
		Kind:       model.ViewFullAnalysis,
		Venue:      "大村",
		RaceNumber: 12,
		Category:   model.CategoryMixed,
		Recommendations: model.Recommendations{
			Tickets: []model.Ticket{
				{Combination: "3-1-2", Type: "三連単", Amount: 800},
				{Combination: "4-6", Type: "二連単", Amount: 120},
			},
			TotalInvestment: 920,
		},
	})

	first := "3-1-2"
	second := "4-6"
	posFirst := indexOf(t, out, first)
	posSecond := indexOf(t, out, second)
	assert.Less(t, posFirst, posSecond, "ticket order not preserved")
}

func TestRenderViewState_UnknownCategoryStillRenders(t *testing.T) {
	out := RenderViewState(model.ViewState{
		Kind:        model.ViewFullAnalysis,
		Venue:       "大村",
		RaceNumber:  1,
		Category:    "volatile",
		Description: "unknown kind of race",
	})

	require.NotEmpty(t, out)
	assert.Contains(t, out, "unknown kind of race")
	assert.NotContains(t, out, "🟢")
	assert.NotContains(t, out, "🟡")
	assert.NotContains(t, out, "🔴")
}

func TestFormatBoats(t *testing.T) {
	assert.Equal(t, "1-2-3", FormatBoats([]int{1, 2, 3}))
	assert.Equal(t, "6-5", FormatBoats([]int{6, 5}))
	assert.Equal(t, "", FormatBoats(nil))
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	idx := -1
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			idx = i
			break
		}
	}
	require.GreaterOrEqual(t, idx, 0, "%q not found in output", needle)
	return idx
}
