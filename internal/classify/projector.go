package classify

import "github.com/kyotei-ai/kyotei-cli/internal/model"

// topPredictions is how many lines each bucket shows.
const topPredictions = 3

// Projection is the display-ready slice of a full analysis.
type Projection struct {
	Strategy        string
	HonmeiTop3      []model.PredictionLine
	ChuuaneTop3     []model.PredictionLine
	Tickets         []model.Ticket
	TotalInvestment float64
}

// Project derives the projection for a ViewFullAnalysis state. Prediction
// buckets are truncated to their top three lines; tickets keep their
// original order, which encodes betting priority.
func Project(state model.ViewState) Projection {
	return Projection{
		Strategy:        state.Recommendations.Strategy,
		HonmeiTop3:      topN(state.Predictions.Honmei, topPredictions),
		ChuuaneTop3:     topN(state.Predictions.Chuuane, topPredictions),
		Tickets:         state.Recommendations.Tickets,
		TotalInvestment: state.Recommendations.TotalInvestment,
	}
}

func topN(lines []model.PredictionLine, n int) []model.PredictionLine {
	if len(lines) > n {
		lines = lines[:n]
	}
	out := make([]model.PredictionLine, len(lines))
	copy(out, lines)
	return out
}

// RiskLevel grades a race category for styling purposes.
type RiskLevel int

const (
	// RiskUnknown is the neutral grade for unrecognized categories.
	RiskUnknown RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
)

// CategoryBadge is the icon and risk grade shown next to a category.
// Known is false for category values the client does not recognize; those
// render without an icon rather than erroring.
type CategoryBadge struct {
	Icon  string
	Risk  RiskLevel
	Known bool
}

// BadgeFor maps a backend category to its presentation.
func BadgeFor(category string) CategoryBadge {
	switch category {
	case model.CategoryStable:
		return CategoryBadge{Icon: "🟢", Risk: RiskLow, Known: true}
	case model.CategoryMixed:
		return CategoryBadge{Icon: "🟡", Risk: RiskMedium, Known: true}
	case model.CategoryUpset:
		return CategoryBadge{Icon: "🔴", Risk: RiskHigh, Known: true}
	default:
		return CategoryBadge{}
	}
}
