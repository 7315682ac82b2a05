// Package classify turns raw analysis responses into render-ready view
// state. It is the only place allowed to decide which presentation mode a
// session shows.
package classify

import "github.com/kyotei-ai/kyotei-cli/internal/model"

// Fallback texts for responses missing their human-readable fields.
const (
	fallbackFailureReason      = "analysis failed"
	fallbackInsufficientDetail = "情報不足のため精度が低下します"
)

// Classify maps one analysis outcome to exactly one view state.
//
// Precedence is fixed: error, then pending, then skip, then insufficient
// data, then full analysis. A skip verdict always wins over the data-quality
// branch. Missing optional fields degrade to empty values; Classify never
// fails.
func Classify(resp *model.AnalysisResponse, err error) model.ViewState {
	if err != nil {
		reason := err.Error()
		if reason == "" {
			reason = fallbackFailureReason
		}
		return model.ViewState{Kind: model.ViewFailed, Reason: reason}
	}

	if resp == nil {
		return model.ViewState{Kind: model.ViewLoading}
	}

	if resp.ShouldSkip || resp.Status == model.StatusSkip {
		reasons := resp.SkipReasons
		if reasons == nil {
			reasons = []string{}
		}
		return model.ViewState{
			Kind:          model.ViewSkipRecommended,
			Stability:     resp.Stability,
			ExpectedValue: resp.ExpectedValue,
			SkipReasons:   reasons,
		}
	}

	if resp.Status == model.StatusDataInsufficient {
		message := resp.Message
		if message == "" {
			message = fallbackInsufficientDetail
		}
		return model.ViewState{
			Kind:         model.ViewDataInsufficient,
			Message:      message,
			QualityScore: resp.QualityScore,
		}
	}

	state := model.ViewState{
		Kind:          model.ViewFullAnalysis,
		Venue:         resp.Venue,
		RaceNumber:    resp.RaceNumber,
		Category:      resp.Category,
		Description:   resp.Description,
		Stability:     resp.Stability,
		ExpectedValue: resp.ExpectedValue,
	}
	if resp.Recommendations != nil {
		state.Recommendations = *resp.Recommendations
	}
	if resp.Predictions != nil {
		state.Predictions = *resp.Predictions
	}
	if resp.DataQuality != nil {
		state.DataQuality = *resp.DataQuality
	}
	return state
}
