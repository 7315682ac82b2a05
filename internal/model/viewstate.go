package model

// ViewKind discriminates the presentation modes of an analysis session.
type ViewKind int

const (
	// ViewLoading is the initial state while the request is in flight.
	ViewLoading ViewKind = iota
	// ViewFailed means the request itself failed (transport or non-2xx).
	ViewFailed
	// ViewSkipRecommended means the backend advises not betting this race.
	ViewSkipRecommended
	// ViewDataInsufficient means scraped data was too incomplete to predict.
	ViewDataInsufficient
	// ViewFullAnalysis is the complete prediction view.
	ViewFullAnalysis
)

// String returns the view kind name for logging.
func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewFailed:
		return "failed"
	case ViewSkipRecommended:
		return "skip_recommended"
	case ViewDataInsufficient:
		return "data_insufficient"
	case ViewFullAnalysis:
		return "full_analysis"
	default:
		return "unknown"
	}
}

// ViewState is the single derived value that drives rendering. Exactly one
// kind is active per session; only the fields for that kind are meaningful.
// ViewStates are produced by the classifier and never persisted.
type ViewState struct {
	Kind ViewKind

	// Failed
	Reason string

	// SkipRecommended and FullAnalysis
	Stability     float64
	ExpectedValue float64

	// SkipRecommended
	SkipReasons []string

	// DataInsufficient
	Message      string
	QualityScore float64

	// FullAnalysis
	Venue           string
	RaceNumber      int
	Category        string
	Description     string
	Recommendations Recommendations
	Predictions     Predictions
	DataQuality     DataQuality
}

// Terminal reports whether the session has reached a final state. Loading is
// the only non-terminal kind; a session moves from it to exactly one
// terminal state and stays there until a new session starts.
func (v ViewState) Terminal() bool {
	return v.Kind != ViewLoading
}
