// Package model defines the domain types shared across the application.
package model

// Response status values emitted by the v5 analysis backend.
const (
	StatusSuccess          = "success"
	StatusSkip             = "skip"
	StatusDataInsufficient = "data_insufficient"
	StatusError            = "error"
)

// Race categories assigned by the backend classifier.
const (
	CategoryStable = "stable"
	CategoryMixed  = "mixed"
	CategoryUpset  = "upset"
)

// AnalysisResponse is the body returned by POST /api/v5/analyze.
// The backend omits most fields outside its own branch (skip responses carry
// no predictions, quality failures carry no recommendations), so everything
// nested is optional and nil-tolerant.
type AnalysisResponse struct {
	Status          string           `json:"status,omitempty"`
	PredictionID    string           `json:"prediction_id,omitempty"`
	Venue           string           `json:"venue,omitempty"`
	RaceNumber      int              `json:"race_number,omitempty"`
	Date            string           `json:"date,omitempty"`
	ShouldSkip      bool             `json:"should_skip,omitempty"`
	SkipReasons     []string         `json:"skip_reasons,omitempty"`
	Message         string           `json:"message,omitempty"`
	QualityScore    float64          `json:"quality_score,omitempty"`
	Stability       float64          `json:"stability,omitempty"`
	ExpectedValue   float64          `json:"expected_value,omitempty"`
	Category        string           `json:"category,omitempty"`
	Description     string           `json:"description,omitempty"`
	Recommendation  string           `json:"recommendation,omitempty"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
	Predictions     *Predictions     `json:"predictions,omitempty"`
	DataQuality     *DataQuality     `json:"data_quality,omitempty"`
	DemoMode        bool             `json:"demo_mode,omitempty"`
	Timestamp       string           `json:"timestamp,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// Recommendations holds the optimizer's ticket plan for one race.
type Recommendations struct {
	Strategy        string   `json:"strategy"`
	Tickets         []Ticket `json:"tickets"`
	TotalInvestment float64  `json:"total_investment"`
	Explanation     []string `json:"explanation,omitempty"`
}

// Ticket is a single recommended bet. Order within a plan is betting
// priority and must be preserved.
type Ticket struct {
	Combination string  `json:"combination"`
	Type        string  `json:"type"`
	Amount      int     `json:"amount"`
	Odds        float64 `json:"odds"`
	Purpose     string  `json:"purpose,omitempty"`
}

// Predictions groups the three prediction buckets. Honmei prioritizes hit
// rate, chuuane targets 10-50x payouts, ooane is the longshot bucket.
type Predictions struct {
	Honmei  []PredictionLine `json:"honmei"`
	Chuuane []PredictionLine `json:"chuuane"`
	Ooane   []PredictionLine `json:"ooane,omitempty"`
}

// PredictionLine is one predicted finishing order with its confidence.
type PredictionLine struct {
	Boats      []int   `json:"boats"`
	Score      float64 `json:"score,omitempty"`
	Confidence float64 `json:"confidence"`
}

// DataQuality reports how complete the scraped race data was.
type DataQuality struct {
	Checks  []string `json:"checks,omitempty"`
	Score   float64  `json:"score"`
	Missing []string `json:"missing_critical,omitempty"`
}

// ServiceInfo is the liveness payload from GET /.
type ServiceInfo struct {
	Status       string   `json:"status"`
	Service      string   `json:"service"`
	Version      string   `json:"version"`
	Features     []string `json:"features,omitempty"`
	ModelsLoaded bool     `json:"models_loaded"`
}

// ServiceStats is the aggregate from GET /api/v5/stats.
type ServiceStats struct {
	TotalPredictions      int            `json:"total_predictions"`
	DemoModePredictions   int            `json:"demo_mode_predictions"`
	SkippedRaces          int            `json:"skipped_races"`
	SuccessfulPredictions int            `json:"successful_predictions"`
	AverageStability      float64        `json:"average_stability"`
	CategoryDistribution  map[string]int `json:"category_distribution"`
}

// ResultReport registers an actual race outcome against a prediction.
type ResultReport struct {
	PredictionID string  `json:"prediction_id"`
	ActualResult string  `json:"actual_result"`
	ActualOdds   float64 `json:"actual_odds"`
}

// ResultAck acknowledges a registered result.
type ResultAck struct {
	Success      bool   `json:"success"`
	PredictionID string `json:"prediction_id"`
}
