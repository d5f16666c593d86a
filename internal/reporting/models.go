package reporting

import "time"

// TimeRange bounds a summary query. From is inclusive, To exclusive.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SummaryRequest asks for aggregated decision outcomes.
type SummaryRequest struct {
	Range TimeRange `json:"range"`
}

// Summary aggregates stored decision records.
type Summary struct {
	TotalDecisions int `json:"total_decisions"`

	AutoContinued     int `json:"auto_continued"`
	ClarificationAsks int `json:"clarification_asks"`
	ApprovalsRequired int `json:"approvals_required"`
	Blocked           int `json:"blocked"`
	Failed            int `json:"failed"`

	ByDecisionType map[string]int `json:"by_decision_type"`

	AverageRiskScore int `json:"average_risk_score"`
	MaxRiskScore     int `json:"max_risk_score"`
	HighRiskCount    int `json:"high_risk_count"`
}
