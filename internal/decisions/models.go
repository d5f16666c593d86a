package decisions

import "time"

// Record is the stored summary of one completed pipeline run.
// Records are write-once; reporting reads them in aggregate.
type Record struct {
	DecisionID       string    `json:"decision_id" db:"decision_id"`
	UserID           string    `json:"user_id,omitempty" db:"user_id"`
	Source           string    `json:"source" db:"source"`
	DecisionType     string    `json:"decision_type" db:"decision_type"`
	ImpactLevel      string    `json:"impact_level" db:"impact_level"`
	RiskScore        int       `json:"risk_score" db:"risk_score"`
	WorkflowDecision string    `json:"workflow_decision" db:"workflow_decision"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}
