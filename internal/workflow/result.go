package workflow

import (
	"decision-platform/internal/analysis"
	"decision-platform/internal/extraction"
	"decision-platform/internal/intake"
	"decision-platform/internal/risk"
)

// Status is the presentation state derived from the workflow decision.
type Status string

const (
	StatusAnalyzing        Status = "analyzing"
	StatusAwaitingApproval Status = "awaiting-approval"
	StatusExecuting        Status = "executing"
	StatusBlocked          Status = "blocked"
	StatusFailed           Status = "failed"
)

// Execution would describe a performed action. The platform never executes
// actions, so the list is always empty; the field exists so consumers have a
// stable shape.
type Execution struct {
	ActionID string `json:"action_id"`
	Status   string `json:"status"`
}

// Request is one decision submission.
type Request struct {
	Text     string        `json:"text"`
	Source   intake.Source `json:"source"`
	UserID   string        `json:"user_id,omitempty"`
	UserName string        `json:"user_name,omitempty"`
}

// Result is the terminal artifact of one pipeline run. It is always fully
// populated; the failure path carries defaulted sub-structures.
type Result struct {
	DecisionID     string              `json:"decision_id"`
	Input          intake.Input        `json:"input"`
	Analysis       analysis.Analysis   `json:"analysis"`
	Actions        []extraction.Action `json:"actions"`
	RiskEvaluation risk.Evaluation     `json:"risk_evaluation"`
	Executions     []Execution         `json:"executions"`
	Status         Status              `json:"status"`
	Error          string              `json:"error,omitempty"`
}

// statusFor maps the routing verdict to the presentation status.
func statusFor(d risk.WorkflowDecision) Status {
	switch d {
	case risk.DecisionBlockExecution:
		return StatusBlocked
	case risk.DecisionRequireApproval:
		return StatusAwaitingApproval
	case risk.DecisionAskClarification:
		return StatusAnalyzing
	default:
		return StatusExecuting
	}
}
