package reporting

import (
	"context"
	"errors"

	"decision-platform/internal/decisions"
	"decision-platform/internal/risk"
	"decision-platform/internal/workflow"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// highRiskScore matches the risk engine's approval gate.
const highRiskScore = 80

// Service aggregates stored decision records into outcome summaries.
// It reads immutable records only; no writes.
type Service struct {
	repo decisions.Repository
}

func NewService(repo decisions.Repository) *Service { return &Service{repo: repo} }

func (s *Service) DecisionsSummary(ctx context.Context, req SummaryRequest) (Summary, error) {
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return Summary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return Summary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.List(ctx, req.Range.From, req.Range.To)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{ByDecisionType: map[string]int{}}
	totalRisk := 0
	for _, rec := range rows {
		out.TotalDecisions++
		totalRisk += rec.RiskScore
		if rec.RiskScore > out.MaxRiskScore {
			out.MaxRiskScore = rec.RiskScore
		}
		if rec.RiskScore >= highRiskScore {
			out.HighRiskCount++
		}
		out.ByDecisionType[rec.DecisionType]++

		if rec.Status == string(workflow.StatusFailed) {
			out.Failed++
			continue
		}
		switch risk.WorkflowDecision(rec.WorkflowDecision) {
		case risk.DecisionAutoContinue:
			out.AutoContinued++
		case risk.DecisionAskClarification:
			out.ClarificationAsks++
		case risk.DecisionRequireApproval:
			out.ApprovalsRequired++
		case risk.DecisionBlockExecution:
			out.Blocked++
		}
	}
	if out.TotalDecisions > 0 {
		out.AverageRiskScore = totalRisk / out.TotalDecisions
	}
	return out, nil
}
