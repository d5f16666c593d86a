package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"decision-platform/internal/analysis"
	"decision-platform/internal/audit"
	"decision-platform/internal/extraction"
	"decision-platform/internal/intake"
	"decision-platform/internal/risk"
	"decision-platform/pkg/logger"

	"github.com/google/uuid"
)

// Engine runs the four-stage pipeline: intake, analysis, action extraction,
// and risk evaluation. One Run is synchronous and independent; no state is
// retained between calls.
//
// Audit logging is best-effort: append failures are logged and ignored.
type Engine struct {
	intake    *intake.Intake
	analyzer  *analysis.Analyzer
	extractor *extraction.Extractor
	evaluator *risk.Evaluator
	audit     *audit.Service

	clock func() time.Time
	newID func() string
}

// Deps wires the engine. Audit may be nil to disable audit logging.
type Deps struct {
	Intake    *intake.Intake
	Analyzer  *analysis.Analyzer
	Extractor *extraction.Extractor
	Evaluator *risk.Evaluator
	Audit     *audit.Service

	// Clock and NewID are injectable for deterministic tests.
	Clock func() time.Time
	NewID func() string
}

func NewEngine(d Deps) (*Engine, error) {
	if d.Intake == nil || d.Analyzer == nil || d.Extractor == nil || d.Evaluator == nil {
		return nil, errors.New("workflow: intake, analyzer, extractor, and evaluator are required")
	}
	e := &Engine{
		intake:    d.Intake,
		analyzer:  d.Analyzer,
		extractor: d.Extractor,
		evaluator: d.Evaluator,
		audit:     d.Audit,
		clock:     d.Clock,
		newID:     d.NewID,
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e, nil
}

// Run executes the full pipeline for one submission.
//
// The only failure the pipeline itself raises is intake validation; it is
// converted into a terminal failed Result rather than an error. The pipeline
// never partially completes.
func (e *Engine) Run(ctx context.Context, req Request) Result {
	input, err := e.intake.Take(req.Text, req.Source, req.UserID, req.UserName)
	if err != nil {
		return e.failedResult(ctx, req, err)
	}

	decisionID := input.Metadata.SessionID
	if decisionID == "" {
		decisionID = e.newID()
	}

	e.logStage(ctx, decisionID, audit.EventTypeIntake, req.UserID, "decision accepted",
		map[string]any{"text_length": len(input.Text), "source": input.Metadata.Source})

	a := e.analyzer.Analyze(input.Text)
	e.logStage(ctx, decisionID, audit.EventTypeAnalysis, req.UserID, "decision analyzed",
		map[string]any{"decision_type": a.DecisionType, "impact_level": a.ImpactLevel, "urgency": a.Urgency, "confidence": a.Confidence})

	actions := e.extractor.Extract(input.Text)
	e.logStage(ctx, decisionID, audit.EventTypeExtraction, req.UserID, "actions extracted",
		map[string]any{"action_count": len(actions)})

	evaluation := e.evaluator.Evaluate(actions, a)
	e.logStage(ctx, decisionID, audit.EventTypeRisk, req.UserID, "risk evaluated",
		map[string]any{"risk_score": evaluation.RiskScore, "workflow_decision": evaluation.WorkflowDecision})

	status := statusFor(evaluation.WorkflowDecision)
	e.logStage(ctx, decisionID, audit.EventTypeCompleted, req.UserID, "workflow completed",
		map[string]any{"status": status})

	return Result{
		DecisionID:     decisionID,
		Input:          input,
		Analysis:       a,
		Actions:        actions,
		RiskEvaluation: evaluation,
		Executions:     []Execution{},
		Status:         status,
	}
}

// failedResult builds the fully populated terminal result for a rejected
// submission: defaulted analysis and a zeroed, blocking risk evaluation.
func (e *Engine) failedResult(ctx context.Context, req Request, cause error) Result {
	decisionID := e.newID()

	e.logStage(ctx, decisionID, audit.EventTypeFailed, req.UserID, "workflow failed",
		map[string]any{"error": cause.Error()})

	return Result{
		DecisionID: decisionID,
		Input: intake.Input{
			Text: req.Text,
			Metadata: intake.Metadata{
				Source:    req.Source,
				Timestamp: e.clock().UTC().Format(time.RFC3339),
			},
		},
		Analysis: analysis.Analysis{
			DecisionType:  analysis.TypeBusiness,
			ImpactLevel:   analysis.ImpactLow,
			Urgency:       analysis.UrgencyLow,
			Reversibility: analysis.Reversible,
			Confidence:    0,
			Reasoning:     []string{},
		},
		Actions: []extraction.Action{},
		RiskEvaluation: risk.Evaluation{
			EnvironmentRisk:    risk.EnvLocal,
			TimeRisk:           risk.TimeNormalHours,
			BlastRadius:        0,
			MissingInformation: []string{},
			RiskScore:          0,
			WorkflowDecision:   risk.DecisionBlockExecution,
			Guardrails:         []string{},
		},
		Executions: []Execution{},
		Status:     StatusFailed,
		Error:      cause.Error(),
	}
}

func (e *Engine) logStage(ctx context.Context, decisionID string, stage audit.EventType, userID, message string, data map[string]any) {
	if e.audit == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		raw = []byte("{}")
	}
	if err := e.audit.LogStage(ctx, decisionID, stage, userID, message, string(raw)); err != nil {
		logger.From(ctx).Warn("audit append failed", "stage", stage, "decision_id", decisionID, "err", err)
	}
}
