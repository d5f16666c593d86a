package risk

import (
	"fmt"
	"strings"
	"time"

	"decision-platform/internal/analysis"
	"decision-platform/internal/extraction"
)

// EnvironmentRisk grades where the described actions would land.
type EnvironmentRisk string

const (
	EnvProd    EnvironmentRisk = "prod"
	EnvStaging EnvironmentRisk = "staging"
	EnvDev     EnvironmentRisk = "dev"
	EnvLocal   EnvironmentRisk = "local"
)

// TimeRisk grades when the evaluation happens.
// TimeHoliday is a recognized state but the current rule never produces it.
type TimeRisk string

const (
	TimeNormalHours TimeRisk = "normal-hours"
	TimeAfterHours  TimeRisk = "after-hours"
	TimeWeekend     TimeRisk = "weekend"
	TimeHoliday     TimeRisk = "holiday"
)

// WorkflowDecision is the routing verdict for one decision.
type WorkflowDecision string

const (
	DecisionAutoContinue     WorkflowDecision = "auto-continue"
	DecisionAskClarification WorkflowDecision = "ask-clarification"
	DecisionRequireApproval  WorkflowDecision = "require-approval"
	DecisionBlockExecution   WorkflowDecision = "block-execution"
)

// Evaluation is the risk report for one decision.
// Derived once from the analysis and actions; never mutated.
type Evaluation struct {
	EnvironmentRisk    EnvironmentRisk  `json:"environment_risk"`
	TimeRisk           TimeRisk         `json:"time_risk"`
	BlastRadius        int              `json:"blast_radius"`
	MissingInformation []string         `json:"missing_information"`
	RiskScore          int              `json:"risk_score"`
	WorkflowDecision   WorkflowDecision `json:"workflow_decision"`
	Guardrails         []string         `json:"guardrails"`
}

// Thresholds gate the workflow decision.
type Thresholds struct {
	High   int
	Medium int
}

// DefaultThresholds returns the built-in risk gates.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 80, Medium: 60}
}

const (
	businessHoursStart = 9
	businessHoursEnd   = 17
)

// Evaluator derives risk and the workflow routing verdict.
// Evaluate is pure apart from the injected clock read for time risk.
type Evaluator struct {
	thresholds Thresholds
	clock      func() time.Time
}

type Option func(*Evaluator)

// WithThresholds overrides the risk gates.
func WithThresholds(t Thresholds) Option {
	return func(e *Evaluator) {
		if t.High > 0 && t.Medium > 0 {
			e.thresholds = t
		}
	}
}

// WithClock overrides the time-risk clock.
func WithClock(clock func() time.Time) Option {
	return func(e *Evaluator) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		thresholds: DefaultThresholds(),
		clock:      time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate computes the full risk report and routing verdict.
func (e *Evaluator) Evaluate(actions []extraction.Action, a analysis.Analysis) Evaluation {
	environmentRisk := detectEnvironmentRisk(actions)
	timeRisk := e.detectTimeRisk()
	blastRadius := blastRadius(actions, a, environmentRisk)
	missing := missingInformation(actions, a)

	riskScore := blastRadius
	if environmentRisk == EnvProd {
		riskScore += 20
	}
	if timeRisk == TimeAfterHours || timeRisk == TimeWeekend {
		riskScore += 10
	}
	if a.Reversibility == analysis.Irreversible {
		riskScore += 15
	}
	if riskScore > 100 {
		riskScore = 100
	}

	return Evaluation{
		EnvironmentRisk:    environmentRisk,
		TimeRisk:           timeRisk,
		BlastRadius:        blastRadius,
		MissingInformation: missing,
		RiskScore:          riskScore,
		WorkflowDecision:   e.decide(riskScore, missing, a, environmentRisk),
		Guardrails:         e.guardrails(riskScore, environmentRisk, timeRisk, a),
	}
}

// detectEnvironmentRisk scans the combined action+target text in priority
// order prod > staging > dev > local.
func detectEnvironmentRisk(actions []extraction.Action) EnvironmentRisk {
	var b strings.Builder
	for _, a := range actions {
		b.WriteString(a.Action)
		b.WriteString(" ")
		b.WriteString(a.Target)
		b.WriteString(" ")
	}
	text := strings.ToLower(b.String())

	switch {
	case strings.Contains(text, "production") || strings.Contains(text, "prod"):
		return EnvProd
	case strings.Contains(text, "staging"):
		return EnvStaging
	case strings.Contains(text, "dev") || strings.Contains(text, "development"):
		return EnvDev
	default:
		return EnvLocal
	}
}

func (e *Evaluator) detectTimeRisk() TimeRisk {
	now := e.clock()
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return TimeWeekend
	}
	if hour := now.Hour(); hour < businessHoursStart || hour > businessHoursEnd {
		return TimeAfterHours
	}
	return TimeNormalHours
}

func blastRadius(actions []extraction.Action, a analysis.Analysis, env EnvironmentRisk) int {
	radius := 0

	switch a.ImpactLevel {
	case analysis.ImpactHigh:
		radius += 40
	case analysis.ImpactMedium:
		radius += 20
	default:
		radius += 10
	}

	if env == EnvProd {
		radius += 30
	}

	switch a.Reversibility {
	case analysis.Irreversible:
		radius += 20
	case analysis.PartiallyReversible:
		radius += 10
	}

	if spread := len(actions) * 5; spread < 20 {
		radius += spread
	} else {
		radius += 20
	}

	if radius > 100 {
		radius = 100
	}
	return radius
}

// missingInformation flags per-action gaps, then the aggregate
// irreversible+high-impact check. Order follows the action list.
func missingInformation(actions []extraction.Action, a analysis.Analysis) []string {
	var missing []string

	for _, act := range actions {
		if act.Target == "" && detectEnvironmentRisk([]extraction.Action{act}) == EnvProd {
			missing = append(missing, fmt.Sprintf("Target environment not specified for action: %s", act.Action))
		}
		if act.Timeframe == "" && a.Urgency == analysis.UrgencyHigh {
			missing = append(missing, fmt.Sprintf("Timeframe not specified for urgent action: %s", act.Action))
		}
		if act.Confidence < 70 {
			missing = append(missing, fmt.Sprintf("Low confidence action needs clarification: %s", act.Action))
		}
	}

	if a.Reversibility == analysis.Irreversible && a.ImpactLevel == analysis.ImpactHigh {
		missing = append(missing, "High-impact irreversible action requires explicit confirmation")
	}

	return missing
}

// decide resolves the routing verdict. Priority order matters; first match wins.
func (e *Evaluator) decide(riskScore int, missing []string, a analysis.Analysis, env EnvironmentRisk) WorkflowDecision {
	if riskScore >= e.thresholds.High && env == EnvProd && a.Reversibility == analysis.Irreversible {
		return DecisionBlockExecution
	}
	if riskScore >= e.thresholds.High {
		return DecisionRequireApproval
	}
	if len(missing) > 0 && riskScore >= e.thresholds.Medium {
		return DecisionAskClarification
	}
	if riskScore < e.thresholds.Medium && len(missing) == 0 {
		return DecisionAutoContinue
	}
	// Medium-risk fallback.
	return DecisionRequireApproval
}

// guardrails are independent advisories, not mutually exclusive.
func (e *Evaluator) guardrails(riskScore int, env EnvironmentRisk, timeRisk TimeRisk, a analysis.Analysis) []string {
	var out []string

	if env == EnvProd {
		out = append(out, "Production environment - extra caution required")
	}
	if a.Reversibility == analysis.Irreversible {
		out = append(out, "Irreversible action - ensure backup/recovery plan exists")
	}
	if riskScore >= e.thresholds.High {
		out = append(out, "High risk detected - approval required before execution")
	}
	if timeRisk == TimeAfterHours || timeRisk == TimeWeekend {
		out = append(out, "After-hours execution - ensure on-call team is available")
	}

	return out
}
