package analysis

import (
	"fmt"
	"strings"
)

// Analysis is the classification result for one decision text.
// Derived once; never mutated.
type Analysis struct {
	DecisionType  DecisionType  `json:"decision_type"`
	ImpactLevel   ImpactLevel   `json:"impact_level"`
	Urgency       UrgencyLevel  `json:"urgency"`
	Reversibility Reversibility `json:"reversibility"`
	Confidence    int           `json:"confidence"`
	Reasoning     []string      `json:"reasoning"`
}

const baseConfidence = 70

// Analyzer classifies decision text with keyword rules.
// Analyze is pure and total: defaults cover every branch.
type Analyzer struct {
	rules Ruleset
}

func NewAnalyzer(rules Ruleset) *Analyzer {
	return &Analyzer{rules: rules}
}

// Analyze classifies text into type, impact, urgency, and reversibility,
// with a confidence score and a descriptive reasoning trail.
func (a *Analyzer) Analyze(text string) Analysis {
	decisionType := a.classifyType(text)
	impact := a.assessImpact(text)
	urgency := a.assessUrgency(text)
	reversibility := a.assessReversibility(text)
	confidence := a.confidence(decisionType, impact, urgency, reversibility)

	return Analysis{
		DecisionType:  decisionType,
		ImpactLevel:   impact,
		Urgency:       urgency,
		Reversibility: reversibility,
		Confidence:    confidence,
		Reasoning: []string{
			fmt.Sprintf("Classified as %s decision based on keyword analysis", decisionType),
			fmt.Sprintf("Impact level: %s based on impact keywords", impact),
			fmt.Sprintf("Urgency: %s based on urgency indicators", urgency),
			fmt.Sprintf("Reversibility: %s based on action keywords", reversibility),
		},
	}
}

func countHits(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// classifyType picks the bucket with the most keyword hits.
// Ties break by declaration order; an all-zero tie defaults to business.
func (a *Analyzer) classifyType(text string) DecisionType {
	lower := strings.ToLower(text)

	best := TypeBusiness
	bestScore := 0
	for _, b := range a.rules.TypeBuckets {
		if score := countHits(lower, b.Keywords); score > bestScore {
			best = b.Type
			bestScore = score
		}
	}
	return best
}

func (a *Analyzer) assessImpact(text string) ImpactLevel {
	lower := strings.ToLower(text)

	if countHits(lower, a.rules.ImpactHigh) > 0 {
		return ImpactHigh
	}
	if countHits(lower, a.rules.ImpactMedium) > 0 {
		return ImpactMedium
	}
	if countHits(lower, a.rules.ImpactLow) > 0 {
		return ImpactLow
	}

	// Default depends on the decision type.
	switch a.classifyType(text) {
	case TypeOps, TypeTech:
		return ImpactMedium
	default:
		return ImpactLow
	}
}

func (a *Analyzer) assessUrgency(text string) UrgencyLevel {
	lower := strings.ToLower(text)

	if countHits(lower, a.rules.UrgencyCritical) > 0 {
		return UrgencyCritical
	}
	if countHits(lower, a.rules.UrgencyHigh) > 0 {
		return UrgencyHigh
	}
	if countHits(lower, a.rules.UrgencyMedium) > 0 {
		return UrgencyMedium
	}
	if countHits(lower, a.rules.UrgencyLow) > 0 {
		return UrgencyLow
	}
	return UrgencyMedium
}

func (a *Analyzer) assessReversibility(text string) Reversibility {
	lower := strings.ToLower(text)

	if countHits(lower, a.rules.ReversibilityIrreversible) > 0 {
		return Irreversible
	}
	if countHits(lower, a.rules.ReversibilityReversible) > 0 {
		return Reversible
	}
	if countHits(lower, a.rules.ReversibilityPartial) > 0 {
		return PartiallyReversible
	}
	return PartiallyReversible
}

// confidence scores how clear the classification signals were.
//
// The type re-check bonus runs against an empty string instead of the input
// text, so it classifies to the all-zero default (business) and the +10
// applies exactly when the chosen type is business. Known quirk, kept
// deliberately: changing it would shift every published confidence value.
func (a *Analyzer) confidence(decisionType DecisionType, impact ImpactLevel, urgency UrgencyLevel, reversibility Reversibility) int {
	confidence := baseConfidence

	if a.classifyType("") == decisionType {
		confidence += 10
	}

	if impact != ImpactLow {
		confidence += 5
	}
	if urgency != UrgencyLow {
		confidence += 5
	}
	if reversibility == Reversible || reversibility == Irreversible {
		confidence += 5
	}

	if confidence > 100 {
		confidence = 100
	}
	return confidence
}
