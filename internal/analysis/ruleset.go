package analysis

// DecisionType buckets a decision by domain.
type DecisionType string

const (
	TypeTech     DecisionType = "tech"
	TypeOps      DecisionType = "ops"
	TypeBusiness DecisionType = "business"
	TypePeople   DecisionType = "people"
)

// ImpactLevel grades the scope of a decision's effect.
type ImpactLevel string

const (
	ImpactLow    ImpactLevel = "low"
	ImpactMedium ImpactLevel = "medium"
	ImpactHigh   ImpactLevel = "high"
)

// UrgencyLevel grades how soon a decision needs acting on.
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

// Reversibility grades how recoverable a decision is.
type Reversibility string

const (
	Reversible          Reversibility = "reversible"
	PartiallyReversible Reversibility = "partially-reversible"
	Irreversible        Reversibility = "irreversible"
)

// Ruleset holds the keyword tables driving classification.
//
// Treat a Ruleset as immutable once built; tests may substitute alternative
// tables via NewAnalyzer.
type Ruleset struct {
	// TypeBuckets are scored independently; ties break by declaration order.
	TypeBuckets []TypeBucket

	// Impact/Urgency/Reversibility sets are checked in fixed priority order;
	// the first set with at least one hit wins.
	ImpactHigh   []string
	ImpactMedium []string
	ImpactLow    []string

	UrgencyCritical []string
	UrgencyHigh     []string
	UrgencyMedium   []string
	UrgencyLow      []string

	ReversibilityIrreversible []string
	ReversibilityReversible   []string
	ReversibilityPartial      []string
}

type TypeBucket struct {
	Type     DecisionType
	Keywords []string
}

// DefaultRuleset returns the built-in keyword tables.
func DefaultRuleset() Ruleset {
	return Ruleset{
		TypeBuckets: []TypeBucket{
			{Type: TypeTech, Keywords: []string{
				"deploy", "code", "api", "database", "server",
				"infrastructure", "bug", "feature", "hotfix", "release",
			}},
			{Type: TypeOps, Keywords: []string{
				"monitor", "alert", "incident", "outage", "scaling",
				"capacity", "backup", "disaster", "recovery",
			}},
			{Type: TypeBusiness, Keywords: []string{
				"revenue", "customer", "sales", "marketing", "strategy",
				"budget", "cost", "profit", "growth",
			}},
			{Type: TypePeople, Keywords: []string{
				"team", "hire", "fire", "promote", "training",
				"meeting", "review", "performance",
			}},
		},

		ImpactHigh: []string{
			"critical", "urgent", "production", "customer-facing",
			"revenue", "security", "compliance",
		},
		ImpactMedium: []string{"important", "significant", "major", "feature", "enhancement"},
		ImpactLow:    []string{"minor", "nice-to-have", "optimization", "cleanup", "documentation"},

		UrgencyCritical: []string{"immediately", "now", "asap", "emergency", "critical", "outage", "down"},
		UrgencyHigh:     []string{"today", "urgent", "soon", "quickly", "priority"},
		UrgencyMedium:   []string{"this week", "soon", "planned"},
		UrgencyLow:      []string{"eventually", "later", "when possible", "backlog"},

		ReversibilityIrreversible: []string{"delete", "remove", "terminate", "cancel", "shutdown"},
		ReversibilityReversible:   []string{"toggle", "feature flag", "rollback", "revert", "undo"},
		ReversibilityPartial:      []string{"deploy", "update", "modify", "change"},
	}
}
