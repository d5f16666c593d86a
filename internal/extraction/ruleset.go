package extraction

import (
	"fmt"
	"regexp"
)

// Ruleset holds the verb table, vague-language markers, and the target and
// timeframe patterns. Immutable once built.
type Ruleset struct {
	// Verbs are matched with word boundaries, case-insensitively.
	Verbs []string

	// VagueMarkers are substring matches; a hit anywhere in the input
	// suppresses verb-based extraction entirely.
	VagueMarkers []string

	// TargetPatterns and TimeframePatterns are tried in order;
	// the first capture wins.
	TargetPatterns    []*regexp.Regexp
	TimeframePatterns []*regexp.Regexp
}

// DefaultRuleset returns the built-in extraction rules.
func DefaultRuleset() Ruleset {
	r := Ruleset{
		Verbs: []string{
			"create", "add", "deploy", "update", "modify", "change",
			"remove", "delete", "pause", "resume", "start", "stop",
			"restart", "scale", "migrate", "backup", "restore", "notify",
			"send", "schedule", "cancel", "approve", "reject", "assign",
			"transfer", "merge", "split", "copy", "move", "rename",
		},
		VagueMarkers: []string{
			"think about", "consider", "maybe", "possibly", "perhaps",
			"explore", "look into", "investigate", "discuss", "review",
			"analyze",
		},
		TargetPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:to|in|on)\s+(production|staging|dev|development|local)`),
			regexp.MustCompile(`(?i)(?:for|on)\s+(\w+\s+feature|\w+\s+service|\w+\s+system)`),
			regexp.MustCompile(`(?i)(?:in|on)\s+(\w+\s+environment)`),
		},
		TimeframePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(today|tomorrow|this week|next week|this month|next month)`),
			regexp.MustCompile(`(?i)(in\s+\d+\s+(?:hours?|days?|weeks?|months?))`),
			regexp.MustCompile(`(?i)(asap|immediately|now|soon)`),
		},
	}
	return r
}

func compileVerbs(verbs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(verbs))
	for i, v := range verbs {
		out[i] = regexp.MustCompile(fmt.Sprintf(`(?i)\b%s\b`, regexp.QuoteMeta(v)))
	}
	return out
}
