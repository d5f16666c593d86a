package extraction

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Action is a candidate action pulled from decision text.
// Derived once; never mutated after creation.
type Action struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	Target     string `json:"target,omitempty"`
	Timeframe  string `json:"timeframe,omitempty"`
	IsExplicit bool   `json:"is_explicit"`
	Confidence int    `json:"confidence"`
}

const (
	// DefaultMaxActions caps extraction output per decision.
	DefaultMaxActions = 20

	explicitBaseConfidence = 80
	impliedBaseConfidence  = 60
	sentenceConfidence     = 50
	minActionConfidence    = 50
	minSentenceLength      = 10
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Extractor scans text for actionable verbs.
// Extract is pure apart from the injected id generator, and its output
// length never exceeds the configured cap.
type Extractor struct {
	rules        Ruleset
	verbPatterns []*regexp.Regexp
	maxActions   int
	newID        func() string
}

type Option func(*Extractor)

// WithMaxActions overrides the output cap.
func WithMaxActions(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxActions = n
		}
	}
}

// WithIDGenerator overrides the action id source.
func WithIDGenerator(newID func() string) Option {
	return func(e *Extractor) {
		if newID != nil {
			e.newID = newID
		}
	}
}

func NewExtractor(rules Ruleset, opts ...Option) *Extractor {
	e := &Extractor{
		rules:        rules,
		verbPatterns: compileVerbs(rules.Verbs),
		maxActions:   DefaultMaxActions,
		newID:        uuid.NewString,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract returns the candidate actions found in text.
//
// When no action verb matches, non-trivial sentences become implied actions.
// When verbs match, a vague marker anywhere in the text suppresses all of
// them; otherwise each verb yields one action with an optional target and
// timeframe.
func (e *Extractor) Extract(text string) []Action {
	var actions []Action

	verbs := e.matchVerbs(text)
	if len(verbs) == 0 {
		for _, sentence := range sentenceSplit.Split(text, -1) {
			sentence = strings.TrimSpace(sentence)
			if len(sentence) > minSentenceLength && !e.isVague(sentence) {
				actions = append(actions, Action{
					ID:         e.newID(),
					Action:     sentence,
					IsExplicit: false,
					Confidence: sentenceConfidence,
				})
			}
		}
	} else {
		for _, verb := range verbs {
			if e.isVague(text) {
				continue
			}

			target := firstMatch(e.rules.TargetPatterns, text)
			timeframe := firstMatch(e.rules.TimeframePatterns, text)
			// Explicit by construction: the verb was matched against this text.
			isExplicit := strings.Contains(strings.ToLower(text), verb)
			confidence := e.actionConfidence(verb, isExplicit, target != "", timeframe != "")

			if confidence < minActionConfidence {
				continue
			}

			actions = append(actions, Action{
				ID:         e.newID(),
				Action:     verb,
				Target:     target,
				Timeframe:  timeframe,
				IsExplicit: isExplicit,
				Confidence: confidence,
			})
		}
	}

	if len(actions) > e.maxActions {
		actions = actions[:e.maxActions]
	}
	return actions
}

// matchVerbs returns the distinct verbs present, in verb-table order.
func (e *Extractor) matchVerbs(text string) []string {
	var found []string
	for i, p := range e.verbPatterns {
		if p.MatchString(text) {
			found = append(found, e.rules.Verbs[i])
		}
	}
	return found
}

func (e *Extractor) isVague(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range e.rules.VagueMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 && m[1] != "" {
			return strings.ToLower(m[1])
		}
	}
	return ""
}

func (e *Extractor) actionConfidence(action string, isExplicit, hasTarget, hasTimeframe bool) int {
	confidence := impliedBaseConfidence
	if isExplicit {
		confidence = explicitBaseConfidence
	}
	if hasTarget {
		confidence += 10
	}
	if hasTimeframe {
		confidence += 10
	}
	if e.isVague(action) {
		confidence -= 30
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}
