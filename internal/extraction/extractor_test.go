package extraction

import (
	"fmt"
	"strings"
	"testing"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("act-%d", n)
	}
}

func newExtractor(opts ...Option) *Extractor {
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	return NewExtractor(DefaultRuleset(), opts...)
}

func findAction(actions []Action, verb string) (Action, bool) {
	for _, a := range actions {
		if a.Action == verb {
			return a, true
		}
	}
	return Action{}, false
}

func TestExtract_ExplicitVerbWithTargetAndTimeframe(t *testing.T) {
	e := newExtractor()

	actions := e.Extract("Deploy the hotfix to production today")
	a, ok := findAction(actions, "deploy")
	if !ok {
		t.Fatalf("expected deploy action, got %+v", actions)
	}
	if !a.IsExplicit {
		t.Fatalf("expected explicit action")
	}
	if a.Target != "production" {
		t.Fatalf("expected production target, got %q", a.Target)
	}
	if a.Timeframe != "today" {
		t.Fatalf("expected today timeframe, got %q", a.Timeframe)
	}
	// 80 base + 10 target + 10 timeframe
	if a.Confidence != 100 {
		t.Fatalf("expected confidence 100, got %d", a.Confidence)
	}
	if a.ID == "" {
		t.Fatalf("expected id")
	}
}

func TestExtract_WordBoundaryMatching(t *testing.T) {
	e := newExtractor()

	// "additional" must not match the verb "add";
	// "stopped" must not match "stop".
	actions := e.Extract("additional capacity stopped being an issue")
	if len(actions) != 1 || actions[0].IsExplicit {
		// Only the sentence fallback should fire.
		t.Fatalf("expected single implied sentence action, got %+v", actions)
	}
}

func TestExtract_VagueTextSuppressesVerbs(t *testing.T) {
	e := newExtractor()

	// "consider" marks the whole text vague; the matched verb "update"
	// is skipped entirely.
	actions := e.Extract("We should consider whether to update the billing service")
	if len(actions) != 0 {
		t.Fatalf("expected no actions, got %+v", actions)
	}
}

func TestExtract_SentenceFallback(t *testing.T) {
	e := newExtractor()

	actions := e.Extract("The onboarding flow is confusing. Short. Maybe we try something.")
	if len(actions) != 1 {
		t.Fatalf("expected 1 implied action, got %+v", actions)
	}
	a := actions[0]
	if a.Action != "The onboarding flow is confusing" {
		t.Fatalf("expected sentence verbatim, got %q", a.Action)
	}
	if a.IsExplicit {
		t.Fatalf("expected implied action")
	}
	if a.Confidence != 50 {
		t.Fatalf("expected confidence 50, got %d", a.Confidence)
	}
	if a.Target != "" || a.Timeframe != "" {
		t.Fatalf("expected no target/timeframe, got %+v", a)
	}
}

func TestExtract_TargetPatternOrder(t *testing.T) {
	e := newExtractor()

	tests := []struct {
		text string
		want string
	}{
		{"deploy to staging please", "staging"},
		{"restart it for billing service", "billing service"},
		{"migrate data in prod environment", "prod environment"},
		{"pause the job", ""},
	}
	for _, tt := range tests {
		actions := e.Extract(tt.text)
		if len(actions) == 0 {
			t.Fatalf("expected actions for %q", tt.text)
		}
		if actions[0].Target != tt.want {
			t.Fatalf("text %q: expected target %q, got %q", tt.text, tt.want, actions[0].Target)
		}
	}
}

func TestExtract_TimeframePatterns(t *testing.T) {
	e := newExtractor()

	tests := []struct {
		text string
		want string
	}{
		{"scale the cluster next week", "next week"},
		{"backup the database in 2 hours", "in 2 hours"},
		{"restart the worker asap", "asap"},
		{"rename the bucket", ""},
	}
	for _, tt := range tests {
		actions := e.Extract(tt.text)
		if len(actions) == 0 {
			t.Fatalf("expected actions for %q", tt.text)
		}
		if actions[0].Timeframe != tt.want {
			t.Fatalf("text %q: expected timeframe %q, got %q", tt.text, tt.want, actions[0].Timeframe)
		}
	}
}

func TestExtract_DistinctVerbs(t *testing.T) {
	e := newExtractor()

	actions := e.Extract("stop the worker, then stop the scheduler, then restart both")
	var verbs []string
	for _, a := range actions {
		verbs = append(verbs, a.Action)
	}
	seen := map[string]bool{}
	for _, v := range verbs {
		if seen[v] {
			t.Fatalf("duplicate verb %q in %v", v, verbs)
		}
		seen[v] = true
	}
	if !seen["stop"] || !seen["restart"] {
		t.Fatalf("expected stop and restart, got %v", verbs)
	}
}

func TestExtract_CapAndBounds(t *testing.T) {
	e := newExtractor(WithMaxActions(3))

	// Many verbs in one text; output must respect the cap.
	text := "create add deploy update modify change remove pause resume start"
	actions := e.Extract(text)
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	for _, a := range actions {
		if a.Confidence < 0 || a.Confidence > 100 {
			t.Fatalf("confidence out of range: %+v", a)
		}
	}
}

func TestExtract_VagueOnlyTextYieldsNothing(t *testing.T) {
	e := newExtractor()

	actions := e.Extract("Let's consider reviewing the onboarding docs eventually")
	if len(actions) != 0 {
		t.Fatalf("expected no actions for vague text, got %+v", actions)
	}
}

func TestExtract_LongInputStaysBounded(t *testing.T) {
	e := newExtractor()

	text := strings.Repeat("Something happened that matters here. ", 50)
	actions := e.Extract(text)
	if len(actions) > DefaultMaxActions {
		t.Fatalf("cap exceeded: %d", len(actions))
	}
}
