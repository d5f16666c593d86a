package intake

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Source identifies where a decision text came from.
// Keep these stable; they are part of the API contract.
type Source string

const (
	SourceWebhook Source = "webhook"
	SourceSlack   Source = "slack"
	SourceEmail   Source = "email"
	SourceForm    Source = "form"
	SourceNotion  Source = "notion"
	SourceManual  Source = "manual"
)

// ValidSource reports whether s is a recognized decision source.
func ValidSource(s Source) bool {
	switch s {
	case SourceWebhook, SourceSlack, SourceEmail, SourceForm, SourceNotion, SourceManual:
		return true
	default:
		return false
	}
}

// Metadata is attached to every accepted decision.
type Metadata struct {
	Source    Source `json:"source"`
	UserID    string `json:"user_id,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id,omitempty"`
}

// Input is a normalized, validated decision submission.
// Immutable after creation.
type Input struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}

// ValidationError is the only error kind the pipeline raises itself.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// DefaultMaxTextLength bounds decision text size.
const DefaultMaxTextLength = 5000

// Intake normalizes and validates raw decision text.
//
// clock and newID are injectable for deterministic tests.
type Intake struct {
	maxTextLength int
	clock         func() time.Time
	newID         func() string
}

type Option func(*Intake)

// WithMaxTextLength overrides the text length bound.
func WithMaxTextLength(n int) Option {
	return func(i *Intake) {
		if n > 0 {
			i.maxTextLength = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(i *Intake) {
		if clock != nil {
			i.clock = clock
		}
	}
}

// WithIDGenerator overrides the session id source.
func WithIDGenerator(newID func() string) Option {
	return func(i *Intake) {
		if newID != nil {
			i.newID = newID
		}
	}
}

func New(opts ...Option) *Intake {
	i := &Intake{
		maxTextLength: DefaultMaxTextLength,
		clock:         time.Now,
		newID:         uuid.NewString,
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Normalize trims and collapses any whitespace run to a single space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Take normalizes text, validates it, and attaches metadata.
//
// Fails with *ValidationError when the normalized text is empty or exceeds
// the configured maximum length. The length bound counts characters, not
// bytes, and applies after whitespace collapsing. No side effects beyond
// reading the clock and generating a session id.
func (i *Intake) Take(text string, source Source, userID, userName string) (Input, error) {
	normalized := Normalize(text)

	if normalized == "" {
		return Input{}, &ValidationError{Reason: "decision text cannot be empty"}
	}
	if utf8.RuneCountInString(normalized) > i.maxTextLength {
		return Input{}, &ValidationError{
			Reason: fmt.Sprintf("decision text exceeds maximum length of %d characters", i.maxTextLength),
		}
	}

	return Input{
		Text: normalized,
		Metadata: Metadata{
			Source:    source,
			UserID:    userID,
			UserName:  userName,
			Timestamp: i.clock().UTC().Format(time.RFC3339),
			SessionID: i.newID(),
		},
	}, nil
}
