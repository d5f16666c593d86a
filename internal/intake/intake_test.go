package intake

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)
}

func TestTake_NormalizesWhitespace(t *testing.T) {
	i := New(WithClock(fixedClock), WithIDGenerator(func() string { return "sess-1" }))

	in, err := i.Take("  deploy   the\tservice \n today  ", SourceManual, "u1", "Dana")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in.Text != "deploy the service today" {
		t.Fatalf("unexpected normalized text: %q", in.Text)
	}
	if in.Metadata.SessionID != "sess-1" {
		t.Fatalf("expected injected session id, got %q", in.Metadata.SessionID)
	}
	if in.Metadata.Timestamp != "2025-03-04T10:30:00Z" {
		t.Fatalf("unexpected timestamp: %q", in.Metadata.Timestamp)
	}
	if in.Metadata.Source != SourceManual || in.Metadata.UserID != "u1" || in.Metadata.UserName != "Dana" {
		t.Fatalf("metadata not carried: %+v", in.Metadata)
	}
}

func TestTake_EmptyTextFails(t *testing.T) {
	i := New()

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := i.Take(text, SourceForm, "", "")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError for %q, got %v", text, err)
		}
	}
}

func TestTake_OverLengthFails(t *testing.T) {
	i := New()

	_, err := i.Take(strings.Repeat("a", DefaultMaxTextLength+1), SourceManual, "", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Reason, "5000") {
		t.Fatalf("expected length in message, got %q", verr.Reason)
	}
}

func TestTake_LengthBoundAppliesToNormalizedText(t *testing.T) {
	i := New()

	// 7500 raw bytes, 4999 chars once whitespace runs collapse.
	raw := strings.TrimSpace(strings.Repeat("a  ", 2500))
	in, err := i.Take(raw, SourceManual, "", "")
	if err != nil {
		t.Fatalf("unexpected err for normalized-under-cap text: %v", err)
	}
	if got := len(in.Text); got != 4999 {
		t.Fatalf("expected 4999 normalized chars, got %d", got)
	}

	if _, err := i.Take(strings.Repeat("a ", DefaultMaxTextLength+1), SourceManual, "", ""); err == nil {
		t.Fatalf("expected error when normalized text exceeds the cap")
	}
}

func TestTake_LengthBoundCountsCharactersNotBytes(t *testing.T) {
	i := New(WithMaxTextLength(10))

	// 10 runes, 30 bytes.
	if _, err := i.Take(strings.Repeat("日", 10), SourceManual, "", ""); err != nil {
		t.Fatalf("unexpected err for 10-rune text: %v", err)
	}
	if _, err := i.Take(strings.Repeat("日", 11), SourceManual, "", ""); err == nil {
		t.Fatalf("expected error for 11-rune text")
	}
}

func TestTake_ConfiguredBound(t *testing.T) {
	i := New(WithMaxTextLength(10))

	if _, err := i.Take("short one", SourceSlack, "", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := i.Take("this is well past ten", SourceSlack, "", ""); err == nil {
		t.Fatalf("expected error past configured bound")
	}
}

func TestValidSource(t *testing.T) {
	for _, s := range []Source{SourceWebhook, SourceSlack, SourceEmail, SourceForm, SourceNotion, SourceManual} {
		if !ValidSource(s) {
			t.Fatalf("expected %q valid", s)
		}
	}
	if ValidSource(Source("carrier-pigeon")) {
		t.Fatalf("expected unknown source invalid")
	}
}
