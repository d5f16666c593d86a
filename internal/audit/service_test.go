package audit

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
}

func TestService_AppendRequiresDecisionAndType(t *testing.T) {
	svc := NewService(NewMemoryRepo(0))

	if err := svc.Append(context.Background(), Event{Type: EventTypeIntake}); err == nil {
		t.Fatalf("expected error without decision id")
	}
	if err := svc.Append(context.Background(), Event{DecisionID: "d1"}); err == nil {
		t.Fatalf("expected error without type")
	}
}

func TestService_LogStageFillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo(0)
	svc := NewService(repo).WithClock(fixedClock)

	if err := svc.LogStage(context.Background(), "d1", EventTypeAnalysis, "u1", "analysis completed", `{"confidence":85}`); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs, err := repo.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	e := evs[0]
	if e.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !e.CreatedAt.Equal(fixedClock()) {
		t.Fatalf("expected clock timestamp, got %v", e.CreatedAt)
	}
	if e.Type != EventTypeAnalysis || e.DecisionID != "d1" || e.ActorUserID != "u1" {
		t.Fatalf("event fields not carried: %+v", e)
	}
}

func TestMemoryRepo_CapDropsOldestFirst(t *testing.T) {
	repo := NewMemoryRepo(3)
	svc := NewService(repo).WithClock(fixedClock)

	for i := 1; i <= 5; i++ {
		if err := svc.LogStage(context.Background(), fmt.Sprintf("d%d", i), EventTypeIntake, "", "", ""); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	evs, _ := repo.List(context.Background(), 10)
	if len(evs) != 3 {
		t.Fatalf("expected cap of 3, got %d", len(evs))
	}
	// Most recent first; d1 and d2 evicted.
	if evs[0].DecisionID != "d5" || evs[2].DecisionID != "d3" {
		t.Fatalf("unexpected retention order: %+v", evs)
	}
}

func TestService_ListByDecision(t *testing.T) {
	repo := NewMemoryRepo(0)
	svc := NewService(repo).WithClock(fixedClock)

	_ = svc.LogStage(context.Background(), "d1", EventTypeIntake, "", "", "")
	_ = svc.LogStage(context.Background(), "d2", EventTypeIntake, "", "", "")
	_ = svc.LogStage(context.Background(), "d1", EventTypeRisk, "", "", "")

	evs, err := svc.ListByDecision(context.Background(), "d1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events for d1, got %d", len(evs))
	}
	for _, e := range evs {
		if e.DecisionID != "d1" {
			t.Fatalf("wrong decision id: %+v", e)
		}
	}
}

func TestService_ExportCSV(t *testing.T) {
	repo := NewMemoryRepo(0)
	svc := NewService(repo).WithClock(fixedClock)

	_ = svc.LogStage(context.Background(), "d1", EventTypeRisk, "u1", "risk evaluated", "")

	out, err := svc.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,created_at,type") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "risk-evaluation") || !strings.Contains(lines[1], "d1") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
