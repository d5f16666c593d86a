package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
)

// ExportJSON renders the retained events as indented JSON, most recent first.
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	events, err := s.List(ctx, DefaultMaxEvents)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return json.MarshalIndent(events, "", "  ")
}

// ExportCSV renders the retained events as CSV with a fixed header row.
func (s *Service) ExportCSV(ctx context.Context) ([]byte, error) {
	events, err := s.List(ctx, DefaultMaxEvents)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "created_at", "type", "decision_id", "actor_user_id", "message", "data"}); err != nil {
		return nil, err
	}
	for _, e := range events {
		row := []string{
			e.ID,
			e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			string(e.Type),
			e.DecisionID,
			e.ActorUserID,
			e.Message,
			e.Data,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
