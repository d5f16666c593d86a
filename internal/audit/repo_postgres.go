package audit

import (
	"context"
	"database/sql"

	"decision-platform/pkg/utils"
)

// PostgresRepo persists events in an insert-only audit_events table.
//
// Schema:
//
//	CREATE TABLE audit_events (
//	    id            TEXT PRIMARY KEY,
//	    decision_id   TEXT NOT NULL,
//	    type          TEXT NOT NULL,
//	    actor_user_id TEXT NOT NULL DEFAULT '',
//	    message       TEXT NOT NULL DEFAULT '',
//	    data          TEXT NOT NULL DEFAULT '',
//	    created_at    TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX audit_events_decision_idx ON audit_events (decision_id);
//	CREATE INDEX audit_events_created_idx ON audit_events (created_at DESC);
//
// The retention cap is enforced by pruning rows beyond it in the same
// transaction as the insert.
type PostgresRepo struct {
	db  *sql.DB
	max int
}

func NewPostgresRepo(db *sql.DB, max int) *PostgresRepo {
	if max <= 0 {
		max = DefaultMaxEvents
	}
	return &PostgresRepo{db: db, max: max}
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO audit_events (id, decision_id, type, actor_user_id, message, data, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, e.DecisionID, e.Type, e.ActorUserID, e.Message, e.Data, e.CreatedAt,
		); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`DELETE FROM audit_events
			 WHERE id NOT IN (
			     SELECT id FROM audit_events ORDER BY created_at DESC, id DESC LIMIT $1
			 )`,
			r.max,
		)
		return err
	})
}

func (r *PostgresRepo) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > r.max {
		limit = r.max
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, decision_id, type, actor_user_id, message, data, created_at
		 FROM audit_events ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *PostgresRepo) ListByDecision(ctx context.Context, decisionID string) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, decision_id, type, actor_user_id, message, data, created_at
		 FROM audit_events WHERE decision_id = $1 ORDER BY created_at DESC, id DESC`,
		decisionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.DecisionID, &e.Type, &e.ActorUserID, &e.Message, &e.Data, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
