package decisions

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PostgresRepo persists decision records.
//
// Schema:
//
//	CREATE TABLE decision_records (
//	    decision_id       TEXT PRIMARY KEY,
//	    user_id           TEXT NOT NULL DEFAULT '',
//	    source            TEXT NOT NULL,
//	    decision_type     TEXT NOT NULL,
//	    impact_level      TEXT NOT NULL,
//	    risk_score        INT NOT NULL,
//	    workflow_decision TEXT NOT NULL,
//	    status            TEXT NOT NULL,
//	    created_at        TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX decision_records_created_idx ON decision_records (created_at DESC);
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Save(ctx context.Context, rec Record) error {
	if rec.DecisionID == "" {
		return ErrInvalidRecord
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO decision_records
		     (decision_id, user_id, source, decision_type, impact_level, risk_score, workflow_decision, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.DecisionID, rec.UserID, rec.Source, rec.DecisionType, rec.ImpactLevel,
		rec.RiskScore, rec.WorkflowDecision, rec.Status, rec.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, from, to time.Time) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT decision_id, user_id, source, decision_type, impact_level, risk_score, workflow_decision, status, created_at
		 FROM decision_records
		 WHERE created_at >= $1 AND created_at < $2
		 ORDER BY created_at DESC`,
		from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.DecisionID, &rec.UserID, &rec.Source, &rec.DecisionType, &rec.ImpactLevel,
			&rec.RiskScore, &rec.WorkflowDecision, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, decisionID string) (Record, bool, error) {
	var rec Record
	err := r.db.QueryRowContext(ctx,
		`SELECT decision_id, user_id, source, decision_type, impact_level, risk_score, workflow_decision, status, created_at
		 FROM decision_records WHERE decision_id = $1`,
		decisionID,
	).Scan(&rec.DecisionID, &rec.UserID, &rec.Source, &rec.DecisionType, &rec.ImpactLevel,
		&rec.RiskScore, &rec.WorkflowDecision, &rec.Status, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}
