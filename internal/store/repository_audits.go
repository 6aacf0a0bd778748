package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

func scanAudit(row pgx.Row) (*Audit, error) {
	var a Audit
	if err := row.Scan(&a.ID, &a.PlayerFullName, &a.ActionType, &a.AuditType, &a.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &a, nil
}

func (s *Store) SaveAudit(ctx context.Context, a Audit) (*Audit, error) {
	if a.ID == "" {
		a.ID = NewID()
	}
	a.CreatedAt = time.Now().UTC()
	_, err := s.Pool.Exec(ctx, `
INSERT INTO audits (id, player_full_name, action_type, audit_type, created_at)
VALUES ($1, $2, $3, $4, $5)`, a.ID, a.PlayerFullName, a.ActionType, a.AuditType, a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) ListAudits(ctx context.Context) ([]Audit, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, player_full_name, action_type, audit_type, created_at FROM audits ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAudit)
}

func (s *Store) DeleteAllAudits(ctx context.Context) (bool, error) {
	return affected(s.Pool.Exec(ctx, `DELETE FROM audits`))
}
