package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

const playerColumns = `id, username, password_hash, balance, role, created_at, updated_at`

func scanPlayer(row pgx.Row) (*Player, error) {
	var p Player
	if err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.Balance, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (s *Store) FindPlayerByID(ctx context.Context, id string) (*Player, error) {
	return scanPlayer(s.Pool.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id))
}

func (s *Store) FindPlayerByUsername(ctx context.Context, username string) (*Player, error) {
	return findPlayerByUsername(ctx, s.Pool, username, false)
}

func findPlayerByUsername(ctx context.Context, q querier, username string, forUpdate bool) (*Player, error) {
	sql := `SELECT ` + playerColumns + ` FROM players WHERE username = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	return scanPlayer(q.QueryRow(ctx, sql, username))
}

func (s *Store) ListPlayers(ctx context.Context) ([]Player, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPlayer)
}

func (s *Store) SavePlayer(ctx context.Context, p Player) (*Player, error) {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.Role == "" {
		p.Role = RoleUser
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := s.Pool.Exec(ctx, `
INSERT INTO players (id, username, password_hash, balance, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Username, p.PasswordHash, p.Balance, p.Role, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, mapConstraint(err)
	}
	return &p, nil
}

func (s *Store) UpdatePlayer(ctx context.Context, p Player) error {
	return updatePlayer(ctx, s.Pool, p)
}

func updatePlayer(ctx context.Context, q querier, p Player) error {
	tag, err := q.Exec(ctx, `
UPDATE players
SET username = $2, password_hash = $3, balance = $4, role = $5, updated_at = now()
WHERE id = $1`, p.ID, p.Username, p.PasswordHash, p.Balance, p.Role)
	ok, err := affected(tag, mapConstraint(err))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, id string) (bool, error) {
	return affected(s.Pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id))
}

func (s *Store) DeleteAllPlayers(ctx context.Context) (bool, error) {
	return affected(s.Pool.Exec(ctx, `DELETE FROM players`))
}
