package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, external_id, type, amount, player_id, balance_before, balance_after, created_at`

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	if err := row.Scan(&t.ID, &t.ExternalID, &t.Type, &t.Amount, &t.PlayerID, &t.BalanceBefore, &t.BalanceAfter, &t.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (s *Store) FindTransactionByID(ctx context.Context, id string) (*Transaction, error) {
	return scanTransaction(s.Pool.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
}

func (s *Store) FindTransactionByExternalID(ctx context.Context, externalID int64) (*Transaction, error) {
	return findTransactionByExternalID(ctx, s.Pool, externalID)
}

func findTransactionByExternalID(ctx context.Context, q querier, externalID int64) (*Transaction, error) {
	return scanTransaction(q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE external_id = $1`, externalID))
}

func (s *Store) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTransaction)
}

func (s *Store) ListTransactionsByPlayer(ctx context.Context, playerID string) ([]Transaction, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE player_id = $1 ORDER BY id`, playerID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTransaction)
}

func (s *Store) SaveTransaction(ctx context.Context, t Transaction) (*Transaction, error) {
	return saveTransaction(ctx, s.Pool, t)
}

func saveTransaction(ctx context.Context, q querier, t Transaction) (*Transaction, error) {
	if t.ID == "" {
		t.ID = NewID()
	}
	t.CreatedAt = time.Now().UTC()
	_, err := q.Exec(ctx, `
INSERT INTO transactions (id, external_id, type, amount, player_id, balance_before, balance_after, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.ExternalID, t.Type, t.Amount, t.PlayerID, t.BalanceBefore, t.BalanceAfter, t.CreatedAt)
	if err != nil {
		return nil, mapConstraint(err)
	}
	return &t, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, t Transaction) error {
	tag, err := s.Pool.Exec(ctx, `
UPDATE transactions
SET external_id = $2, type = $3, amount = $4, player_id = $5, balance_before = $6, balance_after = $7
WHERE id = $1`, t.ID, t.ExternalID, t.Type, t.Amount, t.PlayerID, t.BalanceBefore, t.BalanceAfter)
	ok, err := affected(tag, mapConstraint(err))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	return affected(s.Pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id))
}

func (s *Store) DeleteAllTransactions(ctx context.Context) (bool, error) {
	return affected(s.Pool.Exec(ctx, `DELETE FROM transactions`))
}
