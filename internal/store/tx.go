package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) LockPlayerByUsername(ctx context.Context, username string) (*Player, error) {
	return findPlayerByUsername(ctx, t.tx, username, true)
}

func (t *pgTx) FindTransactionByExternalID(ctx context.Context, externalID int64) (*Transaction, error) {
	return findTransactionByExternalID(ctx, t.tx, externalID)
}

func (t *pgTx) SaveTransaction(ctx context.Context, tr Transaction) (*Transaction, error) {
	return saveTransaction(ctx, t.tx, tr)
}

func (t *pgTx) UpdatePlayer(ctx context.Context, p Player) error {
	return updatePlayer(ctx, t.tx, p)
}
