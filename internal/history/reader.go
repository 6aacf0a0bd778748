package history

import (
	"context"

	"player-wallet/internal/store"
)

// Reader serves read-only views over committed transactions and audits.
type Reader struct {
	Players      store.PlayerStore
	Transactions store.TransactionStore
	Audits       store.AuditStore
}

func New(players store.PlayerStore, txs store.TransactionStore, audits store.AuditStore) *Reader {
	return &Reader{Players: players, Transactions: txs, Audits: audits}
}

// PlayerTransactions returns the player's transactions oldest first. An
// unknown username yields store.ErrNotFound.
func (r *Reader) PlayerTransactions(ctx context.Context, username string) ([]store.Transaction, error) {
	p, err := r.Players.FindPlayerByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return r.Transactions.ListTransactionsByPlayer(ctx, p.ID)
}

func (r *Reader) AllPlayers(ctx context.Context) ([]store.Player, error) {
	return r.Players.ListPlayers(ctx)
}

func (r *Reader) AllAudits(ctx context.Context) ([]store.Audit, error) {
	return r.Audits.ListAudits(ctx)
}
