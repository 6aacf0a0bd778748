package store

import "context"

type PlayerStore interface {
	FindPlayerByID(ctx context.Context, id string) (*Player, error)
	FindPlayerByUsername(ctx context.Context, username string) (*Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	// SavePlayer inserts p and returns it with its assigned ID.
	SavePlayer(ctx context.Context, p Player) (*Player, error)
	UpdatePlayer(ctx context.Context, p Player) error
	DeletePlayer(ctx context.Context, id string) (bool, error)
	DeleteAllPlayers(ctx context.Context) (bool, error)
}

type TransactionStore interface {
	FindTransactionByID(ctx context.Context, id string) (*Transaction, error)
	FindTransactionByExternalID(ctx context.Context, externalID int64) (*Transaction, error)
	ListTransactions(ctx context.Context) ([]Transaction, error)
	ListTransactionsByPlayer(ctx context.Context, playerID string) ([]Transaction, error)
	SaveTransaction(ctx context.Context, tx Transaction) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx Transaction) error
	DeleteTransaction(ctx context.Context, id string) (bool, error)
	DeleteAllTransactions(ctx context.Context) (bool, error)
}

type AuditStore interface {
	SaveAudit(ctx context.Context, a Audit) (*Audit, error)
	ListAudits(ctx context.Context) ([]Audit, error)
	DeleteAllAudits(ctx context.Context) (bool, error)
}

// Tx is the unit of work used for balance mutations. A player returned by
// LockPlayerByUsername stays locked until the enclosing InTx returns.
type Tx interface {
	LockPlayerByUsername(ctx context.Context, username string) (*Player, error)
	FindTransactionByExternalID(ctx context.Context, externalID int64) (*Transaction, error)
	SaveTransaction(ctx context.Context, tx Transaction) (*Transaction, error)
	UpdatePlayer(ctx context.Context, p Player) error
}

type Repository interface {
	PlayerStore
	TransactionStore
	AuditStore

	// InTx runs fn in a unit of work: every write made through the Tx is
	// applied if fn returns nil and discarded otherwise.
	InTx(ctx context.Context, fn func(Tx) error) error
	Ping(ctx context.Context) error
}
