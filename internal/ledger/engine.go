package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"player-wallet/internal/audit"
	"player-wallet/internal/history"
	"player-wallet/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// bcrypt refuses passwords longer than this.
const maxPasswordBytes = 72

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Identity is the authenticated player handed to token issuance.
type Identity struct {
	PlayerID string
	Username string
	Role     store.Role
}

// Engine owns every balance mutation. Each public operation records exactly
// one audit entry whose result follows the operation's returned error.
type Engine struct {
	repo      store.Repository
	audit     audit.Sink
	hasher    PasswordHasher
	history   *history.Reader
	metrics   *Metrics
	nextID    IDSource
	opTimeout time.Duration
}

type Option func(*Engine)

func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithIDSource(src IDSource) Option {
	return func(e *Engine) { e.nextID = src }
}

// WithOpTimeout bounds the store work of each operation. Zero disables it.
func WithOpTimeout(d time.Duration) Option {
	return func(e *Engine) { e.opTimeout = d }
}

func New(repo store.Repository, sink audit.Sink, hasher PasswordHasher, opts ...Option) *Engine {
	e := &Engine{
		repo:    repo,
		audit:   sink,
		hasher:  hasher,
		history: history.New(repo, repo, repo),
		nextID:  RandomExternalID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Register(ctx context.Context, username, password string) (p *store.Player, err error) {
	defer e.track(ctx, username, store.ActionRegistration, time.Now(), &err)
	ctx, cancel := e.bound(ctx)
	defer cancel()
	return e.register(ctx, username, password, store.RoleUser)
}

// EnsureAdmin creates the admin account when it does not exist yet. An
// existing player with that username is left untouched.
func (e *Engine) EnsureAdmin(ctx context.Context, username, password string) (created bool, err error) {
	ctx, cancel := e.bound(ctx)
	defer cancel()
	if _, err := e.repo.FindPlayerByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, e.internal(store.ActionRegistration, username, err)
	}

	defer e.track(ctx, username, store.ActionRegistration, time.Now(), &err)
	if _, err = e.register(ctx, username, password, store.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) register(ctx context.Context, username, password string, role store.Role) (*store.Player, error) {
	if strings.TrimSpace(username) == "" || password == "" || len(password) > maxPasswordBytes {
		return nil, ErrInvalidCredentials
	}
	if _, err := e.repo.FindPlayerByUsername(ctx, username); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, e.internal(store.ActionRegistration, username, err)
	}

	hash, err := e.hasher.Hash(password)
	if err != nil {
		return nil, e.internal(store.ActionRegistration, username, err)
	}
	p, err := e.repo.SavePlayer(ctx, store.Player{
		Username:     username,
		PasswordHash: hash,
		Balance:      decimal.Zero,
		Role:         role,
	})
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return nil, ErrAlreadyExists
	case err != nil:
		return nil, e.internal(store.ActionRegistration, username, err)
	}
	log.Info().Str("player", username).Str("role", string(role)).Msg("player_registered")
	return p, nil
}

func (e *Engine) Authenticate(ctx context.Context, username, password string) (id Identity, err error) {
	defer e.track(ctx, username, store.ActionAuthorization, time.Now(), &err)
	ctx, cancel := e.bound(ctx)
	defer cancel()

	p, err := e.findPlayer(ctx, store.ActionAuthorization, username)
	if err != nil {
		return Identity{}, err
	}
	if err := e.hasher.Compare(p.PasswordHash, password); err != nil {
		return Identity{}, ErrBadCredentials
	}
	return Identity{PlayerID: p.ID, Username: p.Username, Role: p.Role}, nil
}

func (e *Engine) GetBalance(ctx context.Context, username string) (balance decimal.Decimal, err error) {
	defer e.track(ctx, username, store.ActionBalanceInquiry, time.Now(), &err)
	ctx, cancel := e.bound(ctx)
	defer cancel()

	p, err := e.findPlayer(ctx, store.ActionBalanceInquiry, username)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Balance, nil
}

// Credit adds amount to the player's balance. A nil externalID is replaced by
// a generated one.
func (e *Engine) Credit(ctx context.Context, username string, externalID *int64, amount decimal.Decimal) (tr *store.Transaction, err error) {
	defer e.track(ctx, username, store.ActionCreditTransaction, time.Now(), &err)
	ctx, cancel := e.bound(ctx)
	defer cancel()
	return e.apply(ctx, store.TransactionCredit, username, externalID, amount)
}

// Debit removes amount from the player's balance; the balance never goes
// below zero.
func (e *Engine) Debit(ctx context.Context, username string, externalID *int64, amount decimal.Decimal) (tr *store.Transaction, err error) {
	defer e.track(ctx, username, store.ActionDebitTransaction, time.Now(), &err)
	ctx, cancel := e.bound(ctx)
	defer cancel()
	return e.apply(ctx, store.TransactionDebit, username, externalID, amount)
}

// ViewHistory returns the player's transactions oldest first. A known player
// without transactions yields ErrEmptyHistory.
func (e *Engine) ViewHistory(ctx context.Context, username string) (items []store.Transaction, err error) {
	defer e.track(ctx, username, store.ActionViewTransactionHistory, time.Now(), &err)
	ctx, cancel := e.bound(ctx)
	defer cancel()

	items, err = e.history.PlayerTransactions(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrPlayerNotFound
	case err != nil:
		return nil, e.internal(store.ActionViewTransactionHistory, username, err)
	case len(items) == 0:
		return nil, ErrEmptyHistory
	}
	return items, nil
}

func (e *Engine) apply(ctx context.Context, typ store.TransactionType, username string, externalID *int64, amount decimal.Decimal) (*store.Transaction, error) {
	action := actionFor(typ)
	if externalID != nil {
		if err := ValidateExternalID(*externalID); err != nil {
			return nil, err
		}
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if externalID != nil {
		return e.applyOnce(ctx, action, typ, username, *externalID, amount)
	}

	var err error
	for attempt := 0; attempt < maxGeneratedIDAttempts; attempt++ {
		id, genErr := e.nextID()
		if genErr != nil {
			return nil, e.internal(action, username, genErr)
		}
		var tr *store.Transaction
		tr, err = e.applyOnce(ctx, action, typ, username, id, amount)
		if !errors.Is(err, ErrDuplicateTransaction) {
			return tr, err
		}
		if attempt+1 < maxGeneratedIDAttempts {
			e.metrics.retriedGeneratedID()
			log.Warn().Int64("transaction_id", id).Int("attempt", attempt+1).Msg("generated_id_collision")
		}
	}
	return nil, err
}

func (e *Engine) applyOnce(ctx context.Context, action store.ActionType, typ store.TransactionType, username string, externalID int64, amount decimal.Decimal) (*store.Transaction, error) {
	var saved *store.Transaction
	err := e.repo.InTx(ctx, func(tx store.Tx) error {
		if _, err := tx.FindTransactionByExternalID(ctx, externalID); err == nil {
			return ErrDuplicateTransaction
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		p, err := tx.LockPlayerByUsername(ctx, username)
		if errors.Is(err, store.ErrNotFound) {
			return ErrPlayerNotFound
		}
		if err != nil {
			return err
		}

		before := p.Balance
		after := before.Add(amount)
		if typ == store.TransactionDebit {
			if before.LessThan(amount) {
				return ErrInsufficientFunds
			}
			after = before.Sub(amount)
		}
		if !after.LessThan(maxAmount) {
			return ErrInvalidAmount
		}

		saved, err = tx.SaveTransaction(ctx, store.Transaction{
			ExternalID:    externalID,
			Type:          typ,
			Amount:        amount,
			PlayerID:      p.ID,
			BalanceBefore: before,
			BalanceAfter:  after,
		})
		if errors.Is(err, store.ErrDuplicate) {
			return ErrDuplicateTransaction
		}
		if err != nil {
			return err
		}
		p.Balance = after
		return tx.UpdatePlayer(ctx, *p)
	})
	switch {
	case err == nil:
	case isDomainError(err):
		return nil, err
	case errors.Is(err, store.ErrDuplicate):
		return nil, ErrDuplicateTransaction
	default:
		return nil, e.internal(action, username, err)
	}

	log.Info().
		Str("player", username).
		Str("type", string(typ)).
		Int64("transaction_id", externalID).
		Str("amount", amount.String()).
		Str("balance_after", saved.BalanceAfter.String()).
		Msg("transaction_applied")
	return saved, nil
}

func (e *Engine) findPlayer(ctx context.Context, action store.ActionType, username string) (*store.Player, error) {
	p, err := e.repo.FindPlayerByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrPlayerNotFound
	case err != nil:
		return nil, e.internal(action, username, err)
	}
	return p, nil
}

// internal logs a storage fault and hides it behind ErrInternal.
func (e *Engine) internal(action store.ActionType, username string, err error) error {
	e.metrics.internalError(action)
	log.Error().Err(err).Str("action", string(action)).Str("player", username).Msg("ledger_store_error")
	return ErrInternal
}

func (e *Engine) track(ctx context.Context, username string, action store.ActionType, start time.Time, errp *error) {
	result := audit.Result(*errp)
	e.audit.Record(ctx, username, action, result)
	e.metrics.observe(action, result, time.Since(start))
}

func (e *Engine) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.opTimeout)
}

func actionFor(typ store.TransactionType) store.ActionType {
	if typ == store.TransactionDebit {
		return store.ActionDebitTransaction
	}
	return store.ActionCreditTransaction
}
