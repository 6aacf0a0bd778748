package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"player-wallet/internal/store"
)

// Storage is an in-memory store.Repository. Units of work hold a mutex per
// locked player, so operations on different players proceed in parallel.
type Storage struct {
	mu sync.RWMutex

	players    map[string]store.Player
	byUsername map[string]string

	transactions map[string]store.Transaction
	byExternalID map[int64]string
	reserved     map[int64]struct{}

	audits []store.Audit

	locksMu     sync.Mutex
	playerLocks map[string]*sync.Mutex
}

var _ store.Repository = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		players:      make(map[string]store.Player),
		byUsername:   make(map[string]string),
		transactions: make(map[string]store.Transaction),
		byExternalID: make(map[int64]string),
		reserved:     make(map[int64]struct{}),
		playerLocks:  make(map[string]*sync.Mutex),
	}
}

func (s *Storage) Ping(context.Context) error { return nil }

// Player operations

func (s *Storage) FindPlayerByID(_ context.Context, id string) (*store.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Storage) FindPlayerByUsername(_ context.Context, username string) (*store.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerByUsernameLocked(username)
}

func (s *Storage) playerByUsernameLocked(username string) (*store.Player, error) {
	id, ok := s.byUsername[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	p := s.players[id]
	return &p, nil
}

func (s *Storage) ListPlayers(context.Context) ([]store.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Storage) SavePlayer(_ context.Context, p store.Player) (*store.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUsername[p.Username]; ok {
		return nil, fmt.Errorf("%w: username %q", store.ErrDuplicate, p.Username)
	}
	if p.ID == "" {
		p.ID = store.NewID()
	}
	if p.Role == "" {
		p.Role = store.RoleUser
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	s.players[p.ID] = p
	s.byUsername[p.Username] = p.ID
	return &p, nil
}

func (s *Storage) UpdatePlayer(_ context.Context, p store.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatePlayerLocked(p)
}

func (s *Storage) updatePlayerLocked(p store.Player) error {
	prev, ok := s.players[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	if p.Username != prev.Username {
		if _, taken := s.byUsername[p.Username]; taken {
			return fmt.Errorf("%w: username %q", store.ErrDuplicate, p.Username)
		}
		delete(s.byUsername, prev.Username)
		s.byUsername[p.Username] = p.ID
	}
	p.CreatedAt = prev.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.players[p.ID] = p
	return nil
}

func (s *Storage) DeletePlayer(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[id]
	if !ok {
		return false, nil
	}
	delete(s.players, id)
	delete(s.byUsername, p.Username)
	s.dropPlayerLock(id)
	for txID, tr := range s.transactions {
		if tr.PlayerID == id {
			delete(s.transactions, txID)
			delete(s.byExternalID, tr.ExternalID)
		}
	}
	return true, nil
}

func (s *Storage) DeleteAllPlayers(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := len(s.players) > 0
	for id := range s.players {
		s.dropPlayerLock(id)
	}
	s.players = make(map[string]store.Player)
	s.byUsername = make(map[string]string)
	s.transactions = make(map[string]store.Transaction)
	s.byExternalID = make(map[int64]string)
	return had, nil
}

// Transaction operations

func (s *Storage) FindTransactionByID(_ context.Context, id string) (*store.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tr, ok := s.transactions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &tr, nil
}

func (s *Storage) FindTransactionByExternalID(_ context.Context, externalID int64) (*store.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transactionByExternalIDLocked(externalID)
}

func (s *Storage) transactionByExternalIDLocked(externalID int64) (*store.Transaction, error) {
	id, ok := s.byExternalID[externalID]
	if !ok {
		return nil, store.ErrNotFound
	}
	tr := s.transactions[id]
	return &tr, nil
}

func (s *Storage) ListTransactions(context.Context) ([]store.Transaction, error) {
	return s.listTransactions(func(store.Transaction) bool { return true }), nil
}

func (s *Storage) ListTransactionsByPlayer(_ context.Context, playerID string) ([]store.Transaction, error) {
	return s.listTransactions(func(tr store.Transaction) bool { return tr.PlayerID == playerID }), nil
}

func (s *Storage) listTransactions(keep func(store.Transaction) bool) []store.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Transaction, 0)
	for _, tr := range s.transactions {
		if keep(tr) {
			out = append(out, tr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Storage) SaveTransaction(_ context.Context, tr store.Transaction) (*store.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkTransactionLocked(tr); err != nil {
		return nil, err
	}
	saved := s.insertTransactionLocked(tr)
	return &saved, nil
}

func (s *Storage) checkTransactionLocked(tr store.Transaction) error {
	if _, ok := s.players[tr.PlayerID]; !ok {
		return fmt.Errorf("%w: player %q", store.ErrNotFound, tr.PlayerID)
	}
	if _, ok := s.byExternalID[tr.ExternalID]; ok {
		return fmt.Errorf("%w: external id %d", store.ErrDuplicate, tr.ExternalID)
	}
	if _, ok := s.reserved[tr.ExternalID]; ok {
		return fmt.Errorf("%w: external id %d", store.ErrDuplicate, tr.ExternalID)
	}
	return nil
}

func (s *Storage) insertTransactionLocked(tr store.Transaction) store.Transaction {
	if tr.ID == "" {
		tr.ID = store.NewID()
	}
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = time.Now().UTC()
	}
	s.transactions[tr.ID] = tr
	s.byExternalID[tr.ExternalID] = tr.ID
	return tr
}

func (s *Storage) UpdateTransaction(_ context.Context, tr store.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.transactions[tr.ID]
	if !ok {
		return store.ErrNotFound
	}
	if tr.ExternalID != prev.ExternalID {
		if _, taken := s.byExternalID[tr.ExternalID]; taken {
			return fmt.Errorf("%w: external id %d", store.ErrDuplicate, tr.ExternalID)
		}
		delete(s.byExternalID, prev.ExternalID)
		s.byExternalID[tr.ExternalID] = tr.ID
	}
	tr.CreatedAt = prev.CreatedAt
	s.transactions[tr.ID] = tr
	return nil
}

func (s *Storage) DeleteTransaction(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr, ok := s.transactions[id]
	if !ok {
		return false, nil
	}
	delete(s.transactions, id)
	delete(s.byExternalID, tr.ExternalID)
	return true, nil
}

func (s *Storage) DeleteAllTransactions(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := len(s.transactions) > 0
	s.transactions = make(map[string]store.Transaction)
	s.byExternalID = make(map[int64]string)
	return had, nil
}

// Audit operations

func (s *Storage) SaveAudit(_ context.Context, a store.Audit) (*store.Audit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = store.NewID()
	}
	a.CreatedAt = time.Now().UTC()
	s.audits = append(s.audits, a)
	return &a, nil
}

func (s *Storage) ListAudits(context.Context) ([]store.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Audit, len(s.audits))
	copy(out, s.audits)
	return out, nil
}

func (s *Storage) DeleteAllAudits(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := len(s.audits) > 0
	s.audits = nil
	return had, nil
}

func (s *Storage) playerLock(id string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.playerLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.playerLocks[id] = l
	}
	return l
}

func (s *Storage) dropPlayerLock(id string) {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	delete(s.playerLocks, id)
}

func (s *Storage) playerLockCount() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.playerLocks)
}
