package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"player-wallet/internal/store"
)

type memTx struct {
	s *Storage

	held    map[string]*sync.Mutex
	staged  []store.Transaction
	updates map[string]store.Player
}

// InTx stages writes and applies them under the storage mutex on success.
// External IDs are reserved as soon as SaveTransaction is called, so two units
// of work can never both insert the same ID.
func (s *Storage) InTx(ctx context.Context, fn func(store.Tx) error) error {
	t := &memTx{
		s:       s,
		held:    make(map[string]*sync.Mutex),
		updates: make(map[string]store.Player),
	}
	defer t.release()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(t); err != nil {
		t.discard()
		return err
	}
	return t.commit()
}

func (t *memTx) LockPlayerByUsername(_ context.Context, username string) (*store.Player, error) {
	t.s.mu.RLock()
	p, err := t.s.playerByUsernameLocked(username)
	t.s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if staged, ok := t.updates[p.ID]; ok {
		return &staged, nil
	}
	if _, ok := t.held[p.ID]; !ok {
		l := t.s.playerLock(p.ID)
		l.Lock()
		t.held[p.ID] = l
	}

	// Re-read under the player lock; the row may have changed while waiting.
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	current, ok := t.s.players[p.ID]
	if !ok || current.Username != username {
		return nil, store.ErrNotFound
	}
	return &current, nil
}

func (t *memTx) FindTransactionByExternalID(_ context.Context, externalID int64) (*store.Transaction, error) {
	for _, tr := range t.staged {
		if tr.ExternalID == externalID {
			cp := tr
			return &cp, nil
		}
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	return t.s.transactionByExternalIDLocked(externalID)
}

func (t *memTx) SaveTransaction(_ context.Context, tr store.Transaction) (*store.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if err := t.s.checkTransactionLocked(tr); err != nil {
		return nil, err
	}
	t.s.reserved[tr.ExternalID] = struct{}{}
	if tr.ID == "" {
		tr.ID = store.NewID()
	}
	tr.CreatedAt = time.Now().UTC()
	t.staged = append(t.staged, tr)
	return &tr, nil
}

func (t *memTx) UpdatePlayer(_ context.Context, p store.Player) error {
	if _, ok := t.held[p.ID]; !ok {
		return fmt.Errorf("player %s updated without lock", p.ID)
	}
	t.updates[p.ID] = p
	return nil
}

func (t *memTx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	defer t.unreserveLocked()

	for id := range t.updates {
		if _, ok := t.s.players[id]; !ok {
			return store.ErrNotFound
		}
	}
	for _, tr := range t.staged {
		if _, ok := t.s.players[tr.PlayerID]; !ok {
			return store.ErrNotFound
		}
	}
	for _, tr := range t.staged {
		t.s.insertTransactionLocked(tr)
	}
	for _, p := range t.updates {
		if err := t.s.updatePlayerLocked(p); err != nil {
			return err
		}
	}
	return nil
}

func (t *memTx) discard() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.unreserveLocked()
}

func (t *memTx) unreserveLocked() {
	for _, tr := range t.staged {
		delete(t.s.reserved, tr.ExternalID)
	}
	t.staged = nil
}

func (t *memTx) release() {
	for id, l := range t.held {
		l.Unlock()
		delete(t.held, id)
	}
}
