package audit

import (
	"context"

	"player-wallet/internal/store"

	"github.com/rs/zerolog/log"
)

// Sink records one audit entry per wallet operation. Implementations must not
// report failures to the caller.
type Sink interface {
	Record(ctx context.Context, player string, action store.ActionType, result store.AuditType)
}

type StoreSink struct {
	Store store.AuditStore
}

func NewStoreSink(s store.AuditStore) *StoreSink {
	return &StoreSink{Store: s}
}

func (s *StoreSink) Record(ctx context.Context, player string, action store.ActionType, result store.AuditType) {
	// The operation context may already be past its deadline.
	ctx = context.WithoutCancel(ctx)
	if _, err := s.Store.SaveAudit(ctx, store.Audit{
		PlayerFullName: player,
		ActionType:     action,
		AuditType:      result,
	}); err != nil {
		log.Error().
			Err(err).
			Str("player", player).
			Str("action", string(action)).
			Str("result", string(result)).
			Msg("audit_write_failed")
	}
}

// Result maps an operation error to its audit outcome.
func Result(err error) store.AuditType {
	if err != nil {
		return store.AuditFail
	}
	return store.AuditSuccess
}
