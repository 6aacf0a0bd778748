package history

import (
	"context"
	"errors"
	"testing"

	"player-wallet/internal/store"
	"player-wallet/internal/store/memory"

	"github.com/shopspring/decimal"
)

func TestPlayerTransactionsOldestFirst(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	bob, err := st.SavePlayer(ctx, store.Player{Username: "bob"})
	if err != nil {
		t.Fatalf("save bob: %v", err)
	}
	alice, err := st.SavePlayer(ctx, store.Player{Username: "alice"})
	if err != nil {
		t.Fatalf("save alice: %v", err)
	}
	for i, pid := range []string{bob.ID, alice.ID, bob.ID} {
		if _, err := st.SaveTransaction(ctx, store.Transaction{
			ExternalID: int64(i + 1),
			Type:       store.TransactionCredit,
			Amount:     decimal.NewFromInt(1),
			PlayerID:   pid,
		}); err != nil {
			t.Fatalf("save transaction: %v", err)
		}
	}

	r := New(st, st, st)
	items, err := r.PlayerTransactions(ctx, "bob")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 2 || items[0].ExternalID != 1 || items[1].ExternalID != 3 {
		t.Fatalf("unexpected history: %+v", items)
	}
}

func TestPlayerTransactionsUnknownPlayer(t *testing.T) {
	st := memory.New()
	_, err := New(st, st, st).PlayerTransactions(context.Background(), "ghost")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAllAudits(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	_, _ = st.SaveAudit(ctx, store.Audit{PlayerFullName: "bob", ActionType: store.ActionRegistration, AuditType: store.AuditSuccess})
	_, _ = st.SaveAudit(ctx, store.Audit{PlayerFullName: "eve", ActionType: store.ActionAuthorization, AuditType: store.AuditFail})

	items, err := New(st, st, st).AllAudits(ctx)
	if err != nil {
		t.Fatalf("audits: %v", err)
	}
	if len(items) != 2 || items[0].PlayerFullName != "bob" || items[1].AuditType != store.AuditFail {
		t.Fatalf("unexpected audits: %+v", items)
	}
}
