package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"player-wallet/internal/auth"
	"player-wallet/internal/ledger"
	"player-wallet/internal/store"

	"github.com/shopspring/decimal"
)

type WalletHandlers struct {
	engine *ledger.Engine
}

func NewWalletHandlers(engine *ledger.Engine) *WalletHandlers {
	return &WalletHandlers{engine: engine}
}

// transactionRequest accepts amount as a JSON number or a decimal string.
type transactionRequest struct {
	TransactionID *int64          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type transactionOp func(ctx context.Context, username string, externalID *int64, amount decimal.Decimal) (*store.Transaction, error)

func (h *WalletHandlers) Balance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := auth.IdentityFromContext(r.Context())
		balance, err := h.engine.GetBalance(r.Context(), id.Username)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"username": id.Username, "balance": balance})
	}
}

func (h *WalletHandlers) Credit() http.HandlerFunc {
	return h.transaction(h.engine.Credit)
}

func (h *WalletHandlers) Debit() http.HandlerFunc {
	return h.transaction(h.engine.Debit)
}

func (h *WalletHandlers) transaction(op transactionOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body transactionRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		id, _ := auth.IdentityFromContext(r.Context())
		tr, err := op(r.Context(), id.Username, body.TransactionID, body.Amount)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tr)
	}
}

func (h *WalletHandlers) History() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := auth.IdentityFromContext(r.Context())
		items, err := h.engine.ViewHistory(r.Context(), id.Username)
		if errors.Is(err, ledger.ErrEmptyHistory) {
			items, err = []store.Transaction{}, nil
		}
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	}
}
