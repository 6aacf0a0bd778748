package httptransport

import (
	"errors"
	"net/http"

	"player-wallet/internal/ledger"
)

var ledgerErrorStatus = []struct {
	err    error
	status int
	code   string
}{
	{ledger.ErrInvalidCredentials, http.StatusBadRequest, "invalid_request"},
	{ledger.ErrAlreadyExists, http.StatusConflict, "already_exists"},
	{ledger.ErrPlayerNotFound, http.StatusNotFound, "player_not_found"},
	{ledger.ErrBadCredentials, http.StatusUnauthorized, "bad_credentials"},
	{ledger.ErrInvalidID, http.StatusBadRequest, "invalid_id"},
	{ledger.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{ledger.ErrDuplicateTransaction, http.StatusConflict, "duplicate_transaction"},
	{ledger.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
}

func writeLedgerError(w http.ResponseWriter, err error) {
	for _, m := range ledgerErrorStatus {
		if errors.Is(err, m.err) {
			WriteHTTPError(w, m.status, m.code)
			return
		}
	}
	WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
}
