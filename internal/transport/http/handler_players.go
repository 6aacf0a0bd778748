package httptransport

import (
	"encoding/json"
	"net/http"

	"player-wallet/internal/ledger"
	"player-wallet/internal/store"
)

type TokenIssuer interface {
	Issue(username string, role store.Role) (string, error)
}

type PlayerHandlers struct {
	engine *ledger.Engine
	tokens TokenIssuer
}

func NewPlayerHandlers(engine *ledger.Engine, tokens TokenIssuer) *PlayerHandlers {
	return &PlayerHandlers{engine: engine, tokens: tokens}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *PlayerHandlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		p, err := h.engine.Register(r.Context(), body.Username, body.Password)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func (h *PlayerHandlers) Authorize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		id, err := h.engine.Authenticate(r.Context(), body.Username, body.Password)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		token, err := h.tokens.Issue(id.Username, id.Role)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": token})
	}
}
