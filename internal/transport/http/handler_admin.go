package httptransport

import (
	"context"
	"net/http"

	"player-wallet/internal/history"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type AdminHandlers struct {
	db      Pinger
	history *history.Reader
}

func NewAdminHandlers(db Pinger, reader *history.Reader) *AdminHandlers {
	return &AdminHandlers{db: db, history: reader}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": "down"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) Audits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.history.AllAudits(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": page(items, limit, offset), "total": len(items), "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) Players() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.history.AllPlayers(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": page(items, limit, offset), "total": len(items), "limit": limit, "offset": offset})
	}
}
