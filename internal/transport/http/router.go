package httptransport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"player-wallet/internal/history"
	"player-wallet/internal/ledger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Tokens interface {
	TokenIssuer
	IdentityResolver
}

type Deps struct {
	Engine  *ledger.Engine
	History *history.Reader
	Tokens  Tokens
	DB      Pinger
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

func NewRouter(d Deps) *chi.Mux {
	playerHandlers := NewPlayerHandlers(d.Engine, d.Tokens)
	walletHandlers := NewWalletHandlers(d.Engine)
	adminHandlers := NewAdminHandlers(d.DB, d.History)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Post("/players/registration", playerHandlers.Register())
		r.Post("/players/authorization", playerHandlers.Authorize())

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(d.Tokens))
			r.Get("/players/balance", walletHandlers.Balance())
			r.Get("/players/history", walletHandlers.History())
			r.With(BodyCaptureMiddleware(4096)).Post("/players/credit", walletHandlers.Credit())
			r.With(BodyCaptureMiddleware(4096)).Post("/players/debit", walletHandlers.Debit())

			r.Route("/admin", func(r chi.Router) {
				r.Use(AdminMiddleware())
				r.Get("/audits", adminHandlers.Audits())
				r.Get("/players", adminHandlers.Players())
			})
		})
	})
	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
