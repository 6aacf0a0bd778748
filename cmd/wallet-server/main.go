package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"player-wallet/internal/audit"
	"player-wallet/internal/auth"
	"player-wallet/internal/config"
	"player-wallet/internal/history"
	"player-wallet/internal/ledger"
	"player-wallet/internal/logging"
	"player-wallet/internal/store"
	"player-wallet/internal/store/memory"
	httptransport "player-wallet/internal/transport/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		panic(err)
	}

	repo, closeRepo, err := openRepository(cfg.Server)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Server.StoreDriver).Msg("store init failed")
	}
	defer closeRepo()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engine := ledger.New(
		repo,
		audit.NewStoreSink(repo),
		auth.BcryptHasher{Cost: cfg.Server.BcryptCost},
		ledger.WithMetrics(ledger.NewMetrics(reg)),
		ledger.WithOpTimeout(cfg.Server.LedgerOpTimeout),
	)
	seedAdmin(engine, cfg.Server)

	tokens, err := auth.NewTokenManager(cfg.Server.JWTSecret, cfg.Server.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager init failed")
	}

	r := httptransport.NewRouter(httptransport.Deps{
		Engine:  engine,
		History: history.New(repo, repo, repo),
		Tokens:  tokens,
		DB:      repo,
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Str("driver", cfg.Server.StoreDriver).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server stopped")
		return
	}
	log.Info().Msg("server stopped")
}

func openRepository(cfg config.ServerConfig) (store.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("using in-memory store; balances are lost on restart")
		return memory.New(), func() {}, nil
	default:
		st, err := store.New(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := st.Ping(context.Background()); err != nil {
			st.Close()
			return nil, nil, err
		}
		return st, st.Close, nil
	}
}

func seedAdmin(engine *ledger.Engine, cfg config.ServerConfig) {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return
	}
	created, err := engine.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Str("admin", cfg.AdminUsername).Msg("seed admin failed")
	}
	if created {
		log.Info().Str("admin", cfg.AdminUsername).Msg("admin seeded")
	}
}
