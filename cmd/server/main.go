package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"splitchain/internal/auth"
	"splitchain/internal/config"
	"splitchain/internal/ledger"
	"splitchain/internal/middleware"
	"splitchain/internal/service"
	"splitchain/internal/storage/sqlite"
	"splitchain/pkg/api"
	"splitchain/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel)
	if cfg.IsDevSecret() {
		slog.Warn("Using the default JWT secret; set JWT_SECRET in production")
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Rebuild the registry from persisted state.
	registry := ledger.NewRegistry()
	records, err := store.LoadLedgers(context.Background())
	if err != nil {
		slog.Error("Failed to load ledgers", "error", err)
		os.Exit(1)
	}
	for _, rec := range records {
		registry.Restore(rec.Group, rec.Members, rec.EverMembers, rec.Expenses)
	}
	slog.Info("Registry restored", "groups", len(records))

	authenticator := auth.NewAuthenticator(store)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	observed := connect.WithInterceptors(middleware.Metrics(), middleware.Logging())
	authed := connect.WithInterceptors(middleware.Metrics(), middleware.Logging(), middleware.RequireAuth(tokens))

	mux := http.NewServeMux()

	authPath, authHandler := api.NewAuthServiceHandler(service.NewAuthService(authenticator, tokens), observed)
	mux.Handle(authPath, authHandler)

	registryPath, registryHandler := api.NewRegistryServiceHandler(service.NewRegistryService(registry, store), authed)
	mux.Handle(registryPath, registryHandler)

	ledgerPath, ledgerHandler := api.NewLedgerServiceHandler(service.NewLedgerService(registry, store), authed)
	mux.Handle(ledgerPath, ledgerHandler)

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// h2c allows HTTP/2 without TLS, which Connect clients expect locally.
	handler := h2c.NewHandler(mux, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
