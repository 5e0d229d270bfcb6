// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "lpvaultd" serves a two-asset reserve vault over JSON-RPC and streams
// liquidity events over websockets.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lpvault/lpvault/config"
	"github.com/lpvault/lpvault/genesis"
	"github.com/lpvault/lpvault/ledger"
	"github.com/lpvault/lpvault/orderbook"
	"github.com/lpvault/lpvault/pebble"
	"github.com/lpvault/lpvault/roles"
	"github.com/lpvault/lpvault/rpc"
	"github.com/lpvault/lpvault/server"
	"github.com/lpvault/lpvault/trace"
	"github.com/lpvault/lpvault/utils"
	"github.com/lpvault/lpvault/vault"
)

func fatal(l logging.Logger, msg string, fields ...zap.Field) {
	l.Fatal(msg, fields...)
	os.Exit(1)
}

func main() {
	// Load config (an empty path starts with defaults)
	configPath := ""
	switch len(os.Args) {
	case 1:
	case 2:
		configPath = os.Args[1]
	default:
		utils.Outf("{{red}}usage:{{/}} %s [config.json]\n", os.Args[0])
		os.Exit(1)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		utils.Outf("{{red}}cannot load config{{/}}: %v\n", err)
		os.Exit(1)
	}

	logFactory := logging.NewFactory(cfg.LogConfig())
	log, err := logFactory.Make("main")
	if err != nil {
		utils.Outf("{{red}}unable to initialize logger{{/}}: %v\n", err)
		os.Exit(1)
	}
	defer logFactory.Close()

	tracer, err := trace.New(&cfg.TraceConfig)
	if err != nil {
		fatal(log, "cannot create tracer", zap.Error(err))
	}
	defer tracer.Close()

	// Open state (in-memory when no path is configured)
	var (
		db         database.Database
		dbRegistry *prometheus.Registry
	)
	if cfg.DatabasePath == "" {
		db = memdb.New()
		log.Info("using in-memory database")
	} else {
		pdb, registry, err := pebble.New(cfg.DatabasePath, pebble.NewDefaultConfig())
		if err != nil {
			fatal(log, "cannot open database", zap.String("path", cfg.DatabasePath), zap.Error(err))
		}
		db = pdb
		dbRegistry = registry
		log.Info("opened database", zap.String("path", cfg.DatabasePath))
	}
	defer db.Close()

	// Commit genesis (no-op if state already exists)
	gen := genesis.Default()
	if cfg.GenesisPath != "" {
		b, err := os.ReadFile(cfg.GenesisPath)
		if err != nil {
			fatal(log, "cannot open genesis file", zap.String("path", cfg.GenesisPath), zap.Error(err))
		}
		gen, err = genesis.New(b)
		if err != nil {
			fatal(log, "cannot parse genesis file", zap.Error(err))
		}
	}
	ctx := context.Background()
	if err := gen.Commit(ctx, log, tracer, db); err != nil {
		if !errors.Is(err, genesis.ErrAlreadyInitialized) {
			fatal(log, "cannot commit genesis", zap.Error(err))
		}
		log.Info("genesis already committed")
	}

	// Wire the vault
	ldgr := ledger.New(log, tracer, db)
	registry := roles.New(log, tracer, db)
	vaultCfg := gen.VaultConfig()
	book := orderbook.New(log, tracer, ldgr, db, vaultCfg.BaseAsset, vaultCfg.QuoteAsset)
	metrics := prometheus.NewRegistry()
	v, err := vault.New(log, tracer, metrics, vaultCfg, db, ldgr, registry, book)
	if err != nil {
		fatal(log, "cannot create vault", zap.Error(err))
	}
	if err := book.Restore(ctx); err != nil {
		fatal(log, "cannot restore order book", zap.Error(err))
	}
	if err := v.Init(ctx); err != nil {
		fatal(log, "cannot initialize vault", zap.Error(err))
	}

	// Stream committed events to websocket subscribers
	webSocketServer, pubsubServer, err := rpc.NewWebSocketServer(log, tracer, cfg.StreamingBacklogSize)
	if err != nil {
		fatal(log, "cannot create websocket server", zap.Error(err))
	}
	v.Subscribe(webSocketServer.Subscription())

	// Create server
	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		fatal(log, "cannot create listener", zap.Error(err))
	}
	srv, err := server.New(
		log, listener, cfg.HTTPConfig,
		cfg.AllowedOrigins, cfg.AllowedHosts, cfg.ShutdownTimeout,
		&accessLog{log: log},
	)
	if err != nil {
		fatal(log, "cannot create server", zap.Error(err))
	}

	c := &controller{
		tracer: tracer,
		gen:    gen,
		vault:  v,
		ledger: ldgr,
		roles:  registry,
		book:   book,
		expiry: cfg.RequestExpiryWindow,
	}
	jsonHandler, err := server.NewHandler(rpc.NewJSONRPCServer(c), rpc.Name)
	if err != nil {
		fatal(log, "cannot create handler", zap.Error(err))
	}
	if err := srv.AddRoute(rpc.JSONRPCEndpoint, jsonHandler); err != nil {
		fatal(log, "cannot add rpc route", zap.Error(err))
	}
	if err := srv.AddRoute(rpc.WebsocketEndpoint, pubsubServer); err != nil {
		fatal(log, "cannot add events route", zap.Error(err))
	}
	gatherers := prometheus.Gatherers{metrics}
	if dbRegistry != nil {
		gatherers = append(gatherers, dbRegistry)
	}
	if err := srv.AddRoute("/metrics", promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})); err != nil {
		fatal(log, "cannot add metrics route", zap.Error(err))
	}

	// Start server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		select {
		case sig := <-sigs:
			log.Info("triggering server shutdown", zap.Any("signal", sig))
		case <-gctx.Done():
		}
		return srv.Shutdown()
	})
	log.Info("server exited", zap.Error(g.Wait()))
}

// accessLog traces every request at debug level.
type accessLog struct {
	log logging.Logger
}

func (a *accessLog) WrapHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		handler.ServeHTTP(w, r)
		a.log.Debug("request served",
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
