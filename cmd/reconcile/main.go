package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/block"
	"github.com/feral-file/ff-ledger-sync/internal/config"
	"github.com/feral-file/ff-ledger-sync/internal/ingest"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/messaging"
	"github.com/feral-file/ff-ledger-sync/internal/metadata"
	"github.com/feral-file/ff-ledger-sync/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger-sync/internal/reconciler"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	contract   = flag.String("contract", "", "Contract to reconcile; empty reconciles every configured contract")
	upperBound = flag.Uint64("upper", 0, "Upper bound of the highest token search; 0 uses the configured default")
	fromID     = flag.Uint64("from", 0, "First token id of an explicit range; requires -to")
	toID       = flag.Uint64("to", 0, "Last token id of an explicit range")
)

func main() {
	flag.Parse()

	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcileCLIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "reconcile",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	targets, err := resolveTargets(cfg)
	if err != nil {
		logger.Fatal("Invalid arguments", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.IPFS.FetchTimeout, cfg.IPFS.MaxElapsedTime)

	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.Fatal("Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()
	ledger := ethereum.NewLedgerReader(ethClient,
		block.NewBlockProvider(ethereum.NewEthereumBlockFetcher(ethClient), block.Config{
			TTL:         2 * time.Second,
			StaleWindow: 30 * time.Second,
		}, clockAdapter),
		rate.NewLimiter(rate.Limit(cfg.Ethereum.RequestsPerSecond), cfg.Ethereum.RequestBurst),
		ethereum.Config{
			CallTimeout:   cfg.Ethereum.CallTimeout,
			LogRangeLimit: cfg.Ethereum.LogRangeLimit,
		})

	normalizer := metadata.NewNormalizer(cfg.IPFS.PreferredGateway, cfg.IPFS.FallbackGateways, adapter.NewBase64())
	resolver := ingest.NewResolver(ledger, normalizer, metadata.NewFetcher(httpClient, cfg.IPFS.FetchTimeout))

	startBlocks := make(map[string]uint64, len(cfg.Ethereum.NFTContracts))
	for _, c := range cfg.Ethereum.NFTContracts {
		startBlocks[c.Address] = c.StartBlock
	}

	// Events are published by the long-running workers only
	gapReconciler := reconciler.NewReconciler(ctx, reconciler.Config{
		RequestDelay:  cfg.Reconciler.RequestDelay,
		Confirmations: cfg.Reconciler.Confirmations,
		ChunkSize:     cfg.Reconciler.ChunkSize,
		PoolSize:      cfg.Reconciler.PoolSize,
		StartBlocks:   startBlocks,
	}, ledger, dataStore, resolver, messaging.NewNoopPublisher(), clockAdapter)

	bound := *upperBound
	if bound == 0 {
		bound = cfg.Reconciler.DefaultUpperBound
	}

	failed := false
	for _, target := range targets {
		var report *reconciler.Report
		if *toID > 0 {
			report, err = gapReconciler.ReconcileRange(ctx, target, *fromID, *toID)
		} else {
			report, err = gapReconciler.Reconcile(ctx, target, bound)
		}
		if err != nil {
			failed = true
			logger.ErrorCtx(ctx, err, zap.String("contract", target))
			continue
		}

		out, err := jsonAdapter.Marshal(report)
		if err != nil {
			logger.ErrorCtx(ctx, err)
			continue
		}
		fmt.Println(string(out))
	}

	if failed {
		logger.Flush(2 * time.Second)
		os.Exit(1)
	}
}

// resolveTargets returns the contracts named by the flags, or every configured contract
func resolveTargets(cfg *config.ReconcileCLIConfig) ([]string, error) {
	if (*fromID > 0) != (*toID > 0) {
		return nil, fmt.Errorf("-from and -to must be given together")
	}
	if *fromID > *toID {
		return nil, fmt.Errorf("-from %d is above -to %d", *fromID, *toID)
	}

	if *contract != "" {
		if !types.IsEthereumAddress(*contract) {
			return nil, fmt.Errorf("invalid contract address %q", *contract)
		}
		return []string{types.NormalizeAddress(*contract)}, nil
	}

	if len(cfg.Ethereum.NFTContracts) == 0 {
		return nil, fmt.Errorf("no contract given and none configured")
	}
	targets := make([]string, 0, len(cfg.Ethereum.NFTContracts))
	for _, c := range cfg.Ethereum.NFTContracts {
		targets = append(targets, c.Address)
	}
	return targets, nil
}
