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
	"github.com/feral-file/ff-ledger-sync/internal/alert"
	"github.com/feral-file/ff-ledger-sync/internal/block"
	"github.com/feral-file/ff-ledger-sync/internal/checkpoint"
	"github.com/feral-file/ff-ledger-sync/internal/config"
	"github.com/feral-file/ff-ledger-sync/internal/ingest"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/messaging"
	"github.com/feral-file/ff-ledger-sync/internal/metadata"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
	"github.com/feral-file/ff-ledger-sync/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger-sync/internal/providers/jetstream"
	"github.com/feral-file/ff-ledger-sync/internal/quest"
	"github.com/feral-file/ff-ledger-sync/internal/scanner"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/supervisor"
	"github.com/feral-file/ff-ledger-sync/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSyncWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sync-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sync Worker")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	dataStore := store.NewPGStore(db)
	tracker := checkpoint.NewTracker(dataStore)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.IPFS.FetchTimeout, cfg.IPFS.MaxElapsedTime)

	// Connect to the ledger
	ethDialer := adapter.NewEthClientDialer()
	ethClient, err := ethDialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.Fatal("Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer ethClient.Close()
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.Int64("chain_id", cfg.Ethereum.ChainID))

	limiter := rate.NewLimiter(rate.Limit(cfg.Ethereum.RequestsPerSecond), cfg.Ethereum.RequestBurst)
	ledgerConfig := ethereum.Config{
		CallTimeout:   cfg.Ethereum.CallTimeout,
		LogRangeLimit: cfg.Ethereum.LogRangeLimit,
	}
	blockConfig := block.Config{
		TTL:         2 * time.Second,
		StaleWindow: 30 * time.Second,
	}
	ledger := ethereum.NewLedgerReader(ethClient,
		block.NewBlockProvider(ethereum.NewEthereumBlockFetcher(ethClient), blockConfig, clockAdapter),
		limiter, ledgerConfig)

	// Initialize event publisher
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, events will not be published")
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	// Initialize metadata pipeline
	normalizer := metadata.NewNormalizer(cfg.IPFS.PreferredGateway, cfg.IPFS.FallbackGateways, adapter.NewBase64())
	fetcher := metadata.NewFetcher(httpClient, cfg.IPFS.FetchTimeout)
	resolver := ingest.NewResolver(ledger, normalizer, fetcher)

	alerter := alert.NewAlerter(alert.Config{
		SlackWebhookURL: cfg.Alert.SlackWebhookURL,
		Cooldown:        cfg.Alert.Cooldown,
	}, adapter.NewHTTPClient(10*time.Second, 30*time.Second), jsonAdapter, clockAdapter)

	var workers []supervisor.Worker

	// Event scanner
	if len(cfg.Ethereum.NFTContracts) > 0 {
		contracts := make([]scanner.Contract, 0, len(cfg.Ethereum.NFTContracts))
		for _, contract := range cfg.Ethereum.NFTContracts {
			contracts = append(contracts, scanner.Contract{Address: contract.Address, StartBlock: contract.StartBlock})
		}
		workers = append(workers, scanner.NewScanner(scanner.Config{
			Contracts:     contracts,
			Interval:      cfg.Scanner.Interval,
			BatchSize:     cfg.Scanner.BatchSize,
			Confirmations: cfg.Scanner.Confirmations,
		}, ledger, dataStore, tracker, resolver, publisher, clockAdapter))
	}

	// Pending mint sweeper
	pendingSweeper := sweeper.NewPendingMintSweeper(sweeper.PendingMintSweeperConfig{
		Interval:       cfg.Sweeper.Interval,
		BatchSize:      cfg.Sweeper.BatchSize,
		Lease:          cfg.Sweeper.Lease,
		PoolSize:       cfg.Sweeper.PoolSize,
		AlertThreshold: cfg.Sweeper.AlertThreshold,
	}, dataStore, ledger, resolver, alerter, publisher, clockAdapter)
	workers = append(workers, pendingSweeper)

	// Quest listener over a websocket connection
	if cfg.Ethereum.QuestContract.Address != "" {
		wsClient, err := ethDialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
		if err != nil {
			logger.Fatal("Failed to dial Ethereum websocket", zap.Error(err))
		}
		defer wsClient.Close()

		questLedger := ethereum.NewLedgerReader(wsClient,
			block.NewBlockProvider(ethereum.NewEthereumBlockFetcher(wsClient), blockConfig, clockAdapter),
			limiter, ledgerConfig)

		listener, err := quest.NewListener(quest.Config{
			ContractAddress: cfg.Ethereum.QuestContract.Address,
			StartBlock:      cfg.Ethereum.QuestContract.StartBlock,
			Catalog:         cfg.Quest.Catalog,
			RetryInitial:    cfg.Quest.RetryInitial,
			RetryMaxRetries: cfg.Quest.RetryMaxRetries,
		}, questLedger, dataStore, tracker, publisher, clockAdapter)
		if err != nil {
			logger.Fatal("Failed to create quest listener", zap.Error(err))
		}
		workers = append(workers, listener)
	}

	// Metrics endpoint
	go func() {
		if err := metrics.Serve(ctx, cfg.Metrics.ListenAddress); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "metrics"))
		}
	}()

	done := make(chan struct{})
	go func() {
		supervisor.New(supervisor.Config{}, clockAdapter, workers...).Run(ctx)
		close(done)
	}()
	logger.InfoCtx(ctx, "Sync worker started", zap.Int("workers", len(workers)))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := pendingSweeper.Stop(shutdownCtx); err != nil {
		logger.Warn("Pending mint sweeper did not stop in time", zap.Error(err))
	}
	cancel()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("Workers did not stop before the shutdown deadline")
	}

	logger.Info("Sync worker stopped")
}
