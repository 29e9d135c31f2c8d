package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
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
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
	"github.com/feral-file/ff-ledger-sync/internal/providers/ethereum"
	"github.com/feral-file/ff-ledger-sync/internal/providers/jetstream"
	"github.com/feral-file/ff-ledger-sync/internal/providers/temporal"
	"github.com/feral-file/ff-ledger-sync/internal/reconciler"
	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcileWorkerConfig(*configFile, *envPath)
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
			"service": "reconcile-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Reconcile Worker")

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

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.IPFS.FetchTimeout, cfg.IPFS.MaxElapsedTime)

	// Connect to the ledger
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
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.Int64("chain_id", cfg.Ethereum.ChainID))

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
	} else {
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	// Initialize reconciler
	normalizer := metadata.NewNormalizer(cfg.IPFS.PreferredGateway, cfg.IPFS.FallbackGateways, adapter.NewBase64())
	resolver := ingest.NewResolver(ledger, normalizer, metadata.NewFetcher(httpClient, cfg.IPFS.FetchTimeout))

	startBlocks := make(map[string]uint64, len(cfg.Ethereum.NFTContracts))
	requests := make([]workflows.ReconcileRequest, 0, len(cfg.Ethereum.NFTContracts))
	for _, contract := range cfg.Ethereum.NFTContracts {
		startBlocks[contract.Address] = contract.StartBlock
		requests = append(requests, workflows.ReconcileRequest{
			ContractAddress: contract.Address,
			UpperBound:      cfg.Reconciler.DefaultUpperBound,
		})
	}

	gapReconciler := reconciler.NewReconciler(ctx, reconciler.Config{
		RequestDelay:  cfg.Reconciler.RequestDelay,
		Confirmations: cfg.Reconciler.Confirmations,
		ChunkSize:     cfg.Reconciler.ChunkSize,
		PoolSize:      cfg.Reconciler.PoolSize,
		StartBlocks:   startBlocks,
	}, ledger, dataStore, resolver, publisher, clockAdapter)
	executor := workflows.NewExecutor(gapReconciler)

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.Fatal("Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create Temporal worker
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.ReconcileTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors:                       []interceptor.WorkerInterceptor{temporal.NewSentryActivityInterceptor()},
		})

	workerCore := workflows.NewWorkerCore(executor, workflows.WorkerCoreConfig{
		ChunkSize: cfg.Reconciler.ChunkSize,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.ReconcileContract)
	temporalWorker.RegisterWorkflow(workerCore.ReconcileContracts)

	// Register activities
	temporalWorker.RegisterActivity(executor.DiscoverHighest)
	temporalWorker.RegisterActivity(executor.ReconcileRange)
	logger.InfoCtx(ctx, "Registered workflows and activities", zap.String("task_queue", cfg.Temporal.ReconcileTaskQueue))

	if err := temporalWorker.Start(); err != nil {
		logger.Fatal("Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Scheduled reconciliation of every configured contract
	if cfg.Reconciler.CronSchedule != "" && len(requests) > 0 {
		launcher := workflows.NewLauncher(temporalClient, cfg.Temporal.ReconcileTaskQueue)
		if err := launcher.EnsureCron(ctx, cfg.Reconciler.CronSchedule, requests); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to schedule reconciliation: %w", err))
		}
	}

	// Metrics endpoint
	go func() {
		if err := metrics.Serve(ctx, cfg.Metrics.ListenAddress); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "metrics"))
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	temporalWorker.Stop()
	cancel()
	logger.Info("Reconcile worker stopped")
}
