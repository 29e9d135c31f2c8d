package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync engine counters and histograms, partitioned by contract where it matters

const namespace = "ledger_sync"

var (
	// Scanner
	ScannerBlocksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scanner",
		Name:      "blocks_processed_total",
		Help:      "Total blocks committed by the event scanner",
	}, []string{"contract"})

	ScannerTransfers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "scanner",
		Name:      "transfers_total",
		Help:      "Total Transfer events read by the event scanner",
	}, []string{"contract", "kind"})

	ScannerBatchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "scanner",
		Name:      "batch_duration_seconds",
		Help:      "Duration of one scan batch including ledger reads and commit",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"contract"})

	CheckpointBlock = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "checkpoint",
		Name:      "last_processed_block",
		Help:      "Last processed block per contract",
	}, []string{"contract"})

	// Token resolution shared by scanner, reconciler and sweeper
	TokensResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "resolver",
		Name:      "tokens_total",
		Help:      "Token resolutions by source and outcome",
	}, []string{"source", "outcome"})

	RecordsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "nft_records_created_total",
		Help:      "NFT records created by source",
	}, []string{"source"})

	// Reconciler
	ReconcilerProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "probes_total",
		Help:      "ownerOf probes issued by the reconciler",
	}, []string{"contract", "phase"})

	ReconcilerGaps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reconciler",
		Name:      "gaps_total",
		Help:      "Missing token ids found by the reconciler by outcome",
	}, []string{"contract", "outcome"})

	// Sweeper
	SweeperAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sweeper",
		Name:      "attempts_total",
		Help:      "Pending mint retry attempts by outcome",
	}, []string{"outcome"})

	SweeperCycleLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "sweeper",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of one sweep cycle",
		Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
	})

	AlertsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "alert",
		Name:      "sent_total",
		Help:      "Alerts sent by sink",
	}, []string{"sink"})

	// Quest listener
	QuestEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quest",
		Name:      "events_total",
		Help:      "Quest completion events by outcome",
	}, []string{"outcome"})

	QuestWriteRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "quest",
		Name:      "write_retries_total",
		Help:      "Quest ledger write retries after transient errors",
	})

	// Workers
	WorkerRestarts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "restarts_total",
		Help:      "Worker restarts after a failure",
	}, []string{"worker"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "messaging",
		Name:      "published_total",
		Help:      "Events published to JetStream by subject and outcome",
	}, []string{"subject", "outcome"})
)

// Outcome label values
const (
	OutcomeSuccess   = "success"
	OutcomePending   = "pending"
	OutcomeFailed    = "failed"
	OutcomeResolved  = "resolved"
	OutcomeClaimLost = "claim_lost"
	OutcomeCredited  = "credited"
	OutcomeDuplicate = "duplicate"
	OutcomePermanent = "permanent_failure"
	OutcomeTransient = "transient_failure"
	OutcomeInserted  = "inserted"
	OutcomeExisting  = "existing"
)
