package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/messaging"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
)

// STREAM_SUBJECTS covers every subject published by the sync engine
const STREAM_SUBJECTS = "sync.>"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc   adapter.NatsConn
	js   adapter.JetStream
	json adapter.JSON
}

// NewPublisher connects to NATS and makes sure the sync stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:      cfg.StreamName,
		Subjects:  []string{STREAM_SUBJECTS},
		Retention: jetstream.LimitsPolicy,
		Storage:   jetstream.FileStorage,
		MaxAge:    7 * 24 * time.Hour,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:   nc,
		js:   js,
		json: jsonAdapter,
	}, nil
}

// PublishNFTSynced publishes on sync.nft.synced
func (p *publisher) PublishNFTSynced(ctx context.Context, event *domain.NFTSyncedEvent) error {
	if event.EventID == "" {
		event.EventID = ulid.Make().String()
	}
	return p.publish(ctx, domain.SUBJECT_NFT_SYNCED, event.EventID, event)
}

// PublishQuestCredited publishes on sync.quest.credited
func (p *publisher) PublishQuestCredited(ctx context.Context, event *domain.QuestCreditedEvent) error {
	if event.EventID == "" {
		event.EventID = ulid.Make().String()
	}
	return p.publish(ctx, domain.SUBJECT_QUEST_CREDITED, event.EventID, event)
}

// publish sets the event id as the message id so JetStream drops redeliveries
func (p *publisher) publish(ctx context.Context, subject string, eventID string, event interface{}) error {
	logger.DebugCtx(ctx, "Publishing Nats event", zap.String("subject", subject), zap.Any("event", event))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(eventID)); err != nil {
		metrics.EventsPublished.WithLabelValues(subject, metrics.OutcomeFailed).Inc()
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.EventsPublished.WithLabelValues(subject, metrics.OutcomeSuccess).Inc()
	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
