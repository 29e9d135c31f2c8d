package alert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/logger"
	"github.com/feral-file/ff-ledger-sync/internal/metrics"
)

const (
	SINK_LOG   = "log"
	SINK_SLACK = "slack"

	// pruneThreshold bounds the cooldown table before expired keys are dropped
	pruneThreshold = 1024
)

// Alert is a single operator notification. Key de-duplicates alerts within the cooldown.
type Alert struct {
	Key     string
	Title   string
	Message string
	Fields  map[string]string
}

// Alerter notifies operators
//
//go:generate mockgen -source=alert.go -destination=../mocks/alerter.go -package=mocks -mock_names=Alerter=MockAlerter
type Alerter interface {
	// Send delivers the alert unless one with the same key was sent within the cooldown.
	// sent is false for suppressed alerts.
	Send(ctx context.Context, alert Alert) (sent bool, err error)
}

// Config holds alert sink configuration
type Config struct {
	SlackWebhookURL string
	Cooldown        time.Duration
}

type alerter struct {
	config     Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
	clock      adapter.Clock

	mu   sync.Mutex
	sent map[string]time.Time
}

// NewAlerter creates an alerter that always logs and posts to Slack when a webhook is configured
func NewAlerter(config Config, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, clock adapter.Clock) Alerter {
	return &alerter{
		config:     config,
		httpClient: httpClient,
		json:       jsonAdapter,
		clock:      clock,
		sent:       make(map[string]time.Time),
	}
}

func (a *alerter) Send(ctx context.Context, alert Alert) (bool, error) {
	if !a.reserve(alert.Key) {
		logger.DebugCtx(ctx, "Alert suppressed by cooldown", zap.String("key", alert.Key))
		return false, nil
	}

	fields := []zap.Field{zap.String("alert", alert.Key)}
	for _, k := range sortedKeys(alert.Fields) {
		fields = append(fields, zap.String(k, alert.Fields[k]))
	}
	logger.ErrorCtx(ctx, errors.New(alert.Title+": "+alert.Message), fields...)
	metrics.AlertsSent.WithLabelValues(SINK_LOG).Inc()

	if a.config.SlackWebhookURL == "" {
		return true, nil
	}

	if err := a.postSlack(ctx, alert); err != nil {
		return true, fmt.Errorf("failed to post slack alert: %w", err)
	}
	metrics.AlertsSent.WithLabelValues(SINK_SLACK).Inc()

	return true, nil
}

// reserve records the send time of key unless it is still cooling down
func (a *alerter) reserve(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	if last, ok := a.sent[key]; ok && now.Sub(last) < a.config.Cooldown {
		return false
	}

	if len(a.sent) >= pruneThreshold {
		for k, t := range a.sent {
			if now.Sub(t) >= a.config.Cooldown {
				delete(a.sent, k)
			}
		}
	}

	a.sent[key] = now
	return true
}

type slackMessage struct {
	Text string `json:"text"`
}

func (a *alerter) postSlack(ctx context.Context, alert Alert) error {
	var text strings.Builder
	fmt.Fprintf(&text, "*%s*\n%s", alert.Title, alert.Message)
	for _, k := range sortedKeys(alert.Fields) {
		fmt.Fprintf(&text, "\n• %s: `%s`", k, alert.Fields[k])
	}

	body, err := a.json.Marshal(slackMessage{Text: text.String()})
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	_, err = a.httpClient.Post(ctx, a.config.SlackWebhookURL, "application/json", bytes.NewReader(body))
	return err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
