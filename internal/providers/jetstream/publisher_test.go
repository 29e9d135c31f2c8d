package jetstream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
	"github.com/feral-file/ff-ledger-sync/internal/mocks"
)

type testPublisherMocks struct {
	ctrl   *gomock.Controller
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupTestPublisherMocks(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		ctrl:   ctrl,
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

var testConfig = Config{
	URL:            "nats://localhost:4222",
	StreamName:     "LEDGER_SYNC",
	MaxReconnects:  5,
	ReconnectWait:  time.Second,
	ConnectionName: "sync-worker",
}

func TestNewPublisher(t *testing.T) {
	ctx := context.Background()

	t.Run("ensures stream", func(t *testing.T) {
		tm := setupTestPublisherMocks(t)
		tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
		tm.js.EXPECT().EnsureStream(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, cfg jetstream.StreamConfig) error {
			assert.Equal(t, "LEDGER_SYNC", cfg.Name)
			assert.Equal(t, []string{STREAM_SUBJECTS}, cfg.Subjects)
			return nil
		})

		p, err := NewPublisher(ctx, testConfig, tm.natsJS, adapter.NewJSON())
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("connect failure", func(t *testing.T) {
		tm := setupTestPublisherMocks(t)
		tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(nil, nil, errors.New("no servers available"))

		_, err := NewPublisher(ctx, testConfig, tm.natsJS, adapter.NewJSON())
		assert.ErrorContains(t, err, "no servers available")
	})

	t.Run("stream failure closes connection", func(t *testing.T) {
		tm := setupTestPublisherMocks(t)
		tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
		tm.js.EXPECT().EnsureStream(ctx, gomock.Any()).Return(errors.New("insufficient resources"))
		tm.conn.EXPECT().Close()

		_, err := NewPublisher(ctx, testConfig, tm.natsJS, adapter.NewJSON())
		assert.ErrorContains(t, err, "LEDGER_SYNC")
	})
}

func TestPublisher_PublishNFTSynced(t *testing.T) {
	ctx := context.Background()
	tm := setupTestPublisherMocks(t)
	p := &publisher{nc: tm.conn, js: tm.js, json: adapter.NewJSON()}

	event := &domain.NFTSyncedEvent{
		ContractAddress: "0xabc",
		TokenID:         "274",
		OwnerAddress:    "0xdef",
		Source:          domain.SourceReconciliation,
	}

	tm.js.EXPECT().Publish(ctx, domain.SUBJECT_NFT_SYNCED, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			var decoded domain.NFTSyncedEvent
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, "274", decoded.TokenID)
			assert.NotEmpty(t, decoded.EventID)
			assert.Len(t, opts, 1)
			return &jetstream.PubAck{Stream: "LEDGER_SYNC", Sequence: 1}, nil
		})

	require.NoError(t, p.PublishNFTSynced(ctx, event))
	assert.Len(t, event.EventID, 26)
}

func TestPublisher_PublishQuestCredited(t *testing.T) {
	ctx := context.Background()
	tm := setupTestPublisherMocks(t)
	p := &publisher{nc: tm.conn, js: tm.js, json: adapter.NewJSON()}

	event := &domain.QuestCreditedEvent{
		EventID:        "01JABCDEFGHJKMNPQRSTVWXYZ0",
		UserID:         "user-1",
		QuestType:      domain.QuestTypeDailyCheckIn,
		PointsEarned:   10,
		CompletionDate: "2026-03-01",
	}

	tm.js.EXPECT().Publish(ctx, domain.SUBJECT_QUEST_CREDITED, gomock.Any(), gomock.Any()).
		Return(nil, errors.New("nats: timeout"))

	err := p.PublishQuestCredited(ctx, event)
	assert.ErrorContains(t, err, "failed to publish event")
	assert.Equal(t, "01JABCDEFGHJKMNPQRSTVWXYZ0", event.EventID)
}

func TestPublisher_Close(t *testing.T) {
	tm := setupTestPublisherMocks(t)
	tm.conn.EXPECT().Close()

	p := &publisher{nc: tm.conn, js: tm.js, json: adapter.NewJSON()}
	p.Close()

	(&publisher{}).Close()
}
