package supervisor_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-ledger-sync/internal/mocks"
	"github.com/feral-file/ff-ledger-sync/internal/supervisor"
)

type fakeWorker struct {
	name  string
	calls atomic.Int32
	run   func(ctx context.Context, call int32) error
}

func (f *fakeWorker) Name() string { return f.name }

func (f *fakeWorker) Start(ctx context.Context) error {
	return f.run(ctx, f.calls.Add(1))
}

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func immediately() <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestRunRestartsFailedWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().After(time.Second).DoAndReturn(func(time.Duration) <-chan time.Time {
		return immediately()
	}).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flaky := &fakeWorker{name: "flaky", run: func(ctx context.Context, call int32) error {
		switch call {
		case 1:
			return errors.New("rpc unreachable")
		case 2:
			panic("nil pointer")
		default:
			cancel()
			return blockUntilDone(ctx)
		}
	}}

	done := make(chan struct{})
	go func() {
		supervisor.New(supervisor.Config{RestartDelay: time.Second}, clock, flaky).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker was not restarted after each failure")
	}
	assert.Equal(t, int32(3), flaky.calls.Load())
}

func TestRunIsolatesWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().After(gomock.Any()).Return(make(chan time.Time)).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthyStarted := make(chan struct{})
	healthy := &fakeWorker{name: "healthy", run: func(ctx context.Context, _ int32) error {
		close(healthyStarted)
		return blockUntilDone(ctx)
	}}
	failing := &fakeWorker{name: "failing", run: func(ctx context.Context, _ int32) error {
		<-healthyStarted
		cancel()
		return errors.New("boom")
	}}

	done := make(chan struct{})
	go func() {
		supervisor.New(supervisor.Config{}, clock, healthy, failing).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop after cancellation")
	}
	assert.Equal(t, int32(1), healthy.calls.Load())
	assert.Equal(t, int32(1), failing.calls.Load())
}

func TestRunDoesNotRestartFinishedWorker(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)

	oneShot := &fakeWorker{name: "one-shot", run: func(context.Context, int32) error {
		return nil
	}}

	supervisor.New(supervisor.Config{}, clock, oneShot).Run(context.Background())

	assert.Equal(t, int32(1), oneShot.calls.Load())
}
