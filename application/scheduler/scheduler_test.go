package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	timeout time.Duration
	calls   int
	err     error
}

func (f *fakeOrders) CancelExpired(_ context.Context, timeout time.Duration) (int, error) {
	f.calls++
	f.timeout = timeout
	return 2, f.err
}

type fakeOutbox struct {
	before time.Time
}

func (f *fakeOutbox) PurgePublished(_ context.Context, before time.Time) (int64, error) {
	f.before = before
	return 7, nil
}

func TestJobs(t *testing.T) {
	orders := &fakeOrders{}
	outbox := &fakeOutbox{}
	s := New(config.SchedulerConfig{OrderTimeout: 30 * time.Minute, CancelSpec: "0 * * * * *", PurgeSpec: "0 30 3 * * *"}, 24*time.Hour, orders, outbox)
	now := time.Date(2026, 3, 1, 3, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.CancelExpiredOrders(context.Background()))
	assert.Equal(t, 30*time.Minute, orders.timeout)

	require.NoError(t, s.PurgeOutbox(context.Background()))
	assert.Equal(t, now.Add(-24*time.Hour), outbox.before)

	orders.err = errors.New("db down")
	assert.Error(t, s.CancelExpiredOrders(context.Background()))
}

func TestRunStopsWithContext(t *testing.T) {
	orders := &fakeOrders{}
	s := New(config.SchedulerConfig{OrderTimeout: time.Minute, CancelSpec: "* * * * * *", PurgeSpec: "0 30 3 * * *"}, time.Hour, orders, &fakeOutbox{})

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	assert.GreaterOrEqual(t, orders.calls, 1)
}

func TestRunRejectsBadSpec(t *testing.T) {
	s := New(config.SchedulerConfig{CancelSpec: "every minute"}, 0, &fakeOrders{}, &fakeOutbox{})
	assert.Error(t, s.Run(context.Background()))
}
