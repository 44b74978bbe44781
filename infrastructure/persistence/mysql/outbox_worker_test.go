package mysql

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"petcare/domain/user"
	"petcare/infrastructure/persistence/mysql/po"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu        sync.Mutex
	published []string
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, eventType)
	return nil
}

func seedEvent(t *testing.T, repo *OutboxRepository, username string) string {
	t.Helper()
	event := user.NewUserRegisteredEvent("id-"+username, username)
	require.NoError(t, repo.SaveEvent(context.Background(), event))
	var row po.OutboxEventPO
	require.NoError(t, repo.db.Where("aggregate_id = ?", "id-"+username).First(&row).Error)
	return row.ID
}

func loadEvent(t *testing.T, repo *OutboxRepository, id string) po.OutboxEventPO {
	t.Helper()
	var row po.OutboxEventPO
	require.NoError(t, repo.db.First(&row, "id = ?", id).Error)
	return row
}

func TestNewOutboxWorker_ValidatesArguments(t *testing.T) {
	repo := NewOutboxRepository(newTestDB(t))
	pub := &recordingPublisher{}

	_, err := NewOutboxWorker(nil, pub, time.Second, 10, 3)
	assert.Error(t, err)
	_, err = NewOutboxWorker(repo, nil, time.Second, 10, 3)
	assert.Error(t, err)
	_, err = NewOutboxWorker(repo, pub, 0, 10, 3)
	assert.Error(t, err)
	_, err = NewOutboxWorker(repo, pub, time.Second, 0, 3)
	assert.Error(t, err)
	_, err = NewOutboxWorker(repo, pub, time.Second, 10, 0)
	assert.Error(t, err)
}

func TestOutboxWorker_ProcessOncePublishesPending(t *testing.T) {
	repo := NewOutboxRepository(newTestDB(t))
	pub := &recordingPublisher{}
	id1 := seedEvent(t, repo, "dora")
	id2 := seedEvent(t, repo, "eric")

	worker, err := NewOutboxWorker(repo, pub, time.Second, 10, 3)
	require.NoError(t, err)

	n, err := worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{user.EventUserRegistered, user.EventUserRegistered}, pub.published)
	assert.Equal(t, string(po.EventStatusPublished), loadEvent(t, repo, id1).Status)
	assert.Equal(t, string(po.EventStatusPublished), loadEvent(t, repo, id2).Status)

	n, err = worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOutboxWorker_FailedEventsRetryUntilLimit(t *testing.T) {
	repo := NewOutboxRepository(newTestDB(t))
	pub := &recordingPublisher{err: errors.New("handler down")}
	id := seedEvent(t, repo, "fred")

	worker, err := NewOutboxWorker(repo, pub, time.Second, 10, 2)
	require.NoError(t, err)

	_, err = worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	row := loadEvent(t, repo, id)
	assert.Equal(t, string(po.EventStatusPending), row.Status)
	assert.Equal(t, 1, row.RetryCount)

	_, err = worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	row = loadEvent(t, repo, id)
	assert.Equal(t, string(po.EventStatusFailed), row.Status)
	assert.Equal(t, 2, row.RetryCount)

	pub.err = nil
	n, err := worker.ProcessOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "failed events are not picked up again")
}

func TestOutboxRepository_ReleaseStaleAndPurge(t *testing.T) {
	repo := NewOutboxRepository(newTestDB(t))
	ctx := context.Background()
	id := seedEvent(t, repo, "gina")

	require.NoError(t, repo.MarkEventProcessing(ctx, id))
	assert.Error(t, repo.MarkEventProcessing(ctx, id), "second claim must fail")

	released, err := repo.ReleaseStale(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)
	assert.Equal(t, string(po.EventStatusPending), loadEvent(t, repo, id).Status)

	require.NoError(t, repo.MarkEventProcessing(ctx, id))
	require.NoError(t, repo.MarkEventPublished(ctx, id))

	purged, err := repo.PurgePublished(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, purged, "recent events are kept")

	purged, err = repo.PurgePublished(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
