package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/persistence/mysql/po"
	"petcare/infrastructure/persistence/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() retry.Config {
	cfg := retry.DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.JitterEnabled = false
	return cfg
}

func newUser(t *testing.T, username string) *user.User {
	t.Helper()
	hash, err := user.HashPassword("secret123")
	require.NoError(t, err)
	u, err := user.NewUser(username, hash, "")
	require.NoError(t, err)
	return u
}

func TestUnitOfWork_StoresEventsWithCommit(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	factory := NewUnitOfWorkFactory(db, fastRetry())

	u := newUser(t, "alice")
	err := factory.New().Execute(context.Background(), func(ctx context.Context) error {
		return users.Save(ctx, u)
	})
	require.NoError(t, err)

	var events []po.OutboxEventPO
	require.NoError(t, db.Find(&events).Error)
	assert.Empty(t, events, "unregistered aggregates do not publish")

	u2 := newUser(t, "bob")
	uow := factory.New()
	err = uow.Execute(context.Background(), func(ctx context.Context) error {
		uow.RegisterNew(u2)
		return users.Save(ctx, u2)
	})
	require.NoError(t, err)

	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, user.EventUserRegistered, events[0].EventType)
	assert.Equal(t, u2.ID(), events[0].AggregateID)
	assert.Equal(t, string(po.EventStatusPending), events[0].Status)

	data, err := events[0].ToEventData()
	require.NoError(t, err)
	assert.Equal(t, "bob", data["username"])
}

func TestUnitOfWork_RollbackDiscardsRowsAndEvents(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	uow := NewUnitOfWork(db)

	u := newUser(t, "carol")
	boom := errors.New("boom")
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		uow.RegisterNew(u)
		if err := users.Save(ctx, u); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = users.FindByUsername(context.Background(), "carol")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&po.OutboxEventPO{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUnitOfWork_RetriesConcurrentModification(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	uow.SetRetryConfig(fastRetry())

	attempts := 0
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return shared.NewConcurrentModificationError("user")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestUnitOfWork_DoesNotRetryValidationErrors(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	uow.SetRetryConfig(fastRetry())

	attempts := 0
	err := uow.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return shared.NewValidationError("user", "username", "bad")
	})
	require.ErrorIs(t, err, shared.ErrInvalidInput)
	assert.Equal(t, 1, attempts)
}
