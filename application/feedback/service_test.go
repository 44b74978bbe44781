package feedback

import (
	"context"
	"errors"
	"testing"

	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/mysql/mysqltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackLifecycle(t *testing.T) {
	svc := NewApplicationService(mysql.NewFeedbackRepository(mysqltest.NewDB(t)))
	ctx := context.Background()

	f, err := svc.Create(ctx, "u1", CreateRequest{Type: "bug", Content: "App crashes on upload"})
	require.NoError(t, err)
	assert.Equal(t, "pending", f.Status)

	_, err = svc.Get(ctx, "u2", f.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	mine, err := svc.ListMine(ctx, "u2", ListRequest{})
	require.NoError(t, err)
	assert.Zero(t, mine.Total)

	processing, err := svc.MarkProcessing(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "processing", processing.Status)

	_, err = svc.Reply(ctx, "admin", f.ID, ReplyRequest{Reply: "  "})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	replied, err := svc.Reply(ctx, "admin", f.ID, ReplyRequest{Reply: "Fixed in 1.2"})
	require.NoError(t, err)
	assert.Equal(t, "resolved", replied.Status)
	assert.NotNil(t, replied.RepliedAt)

	_, err = svc.Reply(ctx, "admin", f.ID, ReplyRequest{Reply: "again"})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	got, err := svc.Get(ctx, "u1", f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fixed in 1.2", got.Reply)

	resolved, err := svc.List(ctx, ListRequest{Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resolved.Total)
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc := NewApplicationService(mysql.NewFeedbackRepository(mysqltest.NewDB(t)))
	_, err := svc.Create(context.Background(), "u1", CreateRequest{Type: "praise", Content: "nice"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}
