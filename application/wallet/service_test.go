package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare/domain/bill"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/mysql/mysqltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebitAndRefund(t *testing.T) {
	db := mysqltest.NewDB(t)
	bills := mysql.NewBillRepository(db)
	svc := NewApplicationService(mysql.NewUserRepository(db), bills)
	ctx := context.Background()
	u := mysqltest.SeedUser(t, db, "wallet", 1000)

	pending, err := bill.NewWechatPending(u.ID(), 600, bill.OrderTypeMall, "order-1", time.Now())
	require.NoError(t, err)
	require.NoError(t, bills.Save(ctx, pending))

	paid, err := svc.Debit(ctx, u.ID(), 600, bill.OrderTypeMall, "order-1")
	require.NoError(t, err)
	assert.Equal(t, bill.StatusSuccess, paid.Status)

	closed, err := bills.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.StatusClosed, closed.Status, "open wechat bill closed after balance payment")

	_, err = svc.Debit(ctx, u.ID(), 600, bill.OrderTypeMall, "order-2")
	assert.True(t, errors.Is(err, shared.ErrInsufficient))

	_, err = svc.Refund(ctx, u.ID(), 600, bill.OrderTypeMall, "order-1", "cancelled")
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance.Balance)

	page, err := svc.ListMine(ctx, u.ID(), ListBillsRequest{Type: "refund"})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "cancelled", page.Items[0].Remark)
}

func TestGetMine_HidesOtherUsersBills(t *testing.T) {
	db := mysqltest.NewDB(t)
	svc := NewApplicationService(mysql.NewUserRepository(db), mysql.NewBillRepository(db))
	ctx := context.Background()
	owner := mysqltest.SeedUser(t, db, "owner", 500)
	other := mysqltest.SeedUser(t, db, "other", 0)

	b, err := svc.Debit(ctx, owner.ID(), 100, bill.OrderTypeService, "so-1")
	require.NoError(t, err)

	got, err := svc.GetMine(ctx, owner.ID(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Amount)

	_, err = svc.GetMine(ctx, other.ID(), b.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
