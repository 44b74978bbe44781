package bill

import (
	"testing"
	"time"

	"petcare/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWechatPendingBill(t *testing.T) {
	now := time.Now()
	b, err := NewWechatPending("u1", 1200, OrderTypeService, "order-1", now)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, TypePayment, b.Type)
	assert.Len(t, b.OutTradeNo, 32)
	assert.NotContains(t, b.OutTradeNo, "-")

	require.NoError(t, b.MarkSuccess("wx-1", now))
	assert.True(t, b.IsSettled())
	assert.Equal(t, "wx-1", b.TransactionID)
	assert.ErrorIs(t, b.MarkSuccess("wx-2", now), shared.ErrInvalidState)
	assert.ErrorIs(t, b.Close(), shared.ErrInvalidState)
}

func TestRechargeBillPointsAtItself(t *testing.T) {
	b, err := NewWechatPending("u1", 5000, OrderTypeRecharge, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, TypeRecharge, b.Type)
	assert.Equal(t, b.ID, b.OrderID)
}

func TestBillAmountMustBePositive(t *testing.T) {
	_, err := NewBalancePayment("u1", 0, OrderTypeMall, "o1", time.Now())
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestBalancePaymentAndRefundAreSettled(t *testing.T) {
	now := time.Now()
	pay, err := NewBalancePayment("u1", 300, OrderTypeMall, "o1", now)
	require.NoError(t, err)
	assert.True(t, pay.IsSettled())
	assert.Equal(t, ChannelBalance, pay.Channel)

	refund, err := NewRefund("u1", 300, OrderTypeService, "o2", "cancelled", now)
	require.NoError(t, err)
	assert.Equal(t, TypeRefund, refund.Type)
	assert.True(t, refund.IsSettled())
}

func TestLatePaidBillEndsSettled(t *testing.T) {
	now := time.Now()
	b, err := NewWechatPending("u1", 1200, OrderTypeMall, "o1", now)
	require.NoError(t, err)

	assert.ErrorIs(t, b.MarkLatePaid("wx-1", "late", now), shared.ErrInvalidState)

	require.NoError(t, b.Close())
	assert.ErrorIs(t, b.MarkSuccess("wx-1", now), shared.ErrInvalidState)

	require.NoError(t, b.MarkLatePaid("wx-1", "refunded to wallet", now))
	assert.True(t, b.IsSettled())
	assert.Equal(t, "wx-1", b.TransactionID)
	assert.Equal(t, "refunded to wallet", b.Remark)
	assert.ErrorIs(t, b.MarkLatePaid("wx-1", "again", now), shared.ErrInvalidState)
}

func TestFailedBillCanStillBePaidLate(t *testing.T) {
	b, err := NewWechatPending("u1", 500, OrderTypeService, "o2", time.Now())
	require.NoError(t, err)
	require.NoError(t, b.MarkFailed("NOTENOUGH"))
	require.NoError(t, b.MarkLatePaid("wx-2", "late", time.Now()))
	assert.Equal(t, StatusSuccess, b.Status)
}
