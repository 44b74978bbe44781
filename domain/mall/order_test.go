package mall

import (
	"testing"
	"time"

	"petcare/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogue(t *testing.T) (*Product, *SKU, *SKU) {
	t.Helper()
	p, err := NewProduct(ProductInput{CategoryID: "c1", Name: "Cat food", IsOnSale: true})
	require.NoError(t, err)
	small, err := NewSKU(p.ID, SKUInput{Attributes: map[string]string{"size": "1kg"}, Price: 3900, Stock: 10})
	require.NoError(t, err)
	large, err := NewSKU(p.ID, SKUInput{Attributes: map[string]string{"size": "5kg", "flavor": "fish"}, Price: 15900, Stock: 1})
	require.NoError(t, err)
	return p, small, large
}

func TestNewOrderTotal(t *testing.T) {
	p, small, large := catalogue(t)
	o, err := NewOrder("u1", []LineInput{{p, small, 3}, {p, large, 1}}, "Tom 138 Hangzhou", "", time.Now())
	require.NoError(t, err)

	var sum int64
	for _, item := range o.Items() {
		assert.Equal(t, item.Price*int64(item.Quantity), item.Subtotal)
		sum += item.Subtotal
	}
	assert.Equal(t, int64(3*3900+15900), o.TotalAmount())
	assert.Equal(t, sum, o.TotalAmount())
	assert.Equal(t, StatusPendingPayment, o.Status())
	assert.Equal(t, "flavor:fish size:5kg", o.Items()[1].SKULabel)
}

func TestNewOrderRejectsBadLines(t *testing.T) {
	p, small, large := catalogue(t)
	now := time.Now()

	_, err := NewOrder("u1", []LineInput{{p, large, 2}}, "addr", "", now)
	assert.ErrorIs(t, err, shared.ErrInsufficient)

	_, err = NewOrder("u1", []LineInput{{p, small, 0}}, "addr", "", now)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewOrder("u1", []LineInput{{p, small, 1}, {p, small, 1}}, "addr", "", now)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewOrder("u1", nil, "addr", "", now)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	p.IsOnSale = false
	_, err = NewOrder("u1", []LineInput{{p, small, 1}}, "addr", "", now)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestOrderLifecycle(t *testing.T) {
	p, small, _ := catalogue(t)
	now := time.Now()
	o, err := NewOrder("u1", []LineInput{{p, small, 1}}, "addr", "", now)
	require.NoError(t, err)

	assert.ErrorIs(t, o.Ship("SF", "123", now), shared.ErrInvalidState)
	require.NoError(t, o.MarkPaid(now))
	assert.ErrorIs(t, o.Cancel("late", now), shared.ErrInvalidState)
	assert.ErrorIs(t, o.Ship("", "", now), shared.ErrInvalidInput)
	require.NoError(t, o.Ship("SF", "123", now))
	require.NoError(t, o.ConfirmReceipt(now))
	assert.Equal(t, StatusCompleted, o.Status())

	names := []string{}
	for _, e := range o.PullEvents() {
		names = append(names, e.EventName())
	}
	assert.Equal(t, []string{EventOrderPaid, EventOrderShipped}, names)
}

func TestOrderExpiry(t *testing.T) {
	p, small, _ := catalogue(t)
	created := time.Now().Add(-31 * time.Minute)
	o, err := NewOrder("u1", []LineInput{{p, small, 1}}, "addr", "", created)
	require.NoError(t, err)

	assert.True(t, o.IsExpired(time.Now(), 30*time.Minute))
	require.NoError(t, o.Cancel("timeout", time.Now()))
	assert.False(t, o.IsExpired(time.Now(), 30*time.Minute))
}

func TestProductRefreshPrice(t *testing.T) {
	p, small, large := catalogue(t)
	p.RefreshPrice([]*SKU{large, small})
	assert.Equal(t, small.Price, p.Price)

	p.RefreshPrice(nil)
	assert.Zero(t, p.Price)
}

func TestCartMerge(t *testing.T) {
	item, err := NewCartItem("u1", "s1", 98)
	require.NoError(t, err)
	require.NoError(t, item.Merge(1))
	assert.Equal(t, 99, item.Quantity)
	assert.ErrorIs(t, item.Merge(1), shared.ErrInvalidInput)
}
