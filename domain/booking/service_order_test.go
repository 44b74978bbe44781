package booking

import (
	"testing"
	"time"

	"petcare/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, name string, kind ItemKind, price int64) *ServiceItem {
	t.Helper()
	item, err := NewServiceItem(ServiceItemInput{Name: name, Kind: kind, Price: price, IsActive: true})
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T) *ServiceOrder {
	t.Helper()
	now := time.Now()
	o, err := NewServiceOrder(CreateOptions{
		UserID:        "user-1",
		PetIDs:        []string{"pet-1", "pet-1", "pet-2"},
		Base:          newItem(t, "Bath", ItemKindBase, 8000),
		Additional:    []*ServiceItem{newItem(t, "Nail trim", ItemKindAdditional, 1500), newItem(t, "Ear clean", ItemKindAdditional, 2000)},
		AppointmentAt: now.Add(24 * time.Hour),
		ContactPhone:  "13800138000",
	}, now)
	require.NoError(t, err)
	return o
}

func TestTotalPriceIsBasePlusAdditional(t *testing.T) {
	o := newOrder(t)

	assert.Equal(t, int64(8000), o.BasePrice())
	assert.Equal(t, int64(3500), o.AdditionalPrice())
	assert.Equal(t, o.BasePrice()+o.AdditionalPrice(), o.TotalPrice())
	assert.Equal(t, []string{"pet-1", "pet-2"}, o.PetIDs())
	assert.Equal(t, StatusPending, o.Status())
}

func TestRebuildRecomputesTotal(t *testing.T) {
	o := RebuildFromDTO(ReconstructionDTO{
		ID:          "o1",
		Status:      string(StatusConfirmed),
		BaseService: ServiceLine{ServiceID: "b", Price: 100},
		Additional:  []ServiceLine{{ServiceID: "a1", Price: 20}, {ServiceID: "a2", Price: 30}},
	})
	assert.Equal(t, int64(150), o.TotalPrice())
}

func TestNewServiceOrderValidation(t *testing.T) {
	now := time.Now()
	base := newItem(t, "Bath", ItemKindBase, 8000)
	addon := newItem(t, "Nail trim", ItemKindAdditional, 1500)
	inactive := newItem(t, "Old", ItemKindAdditional, 100)
	inactive.IsActive = false

	cases := map[string]CreateOptions{
		"additional used as base": {Base: addon, PetIDs: []string{"p"}, AppointmentAt: now.Add(time.Hour), ContactPhone: "1"},
		"base used as additional": {Base: base, Additional: []*ServiceItem{base}, PetIDs: []string{"p"}, AppointmentAt: now.Add(time.Hour), ContactPhone: "1"},
		"inactive additional":     {Base: base, Additional: []*ServiceItem{inactive}, PetIDs: []string{"p"}, AppointmentAt: now.Add(time.Hour), ContactPhone: "1"},
		"duplicate additional":    {Base: base, Additional: []*ServiceItem{addon, addon}, PetIDs: []string{"p"}, AppointmentAt: now.Add(time.Hour), ContactPhone: "1"},
		"no pets":                 {Base: base, AppointmentAt: now.Add(time.Hour), ContactPhone: "1"},
		"past appointment":        {Base: base, PetIDs: []string{"p"}, AppointmentAt: now.Add(-time.Hour), ContactPhone: "1"},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewServiceOrder(opts, now)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransitionRecordsEvent(t *testing.T) {
	o := newOrder(t)

	require.NoError(t, o.TransitionTo(StatusConfirmed))
	err := o.TransitionTo(StatusCompleted)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	events := o.PullEvents()
	require.Len(t, events, 1)
	changed := events[0].(*ServiceOrderStatusChangedEvent)
	assert.Equal(t, StatusPending, changed.From)
	assert.Equal(t, StatusConfirmed, changed.To)
	assert.Equal(t, "user-1", changed.UserID)
}

func TestCompletedOrderAcceptsNoTransition(t *testing.T) {
	o := newOrder(t)
	require.NoError(t, o.TransitionTo(StatusConfirmed))
	require.NoError(t, o.TransitionTo(StatusInProgress))
	require.NoError(t, o.TransitionTo(StatusCompleted))

	for _, s := range []Status{StatusPending, StatusConfirmed, StatusInProgress, StatusCancelled} {
		assert.ErrorIs(t, o.TransitionTo(s), shared.ErrInvalidState)
	}
	_, err := o.Cancel("too late")
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestCancelPaidOrderReturnsRefund(t *testing.T) {
	o := newOrder(t)
	require.NoError(t, o.MarkPaid(time.Now()))
	assert.ErrorIs(t, o.MarkPaid(time.Now()), shared.ErrInvalidState)

	refund, err := o.Cancel("changed plans")
	require.NoError(t, err)
	assert.Equal(t, o.TotalPrice(), refund)
	assert.Equal(t, StatusCancelled, o.Status())
	assert.Equal(t, "changed plans", o.CancelReason())
}

func TestCancelUnpaidOrderRefundsNothing(t *testing.T) {
	o := newOrder(t)
	refund, err := o.Cancel("")
	require.NoError(t, err)
	assert.Zero(t, refund)
	assert.ErrorIs(t, o.CheckPayable(), shared.ErrInvalidState)
}

func TestAssignStaff(t *testing.T) {
	o := newOrder(t)
	staff, err := NewStaff(StaffInput{Name: "Lin", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, o.AssignStaff(staff))
	assert.Equal(t, staff.ID, o.StaffID())

	_, err = o.Cancel("")
	require.NoError(t, err)
	assert.ErrorIs(t, o.AssignStaff(staff), shared.ErrInvalidState)
}
