package stray

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

func newService(t *testing.T) *ApplicationService {
	t.Helper()
	db := mysqltest.NewDB(t)
	return NewApplicationService(mysql.NewStrayRepository(db), mysqltest.NewUnitOfWorkFactory(db))
}

// approved 上报并审核通过
func approved(t *testing.T, svc *ApplicationService, lat, lng float64) *StrayResponse {
	t.Helper()
	ctx := context.Background()
	a, err := svc.Create(ctx, "reporter", StrayRequest{Species: "cat", Latitude: lat, Longitude: lng})
	require.NoError(t, err)
	yes := true
	a, err = svc.Review(ctx, a.ID, ReviewRequest{Approve: &yes})
	require.NoError(t, err)
	return a
}

func TestNearbySortedByDistance(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// 西湖附近
	far := approved(t, svc, 30.30, 120.15)  // ~5.5km
	near := approved(t, svc, 30.26, 120.15) // ~1km
	approved(t, svc, 31.23, 121.47)         // 上海，远超半径
	_, err := svc.Create(ctx, "reporter", StrayRequest{Species: "dog", Latitude: 30.251, Longitude: 120.151})
	require.NoError(t, err)

	got, err := svc.Nearby(ctx, NearbyRequest{Latitude: 30.25, Longitude: 120.15, RadiusKm: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, near.ID, got[0].ID)
	assert.Equal(t, far.ID, got[1].ID)
	require.NotNil(t, got[0].DistanceKm)
	assert.InDelta(t, 1.11, *got[0].DistanceKm, 0.05)

	// 默认半径 5km
	got, err = svc.Nearby(ctx, NearbyRequest{Latitude: 30.25, Longitude: 120.15})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, near.ID, got[0].ID)

	// 半径上限 50km，上海仍然不在范围内
	got, err = svc.Nearby(ctx, NearbyRequest{Latitude: 30.25, Longitude: 120.15, RadiusKm: 500})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPendingReportVisibility(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	a, err := svc.Create(ctx, "reporter", StrayRequest{Species: "dog", Latitude: 30, Longitude: 120})
	require.NoError(t, err)
	assert.Equal(t, "pending", a.Status)
	assert.Equal(t, "wandering", a.RescueStatus)

	_, err = svc.Get(ctx, "someone", a.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	_, err = svc.Get(ctx, "reporter", a.ID)
	require.NoError(t, err)

	public, err := svc.List(ctx, ListStraysRequest{})
	require.NoError(t, err)
	assert.Zero(t, public.Total)
	mine, err := svc.ListMine(ctx, "reporter", ListStraysRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)

	_, err = svc.AddInteraction(ctx, "someone", a.ID, InteractionRequest{Type: "comment", Content: "hi"})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestSightingMovesLocation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	a := approved(t, svc, 30.25, 120.15)

	_, err := svc.AddInteraction(ctx, "helper", a.ID, InteractionRequest{Type: "sighting"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	lat, lng := 30.27, 120.16
	_, err = svc.AddInteraction(ctx, "helper", a.ID, InteractionRequest{Type: "sighting", Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	_, err = svc.AddInteraction(ctx, "helper", a.ID, InteractionRequest{Type: "feeding"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "", a.ID)
	require.NoError(t, err)
	assert.Equal(t, lat, got.Latitude)
	assert.Equal(t, lng, got.Longitude)
	assert.Equal(t, 2, got.InteractionCount)
	assert.True(t, got.LastSeenAt.After(a.LastSeenAt) || got.LastSeenAt.Equal(a.LastSeenAt))

	list, err := svc.ListInteractions(ctx, "", a.ID, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
}

func TestReviewAndRescue(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	a := approved(t, svc, 30, 120)

	yes := true
	_, err := svc.Review(ctx, a.ID, ReviewRequest{Approve: &yes})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	rescued, err := svc.UpdateRescueStatus(ctx, a.ID, RescueRequest{RescueStatus: "rescued"})
	require.NoError(t, err)
	assert.Equal(t, "rescued", rescued.RescueStatus)

	list, err := svc.List(ctx, ListStraysRequest{RescueStatus: "wandering"})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestUpdateAndDeleteOwnReport(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	a, err := svc.Create(ctx, "reporter", StrayRequest{Species: "cat", Latitude: 30, Longitude: 120})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "intruder", a.ID, StrayRequest{Species: "dog", Latitude: 30, Longitude: 120})
	assert.True(t, errors.Is(err, shared.ErrForbidden))
	updated, err := svc.Update(ctx, "reporter", a.ID, StrayRequest{Species: "dog", Latitude: 30, Longitude: 120, Address: "Gate 3"})
	require.NoError(t, err)
	assert.Equal(t, "dog", updated.Species)

	assert.True(t, errors.Is(svc.Delete(ctx, "intruder", a.ID), shared.ErrForbidden))
	require.NoError(t, svc.Delete(ctx, "reporter", a.ID))
	_, err = svc.Get(ctx, "reporter", a.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
