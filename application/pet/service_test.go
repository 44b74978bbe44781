package pet

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

func TestPetLifecycle(t *testing.T) {
	db := mysqltest.NewDB(t)
	svc := NewApplicationService(mysql.NewPetRepository(db))
	ctx := context.Background()
	owner := mysqltest.SeedUser(t, db, "owner", 0)
	stranger := mysqltest.SeedUser(t, db, "stranger", 0)

	created, err := svc.Create(ctx, owner.ID(), PetRequest{Name: "Mochi", Species: "cat", Birthday: "2021-03-04", WeightGrams: 4200})
	require.NoError(t, err)
	assert.Equal(t, "unknown", created.Gender)
	assert.Equal(t, "2021-03-04", created.Birthday)

	_, err = svc.Create(ctx, owner.ID(), PetRequest{Name: "Bad", Species: "cat", Birthday: "04/03/2021"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = svc.Get(ctx, stranger.ID(), created.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound), "another owner's pet is hidden")

	updated, err := svc.Update(ctx, owner.ID(), created.ID, PetRequest{Name: "Mochi", Species: "cat", IsNeutered: true})
	require.NoError(t, err)
	assert.True(t, updated.IsNeutered)
	assert.Empty(t, updated.Birthday)

	page, err := svc.ListMine(ctx, owner.ID(), shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	err = svc.Delete(ctx, stranger.ID(), created.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	require.NoError(t, svc.Delete(ctx, owner.ID(), created.ID))

	all, err := svc.List(ctx, ListPetsRequest{})
	require.NoError(t, err)
	assert.Zero(t, all.Total)
}
