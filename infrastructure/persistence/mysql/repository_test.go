package mysql

import (
	"context"
	"testing"
	"time"

	"petcare/domain/attach"
	"petcare/domain/community"
	"petcare/domain/integral"
	"petcare/domain/mall"
	"petcare/domain/shared"
	"petcare/domain/stray"
	"petcare/domain/user"
	"petcare/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_SaveAndOptimisticLock(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := newUser(t, "harry")
	require.NoError(t, repo.Save(ctx, u))
	assert.False(t, u.IsNew())

	dup := newUser(t, "harry")
	err := repo.Save(ctx, dup)
	assert.ErrorIs(t, err, shared.ErrConflict)

	first, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)

	nick := "Harry"
	require.NoError(t, first.UpdateProfile(user.ProfileUpdate{Nickname: &nick}))
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, 1, first.Version())

	bio := "stale"
	require.NoError(t, second.UpdateProfile(user.ProfileUpdate{Bio: &bio}))
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrentModification)

	reloaded, err := repo.FindByUsername(ctx, "harry")
	require.NoError(t, err)
	assert.Equal(t, "Harry", reloaded.Nickname())
	assert.Empty(t, reloaded.Bio())
}

func TestUserRepository_AdjustFunds(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := newUser(t, "ivy")
	require.NoError(t, repo.Save(ctx, u))

	balance, err := repo.AdjustBalance(ctx, u.ID(), 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), balance)

	_, err = repo.AdjustBalance(ctx, u.ID(), -6000)
	assert.ErrorIs(t, err, shared.ErrInsufficient)

	balance, err = repo.AdjustBalance(ctx, u.ID(), -5000)
	require.NoError(t, err)
	assert.Zero(t, balance)

	points, err := repo.AdjustIntegral(ctx, u.ID(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(30), points)

	_, err = repo.AdjustIntegral(ctx, "missing", 10)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// a profile save must not overwrite funds
	nick := "Ivy"
	require.NoError(t, u.UpdateProfile(user.ProfileUpdate{Nickname: &nick}))
	require.NoError(t, repo.Save(ctx, u))
	reloaded, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(30), reloaded.Integral())
}

func TestUserRepository_AdjustCounterNeverNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := newUser(t, "jack")
	require.NoError(t, repo.Save(ctx, u))

	require.NoError(t, repo.AdjustCounter(ctx, u.ID(), user.CounterFollowers, 1))
	require.NoError(t, repo.AdjustCounter(ctx, u.ID(), user.CounterFollowers, -1))
	require.NoError(t, repo.AdjustCounter(ctx, u.ID(), user.CounterFollowers, -1))
	assert.Error(t, repo.AdjustCounter(ctx, u.ID(), user.Counter("balance"), 1))

	reloaded, err := repo.FindByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Zero(t, reloaded.FollowerCount())
}

func TestUserRepository_ListFiltersByKeyword(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	for _, name := range []string{"kate", "kevin", "liam"} {
		require.NoError(t, repo.Save(ctx, newUser(t, name)))
	}

	users, total, err := repo.List(ctx, user.ListFilter{Keyword: "k"}, shared.NewPageQuery(1, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 1)
}

func seedSKU(t *testing.T, db *SKURepository, products *ProductRepository, stock int) (*mall.Product, *mall.SKU) {
	t.Helper()
	ctx := context.Background()
	product, err := mall.NewProduct(mall.ProductInput{CategoryID: "cat", Name: "Cat food", IsOnSale: true})
	require.NoError(t, err)
	require.NoError(t, products.Save(ctx, product))
	sku, err := mall.NewSKU(product.ID, mall.SKUInput{Attributes: map[string]string{"weight": "2kg"}, Price: 8800, Stock: stock})
	require.NoError(t, err)
	require.NoError(t, db.Save(ctx, sku))
	return product, sku
}

func TestSKURepository_StockMovesAtomically(t *testing.T) {
	db := newTestDB(t)
	skus := NewSKURepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()
	_, sku := seedSKU(t, skus, products, 3)

	require.NoError(t, skus.DecreaseStock(ctx, sku.ID, 2))
	err := skus.DecreaseStock(ctx, sku.ID, 2)
	assert.ErrorIs(t, err, shared.ErrInsufficient)

	loaded, err := skus.FindByID(ctx, sku.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Stock)
	assert.Equal(t, 2, loaded.Sales)
	assert.Equal(t, "2kg", loaded.Attributes["weight"])

	require.NoError(t, skus.RestoreStock(ctx, sku.ID, 2))
	loaded, err = skus.FindByID(ctx, sku.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Stock)
	assert.Zero(t, loaded.Sales)

	// catalog edits keep the sales counter
	require.NoError(t, skus.DecreaseStock(ctx, sku.ID, 1))
	require.NoError(t, loaded.Update(mall.SKUInput{Price: 9900, Stock: 10}))
	require.NoError(t, skus.Save(ctx, loaded))
	loaded, err = skus.FindByID(ctx, sku.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9900), loaded.Price)
	assert.Equal(t, 1, loaded.Sales)
}

func TestMallOrderRepository_RoundTripAndExpiry(t *testing.T) {
	db := newTestDB(t)
	skus := NewSKURepository(db)
	products := NewProductRepository(db)
	orders := NewMallOrderRepository(db)
	ctx := context.Background()
	product, sku := seedSKU(t, skus, products, 5)

	created := time.Now().Add(-2 * time.Hour)
	order, err := mall.NewOrder("u1", []mall.LineInput{{Product: product, SKU: sku, Quantity: 2}}, "Road 1", "", created)
	require.NoError(t, err)
	require.NoError(t, orders.Save(ctx, order))

	loaded, err := orders.FindByID(ctx, order.ID())
	require.NoError(t, err)
	require.Len(t, loaded.Items(), 1)
	assert.Equal(t, int64(17600), loaded.TotalAmount())
	assert.Equal(t, mall.StatusPendingPayment, loaded.Status())

	ids, err := orders.ListExpiredIDs(ctx, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{order.ID()}, ids)

	require.NoError(t, loaded.MarkPaid(time.Now()))
	require.NoError(t, orders.Save(ctx, loaded))

	require.NoError(t, order.Cancel("stale copy", time.Now()))
	assert.ErrorIs(t, orders.Save(ctx, order), shared.ErrConcurrentModification)

	ids, err = orders.ListExpiredIDs(ctx, time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	list, total, err := orders.List(ctx, mall.OrderFilter{UserID: "u1", Status: mall.StatusPaid}, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Items(), 1)
}

func approvedPost(t *testing.T, repo *PostRepository, author, title string) *community.Post {
	t.Helper()
	p, err := community.NewPost(author, community.PostInput{Title: title, Content: "body"})
	require.NoError(t, err)
	require.NoError(t, p.Review(true, ""))
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestPostRepository_ListOrdersAndFilters(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	quiet := approvedPost(t, posts, "a1", "quiet")
	busy := approvedPost(t, posts, "a2", "busy")
	require.NoError(t, posts.AdjustCounter(ctx, busy.ID, community.PostLikes, 3))
	require.NoError(t, posts.AdjustCounter(ctx, quiet.ID, community.PostLikes, -1))

	list, total, err := posts.List(ctx, community.PostFilter{Order: community.PostOrderHot}, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, busy.ID, list[0].ID)
	assert.Equal(t, 3, list[0].LikeCount)
	assert.Zero(t, list[1].LikeCount)

	list, total, err = posts.List(ctx, community.PostFilter{AuthorIDs: []string{}}, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	list, _, err = posts.List(ctx, community.PostFilter{Keyword: "qui"}, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, quiet.ID, list[0].ID)

	// saving a post never resets its counters
	require.NoError(t, busy.Edit(community.PostInput{Title: "busy!", Content: "edited"}))
	require.NoError(t, posts.Save(ctx, busy))
	reloaded, err := posts.FindByID(ctx, busy.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.LikeCount)
	assert.Equal(t, community.PostPending, reloaded.Status)
}

func TestReactionRepository_UniquePerUserAndTarget(t *testing.T) {
	db := newTestDB(t)
	reactions := NewReactionRepository(db)
	posts := NewPostRepository(db)
	ctx := context.Background()

	p := approvedPost(t, posts, "a1", "fav me")
	require.NoError(t, reactions.Add(ctx, community.ReactionPostFavorite, "u1", p.ID))
	assert.ErrorIs(t, reactions.Add(ctx, community.ReactionPostFavorite, "u1", p.ID), shared.ErrConflict)
	require.NoError(t, reactions.Add(ctx, community.ReactionPostLike, "u1", p.ID))

	reacted, err := reactions.Reacted(ctx, community.ReactionPostFavorite, "u1", []string{p.ID, "other"})
	require.NoError(t, err)
	assert.True(t, reacted[p.ID])
	assert.False(t, reacted["other"])

	favs, total, err := posts.ListFavoritedBy(ctx, "u1", shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, favs, 1)
	assert.Equal(t, p.ID, favs[0].ID)

	require.NoError(t, reactions.Remove(ctx, community.ReactionPostFavorite, "u1", p.ID))
	assert.ErrorIs(t, reactions.Remove(ctx, community.ReactionPostFavorite, "u1", p.ID), shared.ErrNotFound)
}

func TestFollowRepository_AddRemove(t *testing.T) {
	db := newTestDB(t)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	f, err := community.NewFollow("u1", "u2")
	require.NoError(t, err)
	require.NoError(t, follows.Add(ctx, f))
	assert.ErrorIs(t, follows.Add(ctx, f), shared.ErrConflict)

	ok, err := follows.IsFollowing(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, ok)

	ids, total, err := follows.ListFollowers(ctx, "u2", shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"u1"}, ids)

	require.NoError(t, follows.Remove(ctx, "u1", "u2"))
	assert.ErrorIs(t, follows.Remove(ctx, "u1", "u2"), shared.ErrNotFound)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n := community.NewNotification("u1", "u2", community.NotificationLike, "post", "p1", "")
		require.NoError(t, repo.Save(ctx, n))
	}
	unread, err := repo.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	marked, err := repo.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)

	unread, err = repo.CountUnread(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestStrayRepository_ListInBox(t *testing.T) {
	db := newTestDB(t)
	repo := NewStrayRepository(db)
	ctx := context.Background()

	save := func(lat, lng float64, approve bool) *stray.Animal {
		a, err := stray.NewAnimal("u1", stray.Input{Species: "cat", Latitude: lat, Longitude: lng})
		require.NoError(t, err)
		if approve {
			require.NoError(t, a.Review(true, ""))
		}
		require.NoError(t, repo.Save(ctx, a))
		return a
	}
	near := save(31.2304, 121.4737, true)
	save(31.2310, 121.4740, false)
	save(39.9042, 116.4074, true)

	box := geo.BoundingBox(geo.Point{Lat: 31.23, Lng: 121.47}, 5)
	found, err := repo.ListInBox(ctx, box, 50)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, near.ID, found[0].ID)

	in, err := stray.NewInteraction(near, "u2", stray.InteractionInput{Type: stray.InteractionComment, Content: "fed it"})
	require.NoError(t, err)
	require.NoError(t, repo.SaveInteraction(ctx, in))
	require.NoError(t, repo.Save(ctx, near))

	list, total, err := repo.ListInteractions(ctx, near.ID, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "fed it", list[0].Content)

	require.NoError(t, repo.Delete(ctx, near.ID))
	_, total, err = repo.ListInteractions(ctx, near.ID, shared.NewPageQuery(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStrayRepository_ListInBoxAcrossAntimeridian(t *testing.T) {
	db := newTestDB(t)
	repo := NewStrayRepository(db)
	ctx := context.Background()

	save := func(lat, lng float64) *stray.Animal {
		a, err := stray.NewAnimal("u1", stray.Input{Species: "cat", Latitude: lat, Longitude: lng})
		require.NoError(t, err)
		require.NoError(t, a.Review(true, ""))
		require.NoError(t, repo.Save(ctx, a))
		return a
	}
	east := save(-17.70, 179.99)
	west := save(-17.70, -179.99)
	save(-17.70, 170.00)

	found, err := repo.ListInBox(ctx, geo.BoundingBox(geo.Point{Lat: -17.70, Lng: 179.995}, 10), 50)
	require.NoError(t, err)
	ids := make([]string, len(found))
	for i, a := range found {
		ids[i] = a.ID
	}
	assert.ElementsMatch(t, []string{east.ID, west.ID}, ids)
}

func TestStrayRepository_ListInBoxKeepsNearestWhenCapped(t *testing.T) {
	db := newTestDB(t)
	repo := NewStrayRepository(db)
	ctx := context.Background()

	center := geo.Point{Lat: 31.23, Lng: 121.47}
	var nearest *stray.Animal
	// 先存的最近，后存的 last_seen_at 更新但更远
	for i, off := range []float64{0.001, 0.02, 0.03, 0.04} {
		a, err := stray.NewAnimal("u1", stray.Input{Species: "cat", Latitude: center.Lat + off, Longitude: center.Lng})
		require.NoError(t, err)
		require.NoError(t, a.Review(true, ""))
		a.LastSeenAt = a.LastSeenAt.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Save(ctx, a))
		if i == 0 {
			nearest = a
		}
	}

	found, err := repo.ListInBox(ctx, geo.BoundingBox(center, 10), 2)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, nearest.ID, found[0].ID)
	assert.InDelta(t, center.Lat+0.02, found[1].Latitude, 1e-9)
}

func TestSignInRepository_OncePerDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewSignInRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)

	require.NoError(t, repo.Create(ctx, integral.NewSignIn("u1", 5, now)))
	err := repo.Create(ctx, integral.NewSignIn("u1", 5, now.Add(time.Hour)))
	assert.ErrorIs(t, err, shared.ErrConflict)
	require.NoError(t, repo.Create(ctx, integral.NewSignIn("u1", 5, now.AddDate(0, 0, 1))))

	ok, err := repo.Exists(ctx, "u1", "2024-06-01")
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := repo.CountSince(ctx, "u1", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestIntegralProductRepository_DecreaseStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewIntegralProductRepository(db)
	ctx := context.Background()

	p, err := integral.NewProduct(integral.ProductInput{Name: "Toy", Points: 100, Stock: 1, Kind: integral.KindPhysical, IsActive: true})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.DecreaseStock(ctx, p.ID, 1))
	assert.ErrorIs(t, repo.DecreaseStock(ctx, p.ID, 1), shared.ErrInsufficient)
}

func TestBannerRepository_ListLive(t *testing.T) {
	db := newTestDB(t)
	repo := NewBannerRepository(db)
	ctx := context.Background()
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	save := func(title string, active bool, start, end *time.Time) {
		b, err := attach.NewBanner(attach.BannerInput{Title: title, Image: "/img.png", IsActive: active, StartAt: start, EndAt: end})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, b))
	}
	save("always", true, nil, nil)
	save("window", true, &past, &future)
	save("later", true, &future, nil)
	save("off", false, nil, nil)

	live, err := repo.ListLive(ctx, attach.DefaultPosition, now)
	require.NoError(t, err)
	titles := make([]string, 0, len(live))
	for _, b := range live {
		titles = append(titles, b.Title)
	}
	assert.ElementsMatch(t, []string{"always", "window"}, titles)
}
