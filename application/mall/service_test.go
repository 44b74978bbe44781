package mall

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare/application/wallet"
	"petcare/domain/mall"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/persistence/mysql"
	"petcare/infrastructure/persistence/mysql/mysqltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	svc     *ApplicationService
	db      *gorm.DB
	repos   *mysql.Repositories
	user    *user.User
	address *user.Address
	product *ProductResponse
	small   *SKUResponse
	large   *SKUResponse
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()
	db := mysqltest.NewDB(t)
	repos := mysql.NewRepositories(db)
	svc := NewApplicationService(Repositories{
		Categories: repos.Categories,
		Products:   repos.Products,
		SKUs:       repos.SKUs,
		Cart:       repos.Cart,
		Orders:     repos.MallOrders,
		Addresses:  repos.Addresses,
	}, wallet.NewApplicationService(repos.Users, repos.Bills), mysqltest.NewUnitOfWorkFactory(db))
	ctx := context.Background()

	u := mysqltest.SeedUser(t, db, "shopper", balance)
	addr, err := user.NewAddress(u.ID(), user.AddressInput{
		Receiver: "Li Lei", Phone: "13800138000", Province: "Zhejiang", City: "Hangzhou", Detail: "No. 1 Road",
	})
	require.NoError(t, err)
	require.NoError(t, repos.Addresses.Save(ctx, addr))

	cat, err := svc.CreateCategory(ctx, CategoryRequest{Name: "Food", IsActive: true})
	require.NoError(t, err)
	p, err := svc.CreateProduct(ctx, ProductRequest{CategoryID: cat.ID, Name: "Dog food", IsOnSale: true})
	require.NoError(t, err)
	small, err := svc.CreateSKU(ctx, p.ID, SKURequest{Attributes: map[string]string{"size": "1kg"}, Price: 3000, Stock: 10})
	require.NoError(t, err)
	large, err := svc.CreateSKU(ctx, p.ID, SKURequest{Attributes: map[string]string{"size": "5kg"}, Price: 12000, Stock: 2})
	require.NoError(t, err)

	return &fixture{svc: svc, db: db, repos: repos, user: u, address: addr, product: p, small: small, large: large}
}

func (f *fixture) sku(t *testing.T, id string) *mall.SKU {
	t.Helper()
	sku, err := f.repos.SKUs.FindByID(context.Background(), id)
	require.NoError(t, err)
	return sku
}

func TestProductPriceFollowsCheapestSKU(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	p, err := f.svc.GetProduct(ctx, f.product.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), p.Price)
	assert.Len(t, p.SKUs, 2)

	_, err = f.svc.UpdateSKU(ctx, f.large.ID, SKURequest{Price: 2500, Stock: 2})
	require.NoError(t, err)
	p, err = f.svc.GetProduct(ctx, f.product.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), p.Price)

	require.NoError(t, f.svc.DeleteSKU(ctx, f.large.ID))
	p, err = f.svc.GetProduct(ctx, f.product.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), p.Price)
}

func TestOffSaleProductHidden(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.UpdateProduct(ctx, f.product.ID, ProductRequest{CategoryID: f.product.CategoryID, Name: "Dog food", IsOnSale: false})
	require.NoError(t, err)

	_, err = f.svc.GetProduct(ctx, f.product.ID, true)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	list, err := f.svc.ListProducts(ctx, ListProductsRequest{}, true)
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	err = f.svc.AddToCart(ctx, f.user.ID(), AddCartRequest{SKUID: f.small.ID, Quantity: 1})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestCartMergesSameSKU(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, f.svc.AddToCart(ctx, f.user.ID(), AddCartRequest{SKUID: f.small.ID, Quantity: 2}))
	require.NoError(t, f.svc.AddToCart(ctx, f.user.ID(), AddCartRequest{SKUID: f.small.ID, Quantity: 3}))

	cart, err := f.svc.ListCart(ctx, f.user.ID())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.True(t, cart.Items[0].Available)
	assert.Equal(t, int64(15000), cart.Total)

	other := mysqltest.SeedUser(t, f.db, "other", 0)
	err = f.svc.RemoveCartItem(ctx, other.ID(), cart.Items[0].ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	require.NoError(t, f.svc.UpdateCartItem(ctx, f.user.ID(), cart.Items[0].ID, UpdateCartRequest{Quantity: 1}))
	require.NoError(t, f.svc.RemoveCartItem(ctx, f.user.ID(), cart.Items[0].ID))
	cart, err = f.svc.ListCart(ctx, f.user.ID())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCreateOrderFromItems(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	o, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{
		Items:     []OrderLineRequest{{SKUID: f.small.ID, Quantity: 2}, {SKUID: f.large.ID, Quantity: 1}},
		AddressID: f.address.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending_payment", o.Status)
	assert.Equal(t, int64(2*3000+12000), o.TotalAmount)
	assert.Contains(t, o.Address, "Li Lei")
	require.Len(t, o.Items, 2)
	assert.Equal(t, "size:1kg", o.Items[0].SKULabel)

	assert.Equal(t, 8, f.sku(t, f.small.ID).Stock)
	assert.Equal(t, 2, f.sku(t, f.small.ID).Sales)
	p, err := f.repos.Products.FindByID(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Sales)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{
		Items:     []OrderLineRequest{{SKUID: f.small.ID, Quantity: 1}, {SKUID: f.large.ID, Quantity: 3}},
		AddressID: f.address.ID,
	})
	assert.True(t, errors.Is(err, shared.ErrInsufficient))
	assert.Equal(t, 10, f.sku(t, f.small.ID).Stock)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{AddressID: f.address.ID})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	other := mysqltest.SeedUser(t, f.db, "other", 0)
	_, err = f.svc.CreateOrder(ctx, other.ID(), CreateOrderRequest{
		Items:     []OrderLineRequest{{SKUID: f.small.ID, Quantity: 1}},
		AddressID: f.address.ID,
	})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	_, err = f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{
		Items:     []OrderLineRequest{{SKUID: "missing", Quantity: 1}},
		AddressID: f.address.ID,
	})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestCreateOrderFromCart(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	require.NoError(t, f.svc.AddToCart(ctx, f.user.ID(), AddCartRequest{SKUID: f.small.ID, Quantity: 4}))
	require.NoError(t, f.svc.AddToCart(ctx, f.user.ID(), AddCartRequest{SKUID: f.large.ID, Quantity: 1}))
	cart, err := f.svc.ListCart(ctx, f.user.ID())
	require.NoError(t, err)

	var smallItem string
	for _, it := range cart.Items {
		if it.SKUID == f.small.ID {
			smallItem = it.ID
		}
	}
	o, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{CartItemIDs: []string{smallItem}, AddressID: f.address.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), o.TotalAmount)

	cart, err = f.svc.ListCart(ctx, f.user.ID())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.large.ID, cart.Items[0].SKUID)
}

func TestCancelRestoresStock(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	o, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{
		Items: []OrderLineRequest{{SKUID: f.small.ID, Quantity: 3}}, AddressID: f.address.ID,
	})
	require.NoError(t, err)

	cancelled, err := f.svc.CancelOrder(ctx, f.user.ID(), o.ID, CancelOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, 10, f.sku(t, f.small.ID).Stock)
	assert.Zero(t, f.sku(t, f.small.ID).Sales)

	_, err = f.svc.CancelOrder(ctx, f.user.ID(), o.ID, CancelOrderRequest{})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestPayShipConfirm(t *testing.T) {
	f := newFixture(t, 10000)
	ctx := context.Background()
	o, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{
		Items: []OrderLineRequest{{SKUID: f.small.ID, Quantity: 2}}, AddressID: f.address.ID,
	})
	require.NoError(t, err)

	amount, err := f.svc.PaymentAmount(ctx, f.user.ID(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), amount)

	paid, err := f.svc.PayWithBalance(ctx, f.user.ID(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	u, err := f.repos.Users.FindByID(ctx, f.user.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(4000), u.Balance())

	// 已支付订单不能取消
	_, err = f.svc.CancelOrder(ctx, f.user.ID(), o.ID, CancelOrderRequest{})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	_, err = f.svc.ConfirmReceipt(ctx, f.user.ID(), o.ID)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	shipped, err := f.svc.ShipOrder(ctx, o.ID, ShipOrderRequest{ShippingCompany: "SF", TrackingNo: "SF123"})
	require.NoError(t, err)
	assert.Equal(t, "shipped", shipped.Status)

	done, err := f.svc.ConfirmReceipt(ctx, f.user.ID(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.CompletedAt)
}

func TestPayWithInsufficientBalance(t *testing.T) {
	f := newFixture(t, 1000)
	ctx := context.Background()
	o, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{
		Items: []OrderLineRequest{{SKUID: f.small.ID, Quantity: 1}}, AddressID: f.address.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.PayWithBalance(ctx, f.user.ID(), o.ID)
	assert.True(t, errors.Is(err, shared.ErrInsufficient))
	got, err := f.svc.GetOrder(ctx, f.user.ID(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending_payment", got.Status)
}

func TestCancelExpired(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	o, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{
		Items: []OrderLineRequest{{SKUID: f.large.ID, Quantity: 2}}, AddressID: f.address.ID,
	})
	require.NoError(t, err)

	n, err := f.svc.CancelExpired(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Zero(t, n)

	f.svc.now = func() time.Time { return time.Now().Add(time.Hour) }
	n, err = f.svc.CancelExpired(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.GetOrder(ctx, f.user.ID(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, 2, f.sku(t, f.large.ID).Stock)
}

func TestAdminListOrders(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	_, err := f.svc.CreateOrder(ctx, f.user.ID(), CreateOrderRequest{
		Items: []OrderLineRequest{{SKUID: f.small.ID, Quantity: 1}}, AddressID: f.address.ID,
	})
	require.NoError(t, err)

	all, err := f.svc.ListOrders(ctx, ListOrdersRequest{Status: "pending_payment"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), all.Total)

	other := mysqltest.SeedUser(t, f.db, "other", 0)
	mine, err := f.svc.ListMyOrders(ctx, other.ID(), ListOrdersRequest{})
	require.NoError(t, err)
	assert.Zero(t, mine.Total)
}
