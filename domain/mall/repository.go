package mall

import (
	"context"
	"time"

	"petcare/domain/shared"
)

type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context, activeOnly bool) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}

type ProductOrder string

const (
	ProductOrderNewest    ProductOrder = "newest"
	ProductOrderPriceAsc  ProductOrder = "price_asc"
	ProductOrderPriceDesc ProductOrder = "price_desc"
	ProductOrderSales     ProductOrder = "sales"
)

type ProductFilter struct {
	CategoryID string
	Keyword    string
	OnSaleOnly bool
	Order      ProductOrder
}

type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Product, error)
	List(ctx context.Context, filter ProductFilter, page shared.PageQuery) ([]*Product, int64, error)
	Delete(ctx context.Context, id string) error
	AdjustSales(ctx context.Context, id string, delta int) error
}

type SKURepository interface {
	Save(ctx context.Context, sku *SKU) error
	FindByID(ctx context.Context, id string) (*SKU, error)
	FindByIDs(ctx context.Context, ids []string) ([]*SKU, error)
	ListByProduct(ctx context.Context, productID string) ([]*SKU, error)
	Delete(ctx context.Context, id string) error
	// DecreaseStock takes quantity off stock and adds it to sales; it fails
	// with an insufficient-stock error instead of going negative.
	DecreaseStock(ctx context.Context, id string, quantity int) error
	// RestoreStock undoes DecreaseStock.
	RestoreStock(ctx context.Context, id string, quantity int) error
}

type CartRepository interface {
	Save(ctx context.Context, item *CartItem) error
	FindByID(ctx context.Context, id string) (*CartItem, error)
	FindByUserAndSKU(ctx context.Context, userID, skuID string) (*CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*CartItem, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserAndSKUs(ctx context.Context, userID string, skuIDs []string) error
}

type OrderFilter struct {
	UserID string
	Status Status
}

type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter OrderFilter, page shared.PageQuery) ([]*Order, int64, error)
	// ListExpiredIDs returns unpaid orders created before the cutoff.
	ListExpiredIDs(ctx context.Context, createdBefore time.Time, limit int) ([]string, error)
}
