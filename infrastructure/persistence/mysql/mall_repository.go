package mysql

import (
	"context"
	"time"

	"petcare/domain/mall"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	baseRepository
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{baseRepository{db: db}}
}

func (r *CategoryRepository) Save(ctx context.Context, c *mall.Category) error {
	return upsert(r.getDB(ctx), po.FromCategoryDomain(c), c.ID)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*mall.Category, error) {
	row, err := first[po.CategoryPO](r.getDB(ctx).Where("id = ?", id), "category")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]*mall.Category, error) {
	query := r.getDB(ctx).Model(&po.CategoryPO{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []po.CategoryPO
	if err := query.Order("sort ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]*mall.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].ToDomain()
	}
	return categories, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.CategoryPO](r.getDB(ctx), id, "category")
}

var _ mall.CategoryRepository = (*CategoryRepository)(nil)

type ProductRepository struct {
	baseRepository
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{baseRepository{db: db}}
}

func (r *ProductRepository) Save(ctx context.Context, p *mall.Product) error {
	return upsert(r.getDB(ctx), po.FromProductDomain(p), p.ID, "sales")
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*mall.Product, error) {
	row, err := first[po.ProductPO](r.getDB(ctx).Where("id = ?", id), "product")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*mall.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []po.ProductPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]*mall.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, nil
}

func productOrder(order mall.ProductOrder) string {
	switch order {
	case mall.ProductOrderPriceAsc:
		return "price ASC, created_at DESC"
	case mall.ProductOrderPriceDesc:
		return "price DESC, created_at DESC"
	case mall.ProductOrderSales:
		return "sales DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

func (r *ProductRepository) List(ctx context.Context, filter mall.ProductFilter, page shared.PageQuery) ([]*mall.Product, int64, error) {
	query := r.getDB(ctx).Model(&po.ProductPO{})
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		like := likePattern(filter.Keyword)
		query = query.Where("name LIKE ? OR subtitle LIKE ?", like, like)
	}
	if filter.OnSaleOnly {
		query = query.Where("is_on_sale = ?", true)
	}

	rows, total, err := paginate[po.ProductPO](query, page, productOrder(filter.Order))
	if err != nil {
		return nil, 0, err
	}
	products := make([]*mall.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, total, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&po.SKUPO{}).Error; err != nil {
			return err
		}
		return deleteByID[po.ProductPO](tx, id, "product")
	})
}

func (r *ProductRepository) AdjustSales(ctx context.Context, id string, delta int) error {
	return incrementColumn[po.ProductPO](r.getDB(ctx), id, "sales", int64(delta))
}

var _ mall.ProductRepository = (*ProductRepository)(nil)

type SKURepository struct {
	baseRepository
}

func NewSKURepository(db *gorm.DB) *SKURepository {
	return &SKURepository{baseRepository{db: db}}
}

// Save never overwrites sales; stock is written as edited by an admin.
func (r *SKURepository) Save(ctx context.Context, s *mall.SKU) error {
	return upsert(r.getDB(ctx), po.FromSKUDomain(s), s.ID, "sales")
}

func (r *SKURepository) FindByID(ctx context.Context, id string) (*mall.SKU, error) {
	row, err := first[po.SKUPO](r.getDB(ctx).Where("id = ?", id), "sku")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *SKURepository) FindByIDs(ctx context.Context, ids []string) ([]*mall.SKU, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []po.SKUPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSKUs(rows), nil
}

func (r *SKURepository) ListByProduct(ctx context.Context, productID string) ([]*mall.SKU, error) {
	var rows []po.SKUPO
	if err := r.getDB(ctx).Where("product_id = ?", productID).Order("price ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSKUs(rows), nil
}

func toSKUs(rows []po.SKUPO) []*mall.SKU {
	skus := make([]*mall.SKU, len(rows))
	for i := range rows {
		skus[i] = rows[i].ToDomain()
	}
	return skus
}

func (r *SKURepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.SKUPO](r.getDB(ctx), id, "sku")
}

func (r *SKURepository) DecreaseStock(ctx context.Context, id string, quantity int) error {
	ok, err := decrementGuarded[po.SKUPO](r.getDB(ctx), id, "stock", int64(quantity), "sales")
	if err != nil {
		return err
	}
	if !ok {
		return mall.NewInsufficientStockError(id)
	}
	return nil
}

func (r *SKURepository) RestoreStock(ctx context.Context, id string, quantity int) error {
	return r.getDB(ctx).Model(&po.SKUPO{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"stock": gorm.Expr("stock + ?", quantity),
			"sales": gorm.Expr("CASE WHEN sales >= ? THEN sales - ? ELSE 0 END", quantity, quantity),
		}).Error
}

var _ mall.SKURepository = (*SKURepository)(nil)

type CartRepository struct {
	baseRepository
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{baseRepository{db: db}}
}

func (r *CartRepository) Save(ctx context.Context, item *mall.CartItem) error {
	return upsert(r.getDB(ctx), po.FromCartItemDomain(item), item.ID)
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*mall.CartItem, error) {
	row, err := first[po.CartItemPO](r.getDB(ctx).Where("id = ?", id), "cart_item")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *CartRepository) FindByUserAndSKU(ctx context.Context, userID, skuID string) (*mall.CartItem, error) {
	row, err := first[po.CartItemPO](r.getDB(ctx).Where("user_id = ? AND sku_id = ?", userID, skuID), "cart_item")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]*mall.CartItem, error) {
	var rows []po.CartItemPO
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*mall.CartItem, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.CartItemPO](r.getDB(ctx), id, "cart_item")
}

func (r *CartRepository) DeleteByUserAndSKUs(ctx context.Context, userID string, skuIDs []string) error {
	if len(skuIDs) == 0 {
		return nil
	}
	return r.getDB(ctx).Where("user_id = ? AND sku_id IN ?", userID, skuIDs).Delete(&po.CartItemPO{}).Error
}

var _ mall.CartRepository = (*CartRepository)(nil)

// MallOrderRepository MySQL/GORM implementation of mall order repository
// Items are written once with the order; later saves only touch the order row.
type MallOrderRepository struct {
	baseRepository
}

func NewMallOrderRepository(db *gorm.DB) *MallOrderRepository {
	return &MallOrderRepository{baseRepository{db: db}}
}

func (r *MallOrderRepository) Save(ctx context.Context, o *mall.Order) error {
	orderPO, itemPOs := po.FromMallOrderDomain(o)

	return r.inTx(ctx, func(tx *gorm.DB) error {
		if o.IsNew() {
			if err := tx.Create(orderPO).Error; err != nil {
				return err
			}
			if len(itemPOs) > 0 {
				if err := tx.Create(&itemPOs).Error; err != nil {
					return err
				}
			}
			o.ClearNewFlag()
			return nil
		}

		expectedVersion := o.Version()
		result := tx.Model(&po.MallOrderPO{}).
			Where("id = ? AND version = ?", o.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"status":           orderPO.Status,
				"shipping_company": orderPO.ShippingCompany,
				"tracking_no":      orderPO.TrackingNo,
				"cancel_reason":    orderPO.CancelReason,
				"paid_at":          orderPO.PaidAt,
				"shipped_at":       orderPO.ShippedAt,
				"completed_at":     orderPO.CompletedAt,
				"version":          expectedVersion + 1,
				"updated_at":       orderPO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.MallOrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.NewNotFoundError("mall_order")
			}
			return shared.NewConcurrentModificationError("mall_order")
		}
		o.IncrementVersionForSave()
		return nil
	})
}

func (r *MallOrderRepository) FindByID(ctx context.Context, id string) (*mall.Order, error) {
	db := r.getDB(ctx)
	orderPO, err := first[po.MallOrderPO](db.Where("id = ?", id), "mall_order")
	if err != nil {
		return nil, err
	}
	var itemPOs []po.MallOrderItemPO
	if err := db.Where("order_id = ?", id).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs), nil
}

func (r *MallOrderRepository) List(ctx context.Context, filter mall.OrderFilter, page shared.PageQuery) ([]*mall.Order, int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&po.MallOrderPO{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	rows, total, err := paginate[po.MallOrderPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return []*mall.Order{}, total, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	var itemPOs []po.MallOrderItemPO
	if err := db.Where("order_id IN ?", ids).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, 0, err
	}
	itemsByOrder := make(map[string][]po.MallOrderItemPO, len(rows))
	for _, item := range itemPOs {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	orders := make([]*mall.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain(itemsByOrder[rows[i].ID])
	}
	return orders, total, nil
}

func (r *MallOrderRepository) ListExpiredIDs(ctx context.Context, createdBefore time.Time, limit int) ([]string, error) {
	ids := make([]string, 0)
	err := r.getDB(ctx).Model(&po.MallOrderPO{}).
		Where("status = ? AND created_at < ?", string(mall.StatusPendingPayment), createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

var _ mall.OrderRepository = (*MallOrderRepository)(nil)
