package po

import (
	"fmt"
	"time"

	"petcare/domain/mall"

	"gorm.io/datatypes"
)

type CategoryPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:64;not null"`
	Icon      string    `gorm:"size:500"`
	Sort      int       `gorm:"default:0"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CategoryPO) TableName() string {
	return "mall_categories"
}

func FromCategoryDomain(c *mall.Category) *CategoryPO {
	return &CategoryPO{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Sort:      c.Sort,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (po *CategoryPO) ToDomain() *mall.Category {
	return &mall.Category{
		ID:        po.ID,
		Name:      po.Name,
		Icon:      po.Icon,
		Sort:      po.Sort,
		IsActive:  po.IsActive,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}

type ProductPO struct {
	ID          string                      `gorm:"primaryKey;size:64"`
	CategoryID  string                      `gorm:"size:64;index"`
	Name        string                      `gorm:"size:128;not null"`
	Subtitle    string                      `gorm:"size:255"`
	Description string                      `gorm:"type:text"`
	Cover       string                      `gorm:"size:500"`
	Images      datatypes.JSONSlice[string] `gorm:"type:json"`
	Price       int64                       `gorm:"not null;default:0;index"`
	Sales       int                         `gorm:"not null;default:0"`
	IsOnSale    bool                        `gorm:"default:false;index"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string {
	return "mall_products"
}

func FromProductDomain(p *mall.Product) *ProductPO {
	return &ProductPO{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Subtitle:    p.Subtitle,
		Description: p.Description,
		Cover:       p.Cover,
		Images:      datatypes.JSONSlice[string](p.Images),
		Price:       p.Price,
		Sales:       p.Sales,
		IsOnSale:    p.IsOnSale,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (po *ProductPO) ToDomain() *mall.Product {
	return &mall.Product{
		ID:          po.ID,
		CategoryID:  po.CategoryID,
		Name:        po.Name,
		Subtitle:    po.Subtitle,
		Description: po.Description,
		Cover:       po.Cover,
		Images:      []string(po.Images),
		Price:       po.Price,
		Sales:       po.Sales,
		IsOnSale:    po.IsOnSale,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

type SKUPO struct {
	ID         string            `gorm:"primaryKey;size:64"`
	ProductID  string            `gorm:"size:64;index;not null"`
	Attributes datatypes.JSONMap `gorm:"type:json"`
	Price      int64             `gorm:"not null"`
	Stock      int               `gorm:"not null;default:0"`
	Sales      int               `gorm:"not null;default:0"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime"`
}

func (SKUPO) TableName() string {
	return "mall_skus"
}

func FromSKUDomain(s *mall.SKU) *SKUPO {
	attrs := make(datatypes.JSONMap, len(s.Attributes))
	for k, v := range s.Attributes {
		attrs[k] = v
	}
	return &SKUPO{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Attributes: attrs,
		Price:      s.Price,
		Stock:      s.Stock,
		Sales:      s.Sales,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (po *SKUPO) ToDomain() *mall.SKU {
	attrs := make(map[string]string, len(po.Attributes))
	for k, v := range po.Attributes {
		attrs[k] = fmt.Sprint(v)
	}
	return &mall.SKU{
		ID:         po.ID,
		ProductID:  po.ProductID,
		Attributes: attrs,
		Price:      po.Price,
		Stock:      po.Stock,
		Sales:      po.Sales,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
}

type CartItemPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;uniqueIndex:idx_cart_user_sku;not null"`
	SKUID     string    `gorm:"column:sku_id;size:64;uniqueIndex:idx_cart_user_sku;not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CartItemPO) TableName() string {
	return "mall_cart_items"
}

func FromCartItemDomain(c *mall.CartItem) *CartItemPO {
	return &CartItemPO{
		ID:        c.ID,
		UserID:    c.UserID,
		SKUID:     c.SKUID,
		Quantity:  c.Quantity,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (po *CartItemPO) ToDomain() *mall.CartItem {
	return &mall.CartItem{
		ID:        po.ID,
		UserID:    po.UserID,
		SKUID:     po.SKUID,
		Quantity:  po.Quantity,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}

type MallOrderPO struct {
	ID              string `gorm:"primaryKey;size:64"`
	OrderNo         string `gorm:"size:32;uniqueIndex;not null"`
	UserID          string `gorm:"size:64;index;not null"`
	TotalAmount     int64  `gorm:"not null"`
	Address         string `gorm:"size:500;not null"`
	Remark          string `gorm:"size:500"`
	Status          string `gorm:"size:20;index:idx_mall_order_status_created;not null"`
	ShippingCompany string `gorm:"size:64"`
	TrackingNo      string `gorm:"size:64"`
	CancelReason    string `gorm:"size:255"`
	PaidAt          *time.Time
	ShippedAt       *time.Time
	CompletedAt     *time.Time
	Version         int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index:idx_mall_order_status_created"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (MallOrderPO) TableName() string {
	return "mall_orders"
}

// MallOrderItemPO is the price snapshot of one SKU on an order.
type MallOrderItemPO struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	OrderID     string `gorm:"size:64;index;not null"`
	ProductID   string `gorm:"size:64;not null"`
	SKUID       string `gorm:"column:sku_id;size:64;not null"`
	ProductName string `gorm:"size:128;not null"`
	SKULabel    string `gorm:"column:sku_label;size:255"`
	Cover       string `gorm:"size:500"`
	Price       int64  `gorm:"not null"`
	Quantity    int    `gorm:"not null"`
	Subtotal    int64  `gorm:"not null"`
}

func (MallOrderItemPO) TableName() string {
	return "mall_order_items"
}

func FromMallOrderDomain(o *mall.Order) (*MallOrderPO, []MallOrderItemPO) {
	orderPO := &MallOrderPO{
		ID:              o.ID(),
		OrderNo:         o.OrderNo(),
		UserID:          o.UserID(),
		TotalAmount:     o.TotalAmount(),
		Address:         o.Address(),
		Remark:          o.Remark(),
		Status:          string(o.Status()),
		ShippingCompany: o.ShippingCompany(),
		TrackingNo:      o.TrackingNo(),
		CancelReason:    o.CancelReason(),
		PaidAt:          o.PaidAt(),
		ShippedAt:       o.ShippedAt(),
		CompletedAt:     o.CompletedAt(),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]MallOrderItemPO, 0, len(items))
	for _, item := range items {
		itemPOs = append(itemPOs, MallOrderItemPO{
			OrderID:     o.ID(),
			ProductID:   item.ProductID,
			SKUID:       item.SKUID,
			ProductName: item.ProductName,
			SKULabel:    item.SKULabel,
			Cover:       item.Cover,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}
	return orderPO, itemPOs
}

func (po *MallOrderPO) ToDomain(itemPOs []MallOrderItemPO) *mall.Order {
	items := make([]mall.OrderItem, 0, len(itemPOs))
	for _, item := range itemPOs {
		items = append(items, mall.OrderItem{
			ProductID:   item.ProductID,
			SKUID:       item.SKUID,
			ProductName: item.ProductName,
			SKULabel:    item.SKULabel,
			Cover:       item.Cover,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}
	return mall.RebuildFromDTO(mall.ReconstructionDTO{
		ID:              po.ID,
		OrderNo:         po.OrderNo,
		UserID:          po.UserID,
		Items:           items,
		Address:         po.Address,
		Remark:          po.Remark,
		Status:          po.Status,
		ShippingCompany: po.ShippingCompany,
		TrackingNo:      po.TrackingNo,
		CancelReason:    po.CancelReason,
		PaidAt:          po.PaidAt,
		ShippedAt:       po.ShippedAt,
		CompletedAt:     po.CompletedAt,
		Version:         po.Version,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	})
}
