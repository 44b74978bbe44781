package po

import (
	"time"

	"petcare/domain/integral"
)

type IntegralProductPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Name        string    `gorm:"size:128;not null"`
	Description string    `gorm:"type:text"`
	Cover       string    `gorm:"size:500"`
	Points      int64     `gorm:"not null"`
	Stock       int       `gorm:"not null;default:0"`
	Kind        string    `gorm:"size:16;not null"`
	Sort        int       `gorm:"default:0"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (IntegralProductPO) TableName() string {
	return "integral_products"
}

func FromIntegralProductDomain(p *integral.Product) *IntegralProductPO {
	return &IntegralProductPO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Cover:       p.Cover,
		Points:      p.Points,
		Stock:       p.Stock,
		Kind:        string(p.Kind),
		Sort:        p.Sort,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (po *IntegralProductPO) ToDomain() *integral.Product {
	return &integral.Product{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		Cover:       po.Cover,
		Points:      po.Points,
		Stock:       po.Stock,
		Kind:        integral.Kind(po.Kind),
		Sort:        po.Sort,
		IsActive:    po.IsActive,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

type IntegralOrderPO struct {
	ID          string `gorm:"primaryKey;size:64"`
	OrderNo     string `gorm:"size:32;uniqueIndex;not null"`
	UserID      string `gorm:"size:64;index;not null"`
	ProductID   string `gorm:"size:64;not null"`
	ProductName string `gorm:"size:128;not null"`
	Cover       string `gorm:"size:500"`
	Kind        string `gorm:"size:16;not null"`
	Quantity    int    `gorm:"not null"`
	Points      int64  `gorm:"not null"`
	Address     string `gorm:"size:500"`
	RedeemCode  string `gorm:"size:32"`
	Status      string `gorm:"size:16;index;not null"`
	TrackingNo  string `gorm:"size:64"`
	ShippedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (IntegralOrderPO) TableName() string {
	return "integral_orders"
}

func FromIntegralOrderDomain(o *integral.Order) *IntegralOrderPO {
	return &IntegralOrderPO{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		Cover:       o.Cover,
		Kind:        string(o.Kind),
		Quantity:    o.Quantity,
		Points:      o.Points,
		Address:     o.Address,
		RedeemCode:  o.RedeemCode,
		Status:      string(o.Status),
		TrackingNo:  o.TrackingNo,
		ShippedAt:   o.ShippedAt,
		CompletedAt: o.CompletedAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (po *IntegralOrderPO) ToDomain() *integral.Order {
	return &integral.Order{
		ID:          po.ID,
		OrderNo:     po.OrderNo,
		UserID:      po.UserID,
		ProductID:   po.ProductID,
		ProductName: po.ProductName,
		Cover:       po.Cover,
		Kind:        integral.Kind(po.Kind),
		Quantity:    po.Quantity,
		Points:      po.Points,
		Address:     po.Address,
		RedeemCode:  po.RedeemCode,
		Status:      integral.OrderStatus(po.Status),
		TrackingNo:  po.TrackingNo,
		ShippedAt:   po.ShippedAt,
		CompletedAt: po.CompletedAt,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

type IntegralRecordPO struct {
	ID           string    `gorm:"primaryKey;size:64"`
	UserID       string    `gorm:"size:64;index:idx_integral_record_ref;not null"`
	Change       int64     `gorm:"not null"`
	BalanceAfter int64     `gorm:"not null"`
	Reason       string    `gorm:"size:20;index:idx_integral_record_ref;not null"`
	RefID        string    `gorm:"size:64;index:idx_integral_record_ref"`
	Remark       string    `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (IntegralRecordPO) TableName() string {
	return "integral_records"
}

func FromIntegralRecordDomain(r *integral.Record) *IntegralRecordPO {
	return &IntegralRecordPO{
		ID:           r.ID,
		UserID:       r.UserID,
		Change:       r.Change,
		BalanceAfter: r.BalanceAfter,
		Reason:       string(r.Reason),
		RefID:        r.RefID,
		Remark:       r.Remark,
		CreatedAt:    r.CreatedAt,
	}
}

func (po *IntegralRecordPO) ToDomain() *integral.Record {
	return &integral.Record{
		ID:           po.ID,
		UserID:       po.UserID,
		Change:       po.Change,
		BalanceAfter: po.BalanceAfter,
		Reason:       integral.Reason(po.Reason),
		RefID:        po.RefID,
		Remark:       po.Remark,
		CreatedAt:    po.CreatedAt,
	}
}

// SignInPO enforces one sign-in per user and day through its primary key.
type SignInPO struct {
	UserID    string    `gorm:"primaryKey;size:64"`
	SignDate  string    `gorm:"primaryKey;size:10"`
	Points    int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (SignInPO) TableName() string {
	return "sign_ins"
}
