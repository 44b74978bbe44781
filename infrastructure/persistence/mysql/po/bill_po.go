package po

import (
	"time"

	"petcare/domain/bill"
)

type BillPO struct {
	ID            string `gorm:"primaryKey;size:64"`
	BillNo        string `gorm:"size:32;uniqueIndex;not null"`
	UserID        string `gorm:"size:64;index;not null"`
	Type          string `gorm:"size:16;index;not null"`
	Channel       string `gorm:"size:16;not null"`
	Amount        int64  `gorm:"not null"`
	Status        string `gorm:"size:16;index;not null"`
	OrderType     string `gorm:"size:16;index:idx_bill_order"`
	OrderID       string `gorm:"size:64;index:idx_bill_order"`
	OutTradeNo    string `gorm:"size:32;index"`
	TransactionID string `gorm:"size:64"`
	PaidAt        *time.Time
	Remark        string    `gorm:"size:255"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (BillPO) TableName() string {
	return "bills"
}

func FromBillDomain(b *bill.Bill) *BillPO {
	return &BillPO{
		ID:            b.ID,
		BillNo:        b.BillNo,
		UserID:        b.UserID,
		Type:          string(b.Type),
		Channel:       string(b.Channel),
		Amount:        b.Amount,
		Status:        string(b.Status),
		OrderType:     string(b.OrderType),
		OrderID:       b.OrderID,
		OutTradeNo:    b.OutTradeNo,
		TransactionID: b.TransactionID,
		PaidAt:        b.PaidAt,
		Remark:        b.Remark,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (po *BillPO) ToDomain() *bill.Bill {
	return &bill.Bill{
		ID:            po.ID,
		BillNo:        po.BillNo,
		UserID:        po.UserID,
		Type:          bill.Type(po.Type),
		Channel:       bill.Channel(po.Channel),
		Amount:        po.Amount,
		Status:        bill.Status(po.Status),
		OrderType:     bill.OrderType(po.OrderType),
		OrderID:       po.OrderID,
		OutTradeNo:    po.OutTradeNo,
		TransactionID: po.TransactionID,
		PaidAt:        po.PaidAt,
		Remark:        po.Remark,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}
}
