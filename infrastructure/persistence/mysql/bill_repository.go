package mysql

import (
	"context"

	"petcare/domain/bill"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type BillRepository struct {
	baseRepository
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{baseRepository{db: db}}
}

func (r *BillRepository) Save(ctx context.Context, b *bill.Bill) error {
	return upsert(r.getDB(ctx), po.FromBillDomain(b), b.ID)
}

func (r *BillRepository) FindByID(ctx context.Context, id string) (*bill.Bill, error) {
	billPO, err := first[po.BillPO](r.getDB(ctx).Where("id = ?", id), "bill")
	if err != nil {
		return nil, err
	}
	return billPO.ToDomain(), nil
}

func (r *BillRepository) FindByOutTradeNo(ctx context.Context, outTradeNo string) (*bill.Bill, error) {
	billPO, err := first[po.BillPO](r.getDB(ctx).Where("out_trade_no = ?", outTradeNo), "bill")
	if err != nil {
		return nil, err
	}
	return billPO.ToDomain(), nil
}

func (r *BillRepository) FindPendingByOrder(ctx context.Context, orderType bill.OrderType, orderID string) ([]*bill.Bill, error) {
	var rows []po.BillPO
	err := r.getDB(ctx).
		Where("order_type = ? AND order_id = ? AND status = ? AND channel = ?",
			string(orderType), orderID, string(bill.StatusPending), string(bill.ChannelWechat)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	bills := make([]*bill.Bill, len(rows))
	for i := range rows {
		bills[i] = rows[i].ToDomain()
	}
	return bills, nil
}

func (r *BillRepository) List(ctx context.Context, filter bill.ListFilter, page shared.PageQuery) ([]*bill.Bill, int64, error) {
	query := r.getDB(ctx).Model(&po.BillPO{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.OrderType != "" {
		query = query.Where("order_type = ?", string(filter.OrderType))
	}

	rows, total, err := paginate[po.BillPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	bills := make([]*bill.Bill, len(rows))
	for i := range rows {
		bills[i] = rows[i].ToDomain()
	}
	return bills, total, nil
}

var _ bill.Repository = (*BillRepository)(nil)
