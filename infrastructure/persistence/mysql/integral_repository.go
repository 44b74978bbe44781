package mysql

import (
	"context"
	"time"

	"petcare/domain/integral"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type IntegralProductRepository struct {
	baseRepository
}

func NewIntegralProductRepository(db *gorm.DB) *IntegralProductRepository {
	return &IntegralProductRepository{baseRepository{db: db}}
}

func (r *IntegralProductRepository) Save(ctx context.Context, p *integral.Product) error {
	return upsert(r.getDB(ctx), po.FromIntegralProductDomain(p), p.ID)
}

func (r *IntegralProductRepository) FindByID(ctx context.Context, id string) (*integral.Product, error) {
	row, err := first[po.IntegralProductPO](r.getDB(ctx).Where("id = ?", id), "integral_product")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *IntegralProductRepository) List(ctx context.Context, activeOnly bool, page shared.PageQuery) ([]*integral.Product, int64, error) {
	query := r.getDB(ctx).Model(&po.IntegralProductPO{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	rows, total, err := paginate[po.IntegralProductPO](query, page, "sort ASC, created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	products := make([]*integral.Product, len(rows))
	for i := range rows {
		products[i] = rows[i].ToDomain()
	}
	return products, total, nil
}

func (r *IntegralProductRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.IntegralProductPO](r.getDB(ctx), id, "integral_product")
}

func (r *IntegralProductRepository) DecreaseStock(ctx context.Context, id string, quantity int) error {
	ok, err := decrementGuarded[po.IntegralProductPO](r.getDB(ctx), id, "stock", int64(quantity), "")
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewInsufficientError("integral_product", "insufficient stock")
	}
	return nil
}

var _ integral.ProductRepository = (*IntegralProductRepository)(nil)

type IntegralOrderRepository struct {
	baseRepository
}

func NewIntegralOrderRepository(db *gorm.DB) *IntegralOrderRepository {
	return &IntegralOrderRepository{baseRepository{db: db}}
}

func (r *IntegralOrderRepository) Save(ctx context.Context, o *integral.Order) error {
	return upsert(r.getDB(ctx), po.FromIntegralOrderDomain(o), o.ID)
}

func (r *IntegralOrderRepository) FindByID(ctx context.Context, id string) (*integral.Order, error) {
	row, err := first[po.IntegralOrderPO](r.getDB(ctx).Where("id = ?", id), "integral_order")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *IntegralOrderRepository) List(ctx context.Context, filter integral.OrderFilter, page shared.PageQuery) ([]*integral.Order, int64, error) {
	query := r.getDB(ctx).Model(&po.IntegralOrderPO{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	rows, total, err := paginate[po.IntegralOrderPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	orders := make([]*integral.Order, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, total, nil
}

var _ integral.OrderRepository = (*IntegralOrderRepository)(nil)

type IntegralRecordRepository struct {
	baseRepository
}

func NewIntegralRecordRepository(db *gorm.DB) *IntegralRecordRepository {
	return &IntegralRecordRepository{baseRepository{db: db}}
}

func (r *IntegralRecordRepository) Save(ctx context.Context, record *integral.Record) error {
	return r.getDB(ctx).Create(po.FromIntegralRecordDomain(record)).Error
}

func (r *IntegralRecordRepository) List(ctx context.Context, userID string, page shared.PageQuery) ([]*integral.Record, int64, error) {
	query := r.getDB(ctx).Model(&po.IntegralRecordPO{}).Where("user_id = ?", userID)
	rows, total, err := paginate[po.IntegralRecordPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	records := make([]*integral.Record, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, total, nil
}

func (r *IntegralRecordRepository) ExistsByRef(ctx context.Context, userID string, reason integral.Reason, refID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.IntegralRecordPO{}).
		Where("user_id = ? AND reason = ? AND ref_id = ?", userID, string(reason), refID).
		Count(&count).Error
	return count > 0, err
}

var _ integral.RecordRepository = (*IntegralRecordRepository)(nil)

type SignInRepository struct {
	baseRepository
}

func NewSignInRepository(db *gorm.DB) *SignInRepository {
	return &SignInRepository{baseRepository{db: db}}
}

func (r *SignInRepository) Create(ctx context.Context, s *integral.SignIn) error {
	row := &po.SignInPO{UserID: s.UserID, SignDate: s.Date, Points: s.Points, CreatedAt: s.CreatedAt}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}
	if err := r.getDB(ctx).Create(row).Error; err != nil {
		if isDuplicateKeyError(err) {
			return integral.NewAlreadySignedInError(s.Date)
		}
		return err
	}
	return nil
}

func (r *SignInRepository) Exists(ctx context.Context, userID, date string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.SignInPO{}).
		Where("user_id = ? AND sign_date = ?", userID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *SignInRepository) CountSince(ctx context.Context, userID, fromDate string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.SignInPO{}).
		Where("user_id = ? AND sign_date >= ?", userID, fromDate).
		Count(&count).Error
	return count, err
}

var _ integral.SignInRepository = (*SignInRepository)(nil)
