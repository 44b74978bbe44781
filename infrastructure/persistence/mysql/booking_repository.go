package mysql

import (
	"context"

	"petcare/domain/booking"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type ServiceItemRepository struct {
	baseRepository
}

func NewServiceItemRepository(db *gorm.DB) *ServiceItemRepository {
	return &ServiceItemRepository{baseRepository{db: db}}
}

func (r *ServiceItemRepository) Save(ctx context.Context, item *booking.ServiceItem) error {
	return upsert(r.getDB(ctx), po.FromServiceItemDomain(item), item.ID)
}

func (r *ServiceItemRepository) FindByID(ctx context.Context, id string) (*booking.ServiceItem, error) {
	itemPO, err := first[po.ServiceItemPO](r.getDB(ctx).Where("id = ?", id), "service_item")
	if err != nil {
		return nil, err
	}
	return itemPO.ToDomain(), nil
}

func (r *ServiceItemRepository) FindByIDs(ctx context.Context, ids []string) ([]*booking.ServiceItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []po.ServiceItemPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]*booking.ServiceItem, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, nil
}

func (r *ServiceItemRepository) List(ctx context.Context, filter booking.ServiceItemFilter, page shared.PageQuery) ([]*booking.ServiceItem, int64, error) {
	query := r.getDB(ctx).Model(&po.ServiceItemPO{})
	if filter.Kind != "" {
		query = query.Where("kind = ?", string(filter.Kind))
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	rows, total, err := paginate[po.ServiceItemPO](query, page, "sort ASC, created_at ASC")
	if err != nil {
		return nil, 0, err
	}
	items := make([]*booking.ServiceItem, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, total, nil
}

func (r *ServiceItemRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.ServiceItemPO](r.getDB(ctx), id, "service_item")
}

var _ booking.ServiceItemRepository = (*ServiceItemRepository)(nil)

type StaffRepository struct {
	baseRepository
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{baseRepository{db: db}}
}

func (r *StaffRepository) Save(ctx context.Context, s *booking.Staff) error {
	return upsert(r.getDB(ctx), po.FromStaffDomain(s), s.ID)
}

func (r *StaffRepository) FindByID(ctx context.Context, id string) (*booking.Staff, error) {
	staffPO, err := first[po.StaffPO](r.getDB(ctx).Where("id = ?", id), "staff")
	if err != nil {
		return nil, err
	}
	return staffPO.ToDomain(), nil
}

func (r *StaffRepository) List(ctx context.Context, activeOnly bool, page shared.PageQuery) ([]*booking.Staff, int64, error) {
	query := r.getDB(ctx).Model(&po.StaffPO{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	rows, total, err := paginate[po.StaffPO](query, page, "created_at ASC")
	if err != nil {
		return nil, 0, err
	}
	staff := make([]*booking.Staff, len(rows))
	for i := range rows {
		staff[i] = rows[i].ToDomain()
	}
	return staff, total, nil
}

func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.StaffPO](r.getDB(ctx), id, "staff")
}

var _ booking.StaffRepository = (*StaffRepository)(nil)

// ServiceOrderRepository MySQL/GORM implementation of the service order repository
type ServiceOrderRepository struct {
	baseRepository
}

func NewServiceOrderRepository(db *gorm.DB) *ServiceOrderRepository {
	return &ServiceOrderRepository{baseRepository{db: db}}
}

func (r *ServiceOrderRepository) Save(ctx context.Context, o *booking.ServiceOrder) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		orderPO := po.FromServiceOrderDomain(o)

		if o.IsNew() {
			if err := tx.Create(orderPO).Error; err != nil {
				return err
			}
			o.ClearNewFlag()
			return nil
		}

		expectedVersion := o.Version()
		result := tx.Model(&po.ServiceOrderPO{}).
			Where("id = ? AND version = ?", o.ID(), expectedVersion).
			Updates(map[string]interface{}{
				"staff_id":      orderPO.StaffID,
				"status":        orderPO.Status,
				"is_paid":       orderPO.IsPaid,
				"paid_at":       orderPO.PaidAt,
				"cancel_reason": orderPO.CancelReason,
				"version":       expectedVersion + 1,
				"updated_at":    orderPO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&po.ServiceOrderPO{}).Where("id = ?", o.ID()).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return booking.NewServiceOrderNotFoundError()
			}
			return shared.NewConcurrentModificationError("service_order")
		}
		o.IncrementVersionForSave()
		return nil
	})
}

func (r *ServiceOrderRepository) FindByID(ctx context.Context, id string) (*booking.ServiceOrder, error) {
	orderPO, err := first[po.ServiceOrderPO](r.getDB(ctx).Where("id = ?", id), "service_order")
	if err != nil {
		return nil, err
	}
	return orderPO.ToDomain(), nil
}

func (r *ServiceOrderRepository) List(ctx context.Context, filter booking.OrderFilter, page shared.PageQuery) ([]*booking.ServiceOrder, int64, error) {
	query := r.getDB(ctx).Model(&po.ServiceOrderPO{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.StaffID != "" {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	rows, total, err := paginate[po.ServiceOrderPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	orders := make([]*booking.ServiceOrder, len(rows))
	for i := range rows {
		orders[i] = rows[i].ToDomain()
	}
	return orders, total, nil
}

var _ booking.ServiceOrderRepository = (*ServiceOrderRepository)(nil)
