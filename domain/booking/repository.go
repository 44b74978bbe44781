package booking

import (
	"context"

	"petcare/domain/shared"
)

type ServiceItemFilter struct {
	Kind       ItemKind
	ActiveOnly bool
}

type ServiceItemRepository interface {
	Save(ctx context.Context, item *ServiceItem) error
	FindByID(ctx context.Context, id string) (*ServiceItem, error)
	FindByIDs(ctx context.Context, ids []string) ([]*ServiceItem, error)
	List(ctx context.Context, filter ServiceItemFilter, page shared.PageQuery) ([]*ServiceItem, int64, error)
	Delete(ctx context.Context, id string) error
}

type StaffRepository interface {
	Save(ctx context.Context, staff *Staff) error
	FindByID(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context, activeOnly bool, page shared.PageQuery) ([]*Staff, int64, error)
	Delete(ctx context.Context, id string) error
}

type OrderFilter struct {
	UserID  string
	StaffID string
	Status  Status
}

type ServiceOrderRepository interface {
	Save(ctx context.Context, order *ServiceOrder) error
	FindByID(ctx context.Context, id string) (*ServiceOrder, error)
	List(ctx context.Context, filter OrderFilter, page shared.PageQuery) ([]*ServiceOrder, int64, error)
}
