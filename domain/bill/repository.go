package bill

import (
	"context"

	"petcare/domain/shared"
)

type ListFilter struct {
	UserID    string
	Type      Type
	Status    Status
	OrderType OrderType
}

type Repository interface {
	Save(ctx context.Context, bill *Bill) error
	FindByID(ctx context.Context, id string) (*Bill, error)
	FindByOutTradeNo(ctx context.Context, outTradeNo string) (*Bill, error)
	// FindPendingByOrder returns the open WeChat bills of an order.
	FindPendingByOrder(ctx context.Context, orderType OrderType, orderID string) ([]*Bill, error)
	List(ctx context.Context, filter ListFilter, page shared.PageQuery) ([]*Bill, int64, error)
}
