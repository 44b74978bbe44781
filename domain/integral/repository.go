package integral

import (
	"context"

	"petcare/domain/shared"
)

type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, activeOnly bool, page shared.PageQuery) ([]*Product, int64, error)
	Delete(ctx context.Context, id string) error
	DecreaseStock(ctx context.Context, id string, quantity int) error
}

type OrderFilter struct {
	UserID string
	Status OrderStatus
}

type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter OrderFilter, page shared.PageQuery) ([]*Order, int64, error)
}

type RecordRepository interface {
	Save(ctx context.Context, record *Record) error
	List(ctx context.Context, userID string, page shared.PageQuery) ([]*Record, int64, error)
	// ExistsByRef makes event-driven awards idempotent.
	ExistsByRef(ctx context.Context, userID string, reason Reason, refID string) (bool, error)
}

type SignInRepository interface {
	// Create fails with a conflict when the user already signed in that day.
	Create(ctx context.Context, signIn *SignIn) error
	Exists(ctx context.Context, userID, date string) (bool, error)
	CountSince(ctx context.Context, userID, fromDate string) (int64, error)
}
