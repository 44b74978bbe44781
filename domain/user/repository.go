package user

import (
	"context"

	"petcare/domain/shared"
)

// Counter names a denormalized counter column on users.
type Counter string

const (
	CounterFollowers Counter = "follower_count"
	CounterFollowing Counter = "following_count"
	CounterPosts     Counter = "post_count"
)

// ListFilter filters the admin user list.
type ListFilter struct {
	Keyword  string
	IsActive *bool
}

// Repository persists users. Save only writes profile columns; balance,
// integral and counters move through the Adjust methods.
type Repository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, filter ListFilter, page shared.PageQuery) ([]*User, int64, error)

	// AdjustBalance adds delta fen and returns the new balance. A result
	// below zero fails with an insufficient-balance error.
	AdjustBalance(ctx context.Context, id string, delta int64) (int64, error)

	// AdjustIntegral is AdjustBalance for integral points.
	AdjustIntegral(ctx context.Context, id string, delta int64) (int64, error)

	AdjustCounter(ctx context.Context, id string, counter Counter, delta int) error
}

type AdminRepository interface {
	Save(ctx context.Context, admin *Admin) error
	FindByID(ctx context.Context, id string) (*Admin, error)
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	List(ctx context.Context, page shared.PageQuery) ([]*Admin, int64, error)
	Count(ctx context.Context) (int64, error)
}

type AddressRepository interface {
	Save(ctx context.Context, address *Address) error
	FindByID(ctx context.Context, id string) (*Address, error)
	ListByUser(ctx context.Context, userID string) ([]*Address, error)
	Delete(ctx context.Context, id string) error
	// ClearDefault unsets the default flag on every address of the user.
	ClearDefault(ctx context.Context, userID string) error
}
