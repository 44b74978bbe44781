package pet

import (
	"context"

	"petcare/domain/shared"
)

type ListFilter struct {
	OwnerID string
	Species Species
}

type Repository interface {
	Save(ctx context.Context, pet *Pet) error
	FindByID(ctx context.Context, id string) (*Pet, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Pet, error)
	List(ctx context.Context, filter ListFilter, page shared.PageQuery) ([]*Pet, int64, error)
	Delete(ctx context.Context, id string) error
}
