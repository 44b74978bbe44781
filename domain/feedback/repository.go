package feedback

import (
	"context"

	"petcare/domain/shared"
)

type ListFilter struct {
	UserID string
	Type   Type
	Status Status
}

type Repository interface {
	Save(ctx context.Context, feedback *Feedback) error
	FindByID(ctx context.Context, id string) (*Feedback, error)
	List(ctx context.Context, filter ListFilter, page shared.PageQuery) ([]*Feedback, int64, error)
}
