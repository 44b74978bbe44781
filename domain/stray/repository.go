package stray

import (
	"context"

	"petcare/domain/shared"
	"petcare/pkg/geo"
)

type ListFilter struct {
	ReporterID   string
	Species      string
	Status       Status
	RescueStatus RescueStatus
}

type Repository interface {
	Save(ctx context.Context, animal *Animal) error
	FindByID(ctx context.Context, id string) (*Animal, error)
	List(ctx context.Context, filter ListFilter, page shared.PageQuery) ([]*Animal, int64, error)
	// ListInBox returns approved strays inside the box, capped at limit.
	ListInBox(ctx context.Context, box geo.Box, limit int) ([]*Animal, error)
	Delete(ctx context.Context, id string) error

	SaveInteraction(ctx context.Context, interaction *Interaction) error
	ListInteractions(ctx context.Context, strayID string, page shared.PageQuery) ([]*Interaction, int64, error)
}
