package attach

import (
	"context"
	"time"

	"petcare/domain/shared"
)

type BannerRepository interface {
	Save(ctx context.Context, banner *Banner) error
	FindByID(ctx context.Context, id string) (*Banner, error)
	// ListLive returns active banners of a position whose window contains at, by sort.
	ListLive(ctx context.Context, position string, at time.Time) ([]*Banner, error)
	List(ctx context.Context, page shared.PageQuery) ([]*Banner, int64, error)
	Delete(ctx context.Context, id string) error
}
