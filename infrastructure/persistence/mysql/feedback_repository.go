package mysql

import (
	"context"
	"time"

	"petcare/domain/attach"
	"petcare/domain/feedback"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	baseRepository
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{baseRepository{db: db}}
}

func (r *FeedbackRepository) Save(ctx context.Context, f *feedback.Feedback) error {
	return upsert(r.getDB(ctx), po.FromFeedbackDomain(f), f.ID)
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*feedback.Feedback, error) {
	row, err := first[po.FeedbackPO](r.getDB(ctx).Where("id = ?", id), "feedback")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *FeedbackRepository) List(ctx context.Context, filter feedback.ListFilter, page shared.PageQuery) ([]*feedback.Feedback, int64, error) {
	query := r.getDB(ctx).Model(&po.FeedbackPO{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	rows, total, err := paginate[po.FeedbackPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	items := make([]*feedback.Feedback, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, total, nil
}

var _ feedback.Repository = (*FeedbackRepository)(nil)

type BannerRepository struct {
	baseRepository
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{baseRepository{db: db}}
}

func (r *BannerRepository) Save(ctx context.Context, b *attach.Banner) error {
	return upsert(r.getDB(ctx), po.FromBannerDomain(b), b.ID)
}

func (r *BannerRepository) FindByID(ctx context.Context, id string) (*attach.Banner, error) {
	row, err := first[po.BannerPO](r.getDB(ctx).Where("id = ?", id), "banner")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *BannerRepository) ListLive(ctx context.Context, position string, at time.Time) ([]*attach.Banner, error) {
	var rows []po.BannerPO
	err := r.getDB(ctx).
		Where("position = ? AND is_active = ?", position, true).
		Where("start_at IS NULL OR start_at <= ?", at).
		Where("end_at IS NULL OR end_at > ?", at).
		Order("sort ASC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	banners := make([]*attach.Banner, len(rows))
	for i := range rows {
		banners[i] = rows[i].ToDomain()
	}
	return banners, nil
}

func (r *BannerRepository) List(ctx context.Context, page shared.PageQuery) ([]*attach.Banner, int64, error) {
	rows, total, err := paginate[po.BannerPO](r.getDB(ctx).Model(&po.BannerPO{}), page, "position ASC, sort ASC")
	if err != nil {
		return nil, 0, err
	}
	banners := make([]*attach.Banner, len(rows))
	for i := range rows {
		banners[i] = rows[i].ToDomain()
	}
	return banners, total, nil
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.BannerPO](r.getDB(ctx), id, "banner")
}

var _ attach.BannerRepository = (*BannerRepository)(nil)
