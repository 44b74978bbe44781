package mysql

import (
	"context"
	"math"

	"petcare/domain/shared"
	"petcare/domain/stray"
	"petcare/infrastructure/persistence/mysql/po"
	"petcare/pkg/geo"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StrayRepository struct {
	baseRepository
}

func NewStrayRepository(db *gorm.DB) *StrayRepository {
	return &StrayRepository{baseRepository{db: db}}
}

func (r *StrayRepository) Save(ctx context.Context, a *stray.Animal) error {
	return upsert(r.getDB(ctx), po.FromStrayDomain(a), a.ID)
}

func (r *StrayRepository) FindByID(ctx context.Context, id string) (*stray.Animal, error) {
	row, err := first[po.StrayAnimalPO](r.getDB(ctx).Where("id = ?", id), "stray")
	if err != nil {
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *StrayRepository) List(ctx context.Context, filter stray.ListFilter, page shared.PageQuery) ([]*stray.Animal, int64, error) {
	query := r.getDB(ctx).Model(&po.StrayAnimalPO{})
	if filter.ReporterID != "" {
		query = query.Where("reporter_id = ?", filter.ReporterID)
	}
	if filter.Species != "" {
		query = query.Where("species = ?", filter.Species)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.RescueStatus != "" {
		query = query.Where("rescue_status = ?", string(filter.RescueStatus))
	}
	rows, total, err := paginate[po.StrayAnimalPO](query, page, "last_seen_at DESC")
	if err != nil {
		return nil, 0, err
	}
	return toStrays(rows), total, nil
}

// ListInBox is the coarse prefilter of the nearby search; callers refine by
// great-circle distance. The limit keeps the candidates closest to the box
// center.
func (r *StrayRepository) ListInBox(ctx context.Context, box geo.Box, limit int) ([]*stray.Animal, error) {
	db := r.getDB(ctx)
	query := db.Model(&po.StrayAnimalPO{}).
		Where("status = ?", string(stray.StatusApproved)).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)

	ranges := box.LngRanges()
	lng := db.Where("longitude BETWEEN ? AND ?", ranges[0].Min, ranges[0].Max)
	for _, rg := range ranges[1:] {
		lng = lng.Or("longitude BETWEEN ? AND ?", rg.Min, rg.Max)
	}
	query = query.Where(lng)

	var rows []po.StrayAnimalPO
	err := query.Clauses(clause.OrderBy{Expression: nearestFirst(box.Center)}).
		Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toStrays(rows), nil
}

// nearestFirst 按平面近似距离排序，经度差取较短一侧并按纬度缩放
func nearestFirst(c geo.Point) clause.Expr {
	k := math.Cos(c.Lat * math.Pi / 180)
	return clause.Expr{
		SQL: "(latitude - ?) * (latitude - ?) + " +
			"(CASE WHEN ABS(longitude - ?) > 180 THEN 360 - ABS(longitude - ?) ELSE ABS(longitude - ?) END) * " +
			"(CASE WHEN ABS(longitude - ?) > 180 THEN 360 - ABS(longitude - ?) ELSE ABS(longitude - ?) END) * ? ASC",
		Vars: []interface{}{c.Lat, c.Lat, c.Lng, c.Lng, c.Lng, c.Lng, c.Lng, c.Lng, k * k},
	}
}

func toStrays(rows []po.StrayAnimalPO) []*stray.Animal {
	animals := make([]*stray.Animal, len(rows))
	for i := range rows {
		animals[i] = rows[i].ToDomain()
	}
	return animals
}

func (r *StrayRepository) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("stray_id = ?", id).Delete(&po.StrayInteractionPO{}).Error; err != nil {
			return err
		}
		return deleteByID[po.StrayAnimalPO](tx, id, "stray")
	})
}

func (r *StrayRepository) SaveInteraction(ctx context.Context, i *stray.Interaction) error {
	return r.getDB(ctx).Create(po.FromStrayInteractionDomain(i)).Error
}

func (r *StrayRepository) ListInteractions(ctx context.Context, strayID string, page shared.PageQuery) ([]*stray.Interaction, int64, error) {
	query := r.getDB(ctx).Model(&po.StrayInteractionPO{}).Where("stray_id = ?", strayID)
	rows, total, err := paginate[po.StrayInteractionPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	items := make([]*stray.Interaction, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, total, nil
}

var _ stray.Repository = (*StrayRepository)(nil)
