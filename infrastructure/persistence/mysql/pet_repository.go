package mysql

import (
	"context"

	"petcare/domain/pet"
	"petcare/domain/shared"
	"petcare/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type PetRepository struct {
	baseRepository
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{baseRepository{db: db}}
}

func (r *PetRepository) Save(ctx context.Context, p *pet.Pet) error {
	return upsert(r.getDB(ctx), po.FromPetDomain(p), p.ID)
}

func (r *PetRepository) FindByID(ctx context.Context, id string) (*pet.Pet, error) {
	petPO, err := first[po.PetPO](r.getDB(ctx).Where("id = ?", id), "pet")
	if err != nil {
		return nil, err
	}
	return petPO.ToDomain(), nil
}

func (r *PetRepository) FindByIDs(ctx context.Context, ids []string) ([]*pet.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []po.PetPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	pets := make([]*pet.Pet, len(rows))
	for i := range rows {
		pets[i] = rows[i].ToDomain()
	}
	return pets, nil
}

func (r *PetRepository) List(ctx context.Context, filter pet.ListFilter, page shared.PageQuery) ([]*pet.Pet, int64, error) {
	query := r.getDB(ctx).Model(&po.PetPO{})
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Species != "" {
		query = query.Where("species = ?", string(filter.Species))
	}

	rows, total, err := paginate[po.PetPO](query, page, "created_at DESC")
	if err != nil {
		return nil, 0, err
	}
	pets := make([]*pet.Pet, len(rows))
	for i := range rows {
		pets[i] = rows[i].ToDomain()
	}
	return pets, total, nil
}

func (r *PetRepository) Delete(ctx context.Context, id string) error {
	return deleteByID[po.PetPO](r.getDB(ctx), id, "pet")
}

var _ pet.Repository = (*PetRepository)(nil)
