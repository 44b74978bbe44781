package po

import (
	"time"

	"petcare/domain/pet"
)

type PetPO struct {
	ID           string     `gorm:"primaryKey;size:64"`
	OwnerID      string     `gorm:"size:64;index;not null"`
	Name         string     `gorm:"size:32;not null"`
	Species      string     `gorm:"size:16;index;not null"`
	Breed        string     `gorm:"size:64"`
	Gender       string     `gorm:"size:10"`
	Birthday     *time.Time `gorm:"type:date"`
	WeightGrams  int
	Avatar       string    `gorm:"size:500"`
	IsNeutered   bool      `gorm:"default:false"`
	IsVaccinated bool      `gorm:"default:false"`
	Notes        string    `gorm:"size:1000"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (PetPO) TableName() string {
	return "pets"
}

func FromPetDomain(p *pet.Pet) *PetPO {
	return &PetPO{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Species:      string(p.Species),
		Breed:        p.Breed,
		Gender:       string(p.Gender),
		Birthday:     p.Birthday,
		WeightGrams:  p.WeightGrams,
		Avatar:       p.Avatar,
		IsNeutered:   p.IsNeutered,
		IsVaccinated: p.IsVaccinated,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (po *PetPO) ToDomain() *pet.Pet {
	return &pet.Pet{
		ID:           po.ID,
		OwnerID:      po.OwnerID,
		Name:         po.Name,
		Species:      pet.Species(po.Species),
		Breed:        po.Breed,
		Gender:       pet.Gender(po.Gender),
		Birthday:     po.Birthday,
		WeightGrams:  po.WeightGrams,
		Avatar:       po.Avatar,
		IsNeutered:   po.IsNeutered,
		IsVaccinated: po.IsVaccinated,
		Notes:        po.Notes,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}
