package pet

import (
	"context"
	"time"

	"petcare/domain/pet"
	"petcare/domain/shared"
)

const birthdayLayout = "2006-01-02"

type ApplicationService struct {
	petRepo pet.Repository
}

func NewApplicationService(petRepo pet.Repository) *ApplicationService {
	return &ApplicationService{petRepo: petRepo}
}

// PetRequest 创建与更新共用，birthday 形如 2020-05-01
type PetRequest struct {
	Name         string `json:"name" binding:"required,max=32"`
	Species      string `json:"species" binding:"required,oneof=dog cat other"`
	Breed        string `json:"breed" binding:"max=64"`
	Gender       string `json:"gender" binding:"omitempty,oneof=unknown male female"`
	Birthday     string `json:"birthday"`
	WeightGrams  int    `json:"weight_grams" binding:"min=0"`
	Avatar       string `json:"avatar" binding:"max=512"`
	IsNeutered   bool   `json:"is_neutered"`
	IsVaccinated bool   `json:"is_vaccinated"`
	Notes        string `json:"notes" binding:"max=500"`
}

type ListPetsRequest struct {
	OwnerID  string `form:"owner_id"`
	Species  string `form:"species"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type PetResponse struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Species      string    `json:"species"`
	Breed        string    `json:"breed"`
	Gender       string    `json:"gender"`
	Birthday     string    `json:"birthday,omitempty"`
	WeightGrams  int       `json:"weight_grams"`
	Avatar       string    `json:"avatar"`
	IsNeutered   bool      `json:"is_neutered"`
	IsVaccinated bool      `json:"is_vaccinated"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toInput(req PetRequest) (pet.Input, error) {
	in := pet.Input{
		Name:         req.Name,
		Species:      pet.Species(req.Species),
		Breed:        req.Breed,
		Gender:       pet.Gender(req.Gender),
		WeightGrams:  req.WeightGrams,
		Avatar:       req.Avatar,
		IsNeutered:   req.IsNeutered,
		IsVaccinated: req.IsVaccinated,
		Notes:        req.Notes,
	}
	if req.Birthday != "" {
		b, err := time.ParseInLocation(birthdayLayout, req.Birthday, time.Local)
		if err != nil {
			return pet.Input{}, shared.NewValidationError("pet", "birthday", "birthday must look like 2006-01-02")
		}
		in.Birthday = &b
	}
	return in, nil
}

func toResponse(p *pet.Pet) *PetResponse {
	resp := &PetResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Species:      string(p.Species),
		Breed:        p.Breed,
		Gender:       string(p.Gender),
		WeightGrams:  p.WeightGrams,
		Avatar:       p.Avatar,
		IsNeutered:   p.IsNeutered,
		IsVaccinated: p.IsVaccinated,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Birthday != nil {
		resp.Birthday = p.Birthday.Format(birthdayLayout)
	}
	return resp
}

func (s *ApplicationService) Create(ctx context.Context, ownerID string, req PetRequest) (*PetResponse, error) {
	in, err := toInput(req)
	if err != nil {
		return nil, err
	}
	p, err := pet.NewPet(ownerID, in)
	if err != nil {
		return nil, err
	}
	if err := s.petRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

func (s *ApplicationService) findOwned(ctx context.Context, ownerID, petID string) (*pet.Pet, error) {
	p, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if err := p.OwnedBy(ownerID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ApplicationService) Get(ctx context.Context, ownerID, petID string) (*PetResponse, error) {
	p, err := s.findOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

func (s *ApplicationService) Update(ctx context.Context, ownerID, petID string, req PetRequest) (*PetResponse, error) {
	p, err := s.findOwned(ctx, ownerID, petID)
	if err != nil {
		return nil, err
	}
	in, err := toInput(req)
	if err != nil {
		return nil, err
	}
	if err := p.Update(in); err != nil {
		return nil, err
	}
	if err := s.petRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

func (s *ApplicationService) Delete(ctx context.Context, ownerID, petID string) error {
	p, err := s.findOwned(ctx, ownerID, petID)
	if err != nil {
		return err
	}
	return s.petRepo.Delete(ctx, p.ID)
}

// ListMine 当前用户的宠物
func (s *ApplicationService) ListMine(ctx context.Context, ownerID string, page shared.PageQuery) (shared.Page[*PetResponse], error) {
	return s.list(ctx, pet.ListFilter{OwnerID: ownerID}, page)
}

// List 管理端列表
func (s *ApplicationService) List(ctx context.Context, req ListPetsRequest) (shared.Page[*PetResponse], error) {
	return s.list(ctx, pet.ListFilter{OwnerID: req.OwnerID, Species: pet.Species(req.Species)},
		shared.NewPageQuery(req.Page, req.PageSize))
}

func (s *ApplicationService) list(ctx context.Context, filter pet.ListFilter, page shared.PageQuery) (shared.Page[*PetResponse], error) {
	pets, total, err := s.petRepo.List(ctx, filter, page)
	if err != nil {
		return shared.Page[*PetResponse]{}, err
	}
	return shared.MapPage(shared.Page[*pet.Pet]{Items: pets, Total: total, Page: page.Page, PageSize: page.PageSize}, toResponse), nil
}
