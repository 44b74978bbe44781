// Package pet holds pet profiles. Pets are private to their owner.
package pet

import (
	"strings"
	"time"
	"unicode/utf8"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func (s Species) IsValid() bool {
	return s == SpeciesDog || s == SpeciesCat || s == SpeciesOther
}

type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderUnknown || g == GenderMale || g == GenderFemale
}

type Pet struct {
	ID           string
	OwnerID      string
	Name         string
	Species      Species
	Breed        string
	Gender       Gender
	Birthday     *time.Time
	WeightGrams  int
	Avatar       string
	IsNeutered   bool
	IsVaccinated bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Input struct {
	Name         string
	Species      Species
	Breed        string
	Gender       Gender
	Birthday     *time.Time
	WeightGrams  int
	Avatar       string
	IsNeutered   bool
	IsVaccinated bool
	Notes        string
}

func (in *Input) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || utf8.RuneCountInString(in.Name) > 32 {
		return shared.NewValidationError("pet", "name", "name must be 1-32 characters")
	}
	if !in.Species.IsValid() {
		return shared.NewValidationError("pet", "species", "species must be dog, cat or other")
	}
	if in.Gender == "" {
		in.Gender = GenderUnknown
	}
	if !in.Gender.IsValid() {
		return shared.NewValidationError("pet", "gender", "gender must be unknown, male or female")
	}
	if in.WeightGrams < 0 {
		return shared.NewValidationError("pet", "weight", "weight cannot be negative")
	}
	if in.Birthday != nil && in.Birthday.After(time.Now()) {
		return shared.NewValidationError("pet", "birthday", "birthday cannot be in the future")
	}
	return nil
}

func NewPet(ownerID string, in Input) (*Pet, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &Pet{ID: uuid.New().String(), OwnerID: ownerID, CreatedAt: now}
	p.apply(in, now)
	return p, nil
}

func (p *Pet) Update(in Input) error {
	if err := in.validate(); err != nil {
		return err
	}
	p.apply(in, time.Now())
	return nil
}

func (p *Pet) apply(in Input, now time.Time) {
	p.Name = in.Name
	p.Species = in.Species
	p.Breed = in.Breed
	p.Gender = in.Gender
	p.Birthday = in.Birthday
	p.WeightGrams = in.WeightGrams
	p.Avatar = in.Avatar
	p.IsNeutered = in.IsNeutered
	p.IsVaccinated = in.IsVaccinated
	p.Notes = in.Notes
	p.UpdatedAt = now
}

// OwnedBy hides other users' pets behind a not-found error.
func (p *Pet) OwnedBy(userID string) error {
	if p.OwnerID != userID {
		return shared.NewNotFoundError("pet")
	}
	return nil
}
