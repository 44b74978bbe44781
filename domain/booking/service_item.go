package booking

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

// ItemKind separates the single base service of an order from its add-ons.
type ItemKind string

const (
	ItemKindBase       ItemKind = "base"
	ItemKindAdditional ItemKind = "additional"
)

func (k ItemKind) IsValid() bool {
	return k == ItemKindBase || k == ItemKindAdditional
}

// ServiceItem is a bookable service, priced in fen.
type ServiceItem struct {
	ID              string
	Name            string
	Kind            ItemKind
	Price           int64
	DurationMinutes int
	Description     string
	Image           string
	Sort            int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ServiceItemInput struct {
	Name            string
	Kind            ItemKind
	Price           int64
	DurationMinutes int
	Description     string
	Image           string
	Sort            int
	IsActive        bool
}

func (in *ServiceItemInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return shared.NewValidationError("service_item", "name", "name is required")
	}
	if !in.Kind.IsValid() {
		return shared.NewValidationError("service_item", "kind", "kind must be base or additional")
	}
	if in.Price < 0 {
		return shared.NewValidationError("service_item", "price", "price cannot be negative")
	}
	if in.DurationMinutes < 0 {
		return shared.NewValidationError("service_item", "duration", "duration cannot be negative")
	}
	return nil
}

func NewServiceItem(in ServiceItemInput) (*ServiceItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &ServiceItem{ID: uuid.New().String(), CreatedAt: now}
	item.apply(in, now)
	return item, nil
}

func (s *ServiceItem) Update(in ServiceItemInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	s.apply(in, time.Now())
	return nil
}

func (s *ServiceItem) apply(in ServiceItemInput, now time.Time) {
	s.Name = in.Name
	s.Kind = in.Kind
	s.Price = in.Price
	s.DurationMinutes = in.DurationMinutes
	s.Description = in.Description
	s.Image = in.Image
	s.Sort = in.Sort
	s.IsActive = in.IsActive
	s.UpdatedAt = now
}

// Staff is a groomer or vet assigned to service orders by admins.
type Staff struct {
	ID        string
	Name      string
	Title     string
	Phone     string
	Avatar    string
	Intro     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StaffInput struct {
	Name     string
	Title    string
	Phone    string
	Avatar   string
	Intro    string
	IsActive bool
}

func NewStaff(in StaffInput) (*Staff, error) {
	now := time.Now()
	s := &Staff{ID: uuid.New().String(), CreatedAt: now}
	if err := s.Update(in); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Staff) Update(in StaffInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("staff", "name", "name is required")
	}
	s.Name = name
	s.Title = in.Title
	s.Phone = in.Phone
	s.Avatar = in.Avatar
	s.Intro = in.Intro
	s.IsActive = in.IsActive
	s.UpdatedAt = time.Now()
	return nil
}
