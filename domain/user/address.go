package user

import (
	"fmt"
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

// Address is a shipping address owned by a user. At most one per user is default.
type Address struct {
	ID        string
	UserID    string
	Receiver  string
	Phone     string
	Province  string
	City      string
	District  string
	Detail    string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AddressInput struct {
	Receiver  string
	Phone     string
	Province  string
	City      string
	District  string
	Detail    string
	IsDefault bool
}

func (in AddressInput) validate() error {
	if strings.TrimSpace(in.Receiver) == "" {
		return shared.NewValidationError("address", "receiver", "receiver is required")
	}
	if in.Phone == "" {
		return shared.NewValidationError("address", "phone", "phone is required")
	}
	if err := ValidatePhone(in.Phone); err != nil {
		return err
	}
	if strings.TrimSpace(in.Detail) == "" {
		return shared.NewValidationError("address", "detail", "detail is required")
	}
	return nil
}

func NewAddress(userID string, in AddressInput) (*Address, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	a := &Address{ID: uuid.New().String(), UserID: userID, CreatedAt: now}
	a.apply(in, now)
	return a, nil
}

func (a *Address) Update(in AddressInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	a.apply(in, time.Now())
	return nil
}

func (a *Address) apply(in AddressInput, now time.Time) {
	a.Receiver = strings.TrimSpace(in.Receiver)
	a.Phone = in.Phone
	a.Province = in.Province
	a.City = in.City
	a.District = in.District
	a.Detail = strings.TrimSpace(in.Detail)
	a.IsDefault = in.IsDefault
	a.UpdatedAt = now
}

// Snapshot renders the address for copying onto orders.
func (a *Address) Snapshot() string {
	return fmt.Sprintf("%s %s %s%s%s%s", a.Receiver, a.Phone, a.Province, a.City, a.District, a.Detail)
}
