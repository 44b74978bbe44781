package mall

import (
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

const maxCartQuantity = 99

// CartItem is unique per (user, sku); adding the same SKU again merges.
type CartItem struct {
	ID        string
	UserID    string
	SKUID     string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCartItem(userID, skuID string, quantity int) (*CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	now := time.Now()
	return &CartItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		SKUID:     skuID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (c *CartItem) Merge(quantity int) error {
	return c.SetQuantity(c.Quantity + quantity)
}

func (c *CartItem) SetQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	c.Quantity = quantity
	c.UpdatedAt = time.Now()
	return nil
}

func (c *CartItem) OwnedBy(userID string) error {
	if c.UserID != userID {
		return shared.NewNotFoundError("cart_item")
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 || quantity > maxCartQuantity {
		return shared.NewValidationError("cart_item", "quantity", "quantity must be 1-99")
	}
	return nil
}
