package mall

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Category struct {
	ID        string
	Name      string
	Icon      string
	Sort      int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CategoryInput struct {
	Name     string
	Icon     string
	Sort     int
	IsActive bool
}

func NewCategory(in CategoryInput) (*Category, error) {
	c := &Category{ID: uuid.New().String(), CreatedAt: time.Now()}
	if err := c.Update(in); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Update(in CategoryInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("category", "name", "name is required")
	}
	c.Name = name
	c.Icon = in.Icon
	c.Sort = in.Sort
	c.IsActive = in.IsActive
	c.UpdatedAt = time.Now()
	return nil
}

// Product is a catalogue entry; Price mirrors the cheapest SKU.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Subtitle    string
	Description string
	Cover       string
	Images      []string
	Price       int64
	Sales       int
	IsOnSale    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductInput struct {
	CategoryID  string
	Name        string
	Subtitle    string
	Description string
	Cover       string
	Images      []string
	IsOnSale    bool
}

func NewProduct(in ProductInput) (*Product, error) {
	p := &Product{ID: uuid.New().String(), CreatedAt: time.Now()}
	if err := p.Update(in); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Update(in ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError("product", "name", "name is required")
	}
	if in.CategoryID == "" {
		return shared.NewValidationError("product", "category_id", "category is required")
	}
	p.CategoryID = in.CategoryID
	p.Name = name
	p.Subtitle = in.Subtitle
	p.Description = in.Description
	p.Cover = in.Cover
	p.Images = append([]string(nil), in.Images...)
	p.IsOnSale = in.IsOnSale
	p.UpdatedAt = time.Now()
	return nil
}

// RefreshPrice sets Price to the cheapest SKU, or 0 without SKUs.
func (p *Product) RefreshPrice(skus []*SKU) {
	var lowest int64
	for i, sku := range skus {
		if i == 0 || sku.Price < lowest {
			lowest = sku.Price
		}
	}
	p.Price = lowest
	p.UpdatedAt = time.Now()
}

// SKU is a purchasable variant of a product.
type SKU struct {
	ID         string
	ProductID  string
	Attributes map[string]string
	Price      int64
	Stock      int
	Sales      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type SKUInput struct {
	Attributes map[string]string
	Price      int64
	Stock      int
}

func NewSKU(productID string, in SKUInput) (*SKU, error) {
	s := &SKU{ID: uuid.New().String(), ProductID: productID, CreatedAt: time.Now()}
	if err := s.Update(in); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SKU) Update(in SKUInput) error {
	if in.Price <= 0 {
		return shared.NewValidationError("sku", "price", "price must be positive")
	}
	if in.Stock < 0 {
		return shared.NewValidationError("sku", "stock", "stock cannot be negative")
	}
	s.Attributes = in.Attributes
	s.Price = in.Price
	s.Stock = in.Stock
	s.UpdatedAt = time.Now()
	return nil
}

// Label renders attributes as "color:red size:M" in key order.
func (s *SKU) Label() string {
	return labelOf(s.Attributes)
}
