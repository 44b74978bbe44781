// Package integral is the points shop: products bought with integral
// points, the points ledger and the daily sign-in.
package integral

import (
	"fmt"
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Kind string

const (
	KindVirtual  Kind = "virtual"
	KindPhysical Kind = "physical"
)

func (k Kind) IsValid() bool {
	return k == KindVirtual || k == KindPhysical
}

type Product struct {
	ID          string
	Name        string
	Description string
	Cover       string
	Points      int64
	Stock       int
	Kind        Kind
	Sort        int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductInput struct {
	Name        string
	Description string
	Cover       string
	Points      int64
	Stock       int
	Kind        Kind
	Sort        int
	IsActive    bool
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
		return shared.NewValidationError("integral_product", "name", "name is required")
	}
	if in.Points <= 0 {
		return shared.NewValidationError("integral_product", "points", "points must be positive")
	}
	if in.Stock < 0 {
		return shared.NewValidationError("integral_product", "stock", "stock cannot be negative")
	}
	if !in.Kind.IsValid() {
		return shared.NewValidationError("integral_product", "kind", "kind must be virtual or physical")
	}
	p.Name = name
	p.Description = in.Description
	p.Cover = in.Cover
	p.Points = in.Points
	p.Stock = in.Stock
	p.Kind = in.Kind
	p.Sort = in.Sort
	p.IsActive = in.IsActive
	p.UpdatedAt = time.Now()
	return nil
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
)

var orderTransitions = shared.Transitions[OrderStatus]{
	OrderPending: {OrderShipped},
	OrderShipped: {OrderCompleted},
}

type Order struct {
	ID          string
	OrderNo     string
	UserID      string
	ProductID   string
	ProductName string
	Cover       string
	Kind        Kind
	Quantity    int
	Points      int64
	Address     string
	RedeemCode  string
	Status      OrderStatus
	TrackingNo  string
	ShippedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder redeems quantity units of product. Physical goods need an address
// and wait for shipping; virtual goods complete at once with a redeem code.
func NewOrder(userID string, product *Product, quantity int, address string, now time.Time) (*Order, error) {
	if !product.IsActive {
		return nil, shared.NewNotFoundError("integral_product")
	}
	if quantity < 1 || quantity > 99 {
		return nil, shared.NewValidationError("integral_order", "quantity", "quantity must be 1-99")
	}
	if product.Stock < quantity {
		return nil, shared.NewInsufficientError("integral_product", "insufficient stock")
	}
	o := &Order{
		ID:          uuid.New().String(),
		OrderNo:     shared.NewOrderNo("IO", now),
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Cover:       product.Cover,
		Kind:        product.Kind,
		Quantity:    quantity,
		Points:      product.Points * int64(quantity),
		Status:      OrderPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	switch product.Kind {
	case KindPhysical:
		if strings.TrimSpace(address) == "" {
			return nil, shared.NewValidationError("integral_order", "address_id", "shipping address is required")
		}
		o.Address = address
	case KindVirtual:
		o.RedeemCode = newRedeemCode()
		o.Status = OrderCompleted
		o.CompletedAt = &now
	}
	return o, nil
}

func (o *Order) Ship(trackingNo string, now time.Time) error {
	if !orderTransitions.Allows(o.Status, OrderShipped) {
		return shared.NewStateError("integral_order", "order is "+string(o.Status))
	}
	o.Status = OrderShipped
	o.TrackingNo = strings.TrimSpace(trackingNo)
	o.ShippedAt = &now
	o.UpdatedAt = now
	return nil
}

func (o *Order) ConfirmReceipt(now time.Time) error {
	if !orderTransitions.Allows(o.Status, OrderCompleted) {
		return shared.NewStateError("integral_order", "order is "+string(o.Status))
	}
	o.Status = OrderCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	return nil
}

func (o *Order) OwnedBy(userID string) error {
	if o.UserID != userID {
		return shared.NewNotFoundError("integral_order")
	}
	return nil
}

func newRedeemCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// Reason explains a ledger row.
type Reason string

const (
	ReasonSignIn      Reason = "sign_in"
	ReasonRegister    Reason = "register"
	ReasonOrderReward Reason = "order_reward"
	ReasonRedeem      Reason = "redeem"
)

// Record is one row of the points ledger.
type Record struct {
	ID           string
	UserID       string
	Change       int64
	BalanceAfter int64
	Reason       Reason
	RefID        string
	Remark       string
	CreatedAt    time.Time
}

func NewRecord(userID string, change, balanceAfter int64, reason Reason, refID, remark string) *Record {
	return &Record{
		ID:           uuid.New().String(),
		UserID:       userID,
		Change:       change,
		BalanceAfter: balanceAfter,
		Reason:       reason,
		RefID:        refID,
		Remark:       remark,
		CreatedAt:    time.Now(),
	}
}

// SignIn is unique per (user, calendar day).
type SignIn struct {
	UserID    string
	Date      string
	Points    int64
	CreatedAt time.Time
}

func NewSignIn(userID string, points int64, now time.Time) *SignIn {
	return &SignIn{UserID: userID, Date: SignInDate(now), Points: points, CreatedAt: now}
}

// SignInDate is the local calendar day, e.g. 2024-06-01.
func SignInDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// RewardPoints converts a paid amount in fen into points, rounding down.
func RewardPoints(amountFen, pointsPerYuan int64) int64 {
	if amountFen <= 0 || pointsPerYuan <= 0 {
		return 0
	}
	return amountFen / 100 * pointsPerYuan
}

func NewAlreadySignedInError(date string) error {
	return shared.NewConflictError("sign_in", fmt.Sprintf("already signed in on %s", date))
}
