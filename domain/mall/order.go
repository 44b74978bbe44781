/*
Package mall is the product shop: catalogue, SKUs with stock, carts and
orders.

Order is an aggregate root whose lines snapshot product, SKU and price at
purchase time. Stock is reserved with atomic repository updates in the same
transaction that saves the order.
*/
package mall

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusShipped        Status = "shipped"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

var transitions = shared.Transitions[Status]{
	StatusPendingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusShipped},
	StatusShipped:        {StatusCompleted},
}

func CanTransition(from, to Status) bool {
	return transitions.Allows(from, to)
}

// OrderItem is a line of an order; Subtotal = Price × Quantity.
type OrderItem struct {
	ProductID   string
	SKUID       string
	ProductName string
	SKULabel    string
	Cover       string
	Price       int64
	Quantity    int
	Subtotal    int64
}

// LineInput pairs a loaded SKU with its product and the wanted quantity.
type LineInput struct {
	Product  *Product
	SKU      *SKU
	Quantity int
}

type Order struct {
	shared.EventRecorder

	id              string
	orderNo         string
	userID          string
	items           []OrderItem
	totalAmount     int64
	address         string
	remark          string
	status          Status
	shippingCompany string
	trackingNo      string
	cancelReason    string
	paidAt          *time.Time
	shippedAt       *time.Time
	completedAt     *time.Time
	version         int
	createdAt       time.Time
	updatedAt       time.Time

	isNew bool
}

// NewOrder prices the lines and checks the stock snapshot. Callers still
// decrement stock atomically; this check only fails fast.
func NewOrder(userID string, lines []LineInput, address, remark string, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.NewValidationError("order", "items", "order has no items")
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewValidationError("order", "address_id", "shipping address is required")
	}

	seen := make(map[string]bool, len(lines))
	items := make([]OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		if line.Product == nil || line.SKU == nil || line.SKU.ProductID != line.Product.ID {
			return nil, shared.NewValidationError("order", "sku_id", "unknown sku")
		}
		if !line.Product.IsOnSale {
			return nil, shared.NewStateError("order", "product is off sale: "+line.Product.Name)
		}
		if seen[line.SKU.ID] {
			return nil, shared.NewValidationError("order", "sku_id", "duplicate sku in order")
		}
		seen[line.SKU.ID] = true
		if err := validateQuantity(line.Quantity); err != nil {
			return nil, err
		}
		if line.SKU.Stock < line.Quantity {
			return nil, NewInsufficientStockError(line.Product.Name)
		}
		subtotal := line.SKU.Price * int64(line.Quantity)
		total += subtotal
		items = append(items, OrderItem{
			ProductID:   line.Product.ID,
			SKUID:       line.SKU.ID,
			ProductName: line.Product.Name,
			SKULabel:    line.SKU.Label(),
			Cover:       line.Product.Cover,
			Price:       line.SKU.Price,
			Quantity:    line.Quantity,
			Subtotal:    subtotal,
		})
	}

	return &Order{
		id:          uuid.New().String(),
		orderNo:     shared.NewOrderNo("MO", now),
		userID:      userID,
		items:       items,
		totalAmount: total,
		address:     address,
		remark:      remark,
		status:      StatusPendingPayment,
		createdAt:   now,
		updatedAt:   now,
		isNew:       true,
	}, nil
}

func (o *Order) transition(to Status, now time.Time) error {
	if !CanTransition(o.status, to) {
		return shared.NewStateError("order", fmt.Sprintf("cannot change status from %s to %s", o.status, to))
	}
	o.status = to
	o.updatedAt = now
	return nil
}

// Cancel is only possible before payment; the caller restores stock.
func (o *Order) Cancel(reason string, now time.Time) error {
	if err := o.transition(StatusCancelled, now); err != nil {
		return err
	}
	o.cancelReason = reason
	o.Record(&OrderCancelledEvent{
		EventBase: shared.NewEventBase(o.id),
		OrderID:   o.id,
		OrderNo:   o.orderNo,
		UserID:    o.userID,
		Reason:    reason,
	})
	return nil
}

func (o *Order) CheckPayable() error {
	if o.status != StatusPendingPayment {
		return shared.NewStateError("order", "order is "+string(o.status))
	}
	return nil
}

func (o *Order) MarkPaid(now time.Time) error {
	if err := o.transition(StatusPaid, now); err != nil {
		return err
	}
	o.paidAt = &now
	o.Record(&OrderPaidEvent{
		EventBase: shared.NewEventBase(o.id),
		OrderID:   o.id,
		OrderNo:   o.orderNo,
		UserID:    o.userID,
		Amount:    o.totalAmount,
	})
	return nil
}

func (o *Order) Ship(company, trackingNo string, now time.Time) error {
	company, trackingNo = strings.TrimSpace(company), strings.TrimSpace(trackingNo)
	if company == "" || trackingNo == "" {
		return shared.NewValidationError("order", "tracking_no", "shipping company and tracking number are required")
	}
	if err := o.transition(StatusShipped, now); err != nil {
		return err
	}
	o.shippingCompany = company
	o.trackingNo = trackingNo
	o.shippedAt = &now
	o.Record(&OrderShippedEvent{
		EventBase:       shared.NewEventBase(o.id),
		OrderID:         o.id,
		OrderNo:         o.orderNo,
		UserID:          o.userID,
		ShippingCompany: company,
		TrackingNo:      trackingNo,
	})
	return nil
}

// ConfirmReceipt completes a shipped order.
func (o *Order) ConfirmReceipt(now time.Time) error {
	if err := o.transition(StatusCompleted, now); err != nil {
		return err
	}
	o.completedAt = &now
	return nil
}

// IsExpired reports whether an unpaid order outlived the payment window.
func (o *Order) IsExpired(now time.Time, timeout time.Duration) bool {
	return o.status == StatusPendingPayment && now.Sub(o.createdAt) >= timeout
}

func (o *Order) OwnedBy(userID string) error {
	if o.userID != userID {
		return shared.NewNotFoundError("order")
	}
	return nil
}

func (o *Order) ID() string              { return o.id }
func (o *Order) OrderNo() string         { return o.orderNo }
func (o *Order) UserID() string          { return o.userID }
func (o *Order) Items() []OrderItem      { return append([]OrderItem(nil), o.items...) }
func (o *Order) TotalAmount() int64      { return o.totalAmount }
func (o *Order) Address() string         { return o.address }
func (o *Order) Remark() string          { return o.remark }
func (o *Order) Status() Status          { return o.status }
func (o *Order) ShippingCompany() string { return o.shippingCompany }
func (o *Order) TrackingNo() string      { return o.trackingNo }
func (o *Order) CancelReason() string    { return o.cancelReason }
func (o *Order) PaidAt() *time.Time      { return o.paidAt }
func (o *Order) ShippedAt() *time.Time   { return o.shippedAt }
func (o *Order) CompletedAt() *time.Time { return o.completedAt }
func (o *Order) Version() int            { return o.version }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
func (o *Order) IsNew() bool             { return o.isNew }
func (o *Order) IncrementVersionForSave() { o.version++ }
func (o *Order) ClearNewFlag()            { o.isNew = false }

type ReconstructionDTO struct {
	ID              string
	OrderNo         string
	UserID          string
	Items           []OrderItem
	Address         string
	Remark          string
	Status          string
	ShippingCompany string
	TrackingNo      string
	CancelReason    string
	PaidAt          *time.Time
	ShippedAt       *time.Time
	CompletedAt     *time.Time
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RebuildFromDTO restores an order; the total is recomputed from the lines.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	var total int64
	for _, item := range dto.Items {
		total += item.Subtotal
	}
	return &Order{
		id:              dto.ID,
		orderNo:         dto.OrderNo,
		userID:          dto.UserID,
		items:           dto.Items,
		totalAmount:     total,
		address:         dto.Address,
		remark:          dto.Remark,
		status:          Status(dto.Status),
		shippingCompany: dto.ShippingCompany,
		trackingNo:      dto.TrackingNo,
		cancelReason:    dto.CancelReason,
		paidAt:          dto.PaidAt,
		shippedAt:       dto.ShippedAt,
		completedAt:     dto.CompletedAt,
		version:         dto.Version,
		createdAt:       dto.CreatedAt,
		updatedAt:       dto.UpdatedAt,
	}
}

func NewInsufficientStockError(product string) error {
	return shared.NewInsufficientError("sku", "insufficient stock: "+product)
}

func labelOf(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + attrs[k]
	}
	return strings.Join(parts, " ")
}

var _ shared.AggregateRoot = (*Order)(nil)
