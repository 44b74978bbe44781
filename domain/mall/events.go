package mall

import "petcare/domain/shared"

const (
	EventOrderPaid      = "mall.order.paid"
	EventOrderShipped   = "mall.order.shipped"
	EventOrderCancelled = "mall.order.cancelled"
)

type OrderPaidEvent struct {
	shared.EventBase
	OrderID string `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  string `json:"user_id"`
	Amount  int64  `json:"amount"`
}

func (e *OrderPaidEvent) EventName() string { return EventOrderPaid }

type OrderShippedEvent struct {
	shared.EventBase
	OrderID         string `json:"order_id"`
	OrderNo         string `json:"order_no"`
	UserID          string `json:"user_id"`
	ShippingCompany string `json:"shipping_company"`
	TrackingNo      string `json:"tracking_no"`
}

func (e *OrderShippedEvent) EventName() string { return EventOrderShipped }

type OrderCancelledEvent struct {
	shared.EventBase
	OrderID string `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  string `json:"user_id"`
	Reason  string `json:"reason"`
}

func (e *OrderCancelledEvent) EventName() string { return EventOrderCancelled }
