package booking

import "petcare/domain/shared"

const (
	EventServiceOrderStatusChanged = "booking.service_order.status_changed"
	EventServiceOrderPaid          = "booking.service_order.paid"
)

type ServiceOrderStatusChangedEvent struct {
	shared.EventBase
	OrderID string `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  string `json:"user_id"`
	From    Status `json:"from"`
	To      Status `json:"to"`
}

func (e *ServiceOrderStatusChangedEvent) EventName() string { return EventServiceOrderStatusChanged }

type ServiceOrderPaidEvent struct {
	shared.EventBase
	OrderID string `json:"order_id"`
	OrderNo string `json:"order_no"`
	UserID  string `json:"user_id"`
	Amount  int64  `json:"amount"`
}

func (e *ServiceOrderPaidEvent) EventName() string { return EventServiceOrderPaid }
