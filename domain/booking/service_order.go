/*
Package booking covers bookable services, staff and service orders.

ServiceOrder is the aggregate root: its price lines are snapshots of the
service items at booking time and its status only moves along the
transitions table below.
*/
package booking

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// transitions whitelist; completed and cancelled are terminal.
var transitions = shared.Transitions[Status]{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether from → to is allowed.
func CanTransition(from, to Status) bool {
	return transitions.Allows(from, to)
}

// ServiceLine is a price snapshot of a service item.
type ServiceLine struct {
	ServiceID string
	Name      string
	Price     int64
}

type ServiceOrder struct {
	shared.EventRecorder

	id              string
	orderNo         string
	userID          string
	staffID         string
	petIDs          []string
	baseService     ServiceLine
	additional      []ServiceLine
	appointmentAt   time.Time
	contactPhone    string
	remark          string
	basePrice       int64
	additionalPrice int64
	totalPrice      int64
	status          Status
	isPaid          bool
	paidAt          *time.Time
	cancelReason    string
	version         int
	createdAt       time.Time
	updatedAt       time.Time

	isNew bool
}

type CreateOptions struct {
	UserID        string
	PetIDs        []string
	Base          *ServiceItem
	Additional    []*ServiceItem
	AppointmentAt time.Time
	ContactPhone  string
	Remark        string
}

// NewServiceOrder prices a booking: total = base price + sum of add-on prices.
// Pet ownership is checked by the caller.
func NewServiceOrder(opts CreateOptions, now time.Time) (*ServiceOrder, error) {
	if opts.Base == nil || opts.Base.Kind != ItemKindBase || !opts.Base.IsActive {
		return nil, newItemError("base_service", "base service must be an active base item")
	}
	if len(opts.PetIDs) == 0 {
		return nil, newItemError("pet_ids", "at least one pet is required")
	}
	if !opts.AppointmentAt.After(now) {
		return nil, newItemError("appointment_at", "appointment must be in the future")
	}
	if strings.TrimSpace(opts.ContactPhone) == "" {
		return nil, newItemError("contact_phone", "contact phone is required")
	}

	seen := make(map[string]bool, len(opts.Additional))
	additional := make([]ServiceLine, 0, len(opts.Additional))
	for _, item := range opts.Additional {
		if item == nil || item.Kind != ItemKindAdditional || !item.IsActive {
			return nil, newItemError("additional_services", "additional services must be active additional items")
		}
		if seen[item.ID] {
			return nil, newItemError("additional_services", "duplicate additional service")
		}
		seen[item.ID] = true
		additional = append(additional, ServiceLine{ServiceID: item.ID, Name: item.Name, Price: item.Price})
	}

	o := &ServiceOrder{
		id:            uuid.New().String(),
		orderNo:       shared.NewOrderNo("SO", now),
		userID:        opts.UserID,
		petIDs:        dedupe(opts.PetIDs),
		baseService:   ServiceLine{ServiceID: opts.Base.ID, Name: opts.Base.Name, Price: opts.Base.Price},
		additional:    additional,
		appointmentAt: opts.AppointmentAt,
		contactPhone:  strings.TrimSpace(opts.ContactPhone),
		remark:        opts.Remark,
		status:        StatusPending,
		createdAt:     now,
		updatedAt:     now,
		isNew:         true,
	}
	o.recalculate()
	return o, nil
}

func (o *ServiceOrder) recalculate() {
	o.basePrice = o.baseService.Price
	o.additionalPrice = 0
	for _, line := range o.additional {
		o.additionalPrice += line.Price
	}
	o.totalPrice = o.basePrice + o.additionalPrice
}

// TransitionTo moves the order along the whitelist and records the change.
func (o *ServiceOrder) TransitionTo(to Status) error {
	if !CanTransition(o.status, to) {
		return NewInvalidTransitionError(o.status, to)
	}
	from := o.status
	o.status = to
	o.updatedAt = time.Now()
	o.Record(&ServiceOrderStatusChangedEvent{
		EventBase: shared.NewEventBase(o.id),
		OrderID:   o.id,
		OrderNo:   o.orderNo,
		UserID:    o.userID,
		From:      from,
		To:        to,
	})
	return nil
}

// Cancel cancels the order and returns the amount to refund, which is the
// total price when the order was already paid.
func (o *ServiceOrder) Cancel(reason string) (int64, error) {
	if err := o.TransitionTo(StatusCancelled); err != nil {
		return 0, err
	}
	o.cancelReason = reason
	if o.isPaid {
		return o.totalPrice, nil
	}
	return 0, nil
}

func (o *ServiceOrder) AssignStaff(staff *Staff) error {
	if transitions.IsTerminal(o.status) {
		return shared.NewStateError("service_order", "cannot assign staff to a "+string(o.status)+" order")
	}
	if staff == nil || !staff.IsActive {
		return newItemError("staff_id", "staff must be active")
	}
	o.staffID = staff.ID
	o.updatedAt = time.Now()
	return nil
}

// CheckPayable fails for paid, cancelled or completed orders.
func (o *ServiceOrder) CheckPayable() error {
	if o.isPaid {
		return shared.NewStateError("service_order", "order is already paid")
	}
	if o.status == StatusCancelled || o.status == StatusCompleted {
		return shared.NewStateError("service_order", "cannot pay a "+string(o.status)+" order")
	}
	return nil
}

func (o *ServiceOrder) MarkPaid(now time.Time) error {
	if err := o.CheckPayable(); err != nil {
		return err
	}
	o.isPaid = true
	o.paidAt = &now
	o.updatedAt = now
	o.Record(&ServiceOrderPaidEvent{
		EventBase: shared.NewEventBase(o.id),
		OrderID:   o.id,
		OrderNo:   o.orderNo,
		UserID:    o.userID,
		Amount:    o.totalPrice,
	})
	return nil
}

// OwnedBy hides other users' orders behind a not-found error.
func (o *ServiceOrder) OwnedBy(userID string) error {
	if o.userID != userID {
		return NewServiceOrderNotFoundError()
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (o *ServiceOrder) ID() string                  { return o.id }
func (o *ServiceOrder) OrderNo() string             { return o.orderNo }
func (o *ServiceOrder) UserID() string              { return o.userID }
func (o *ServiceOrder) StaffID() string             { return o.staffID }
func (o *ServiceOrder) PetIDs() []string            { return append([]string(nil), o.petIDs...) }
func (o *ServiceOrder) BaseService() ServiceLine    { return o.baseService }
func (o *ServiceOrder) Additional() []ServiceLine   { return append([]ServiceLine(nil), o.additional...) }
func (o *ServiceOrder) AppointmentAt() time.Time    { return o.appointmentAt }
func (o *ServiceOrder) ContactPhone() string        { return o.contactPhone }
func (o *ServiceOrder) Remark() string              { return o.remark }
func (o *ServiceOrder) BasePrice() int64            { return o.basePrice }
func (o *ServiceOrder) AdditionalPrice() int64      { return o.additionalPrice }
func (o *ServiceOrder) TotalPrice() int64           { return o.totalPrice }
func (o *ServiceOrder) Status() Status              { return o.status }
func (o *ServiceOrder) IsPaid() bool                { return o.isPaid }
func (o *ServiceOrder) PaidAt() *time.Time          { return o.paidAt }
func (o *ServiceOrder) CancelReason() string        { return o.cancelReason }
func (o *ServiceOrder) Version() int                { return o.version }
func (o *ServiceOrder) CreatedAt() time.Time        { return o.createdAt }
func (o *ServiceOrder) UpdatedAt() time.Time        { return o.updatedAt }
func (o *ServiceOrder) IsNew() bool                 { return o.isNew }
func (o *ServiceOrder) IncrementVersionForSave()    { o.version++ }
func (o *ServiceOrder) ClearNewFlag()               { o.isNew = false }

type ReconstructionDTO struct {
	ID            string
	OrderNo       string
	UserID        string
	StaffID       string
	PetIDs        []string
	BaseService   ServiceLine
	Additional    []ServiceLine
	AppointmentAt time.Time
	ContactPhone  string
	Remark        string
	Status        string
	IsPaid        bool
	PaidAt        *time.Time
	CancelReason  string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RebuildFromDTO restores an order; prices are recomputed from the lines.
func RebuildFromDTO(dto ReconstructionDTO) *ServiceOrder {
	o := &ServiceOrder{
		id:            dto.ID,
		orderNo:       dto.OrderNo,
		userID:        dto.UserID,
		staffID:       dto.StaffID,
		petIDs:        dto.PetIDs,
		baseService:   dto.BaseService,
		additional:    dto.Additional,
		appointmentAt: dto.AppointmentAt,
		contactPhone:  dto.ContactPhone,
		remark:        dto.Remark,
		status:        Status(dto.Status),
		isPaid:        dto.IsPaid,
		paidAt:        dto.PaidAt,
		cancelReason:  dto.CancelReason,
		version:       dto.Version,
		createdAt:     dto.CreatedAt,
		updatedAt:     dto.UpdatedAt,
	}
	o.recalculate()
	return o
}

var _ shared.AggregateRoot = (*ServiceOrder)(nil)
