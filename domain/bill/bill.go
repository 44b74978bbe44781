// Package bill is the money ledger: payments, refunds and wallet recharges.
package bill

import (
	"strings"
	"time"

	"petcare/domain/shared"

	"github.com/google/uuid"
)

type Type string

const (
	TypePayment  Type = "payment"
	TypeRefund   Type = "refund"
	TypeRecharge Type = "recharge"
)

type Channel string

const (
	ChannelWechat  Channel = "wechat"
	ChannelBalance Channel = "balance"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusClosed  Status = "closed"
)

// OrderType names what a bill settles.
type OrderType string

const (
	OrderTypeService  OrderType = "service"
	OrderTypeMall     OrderType = "mall"
	OrderTypeRecharge OrderType = "recharge"
)

func (t OrderType) IsValid() bool {
	return t == OrderTypeService || t == OrderTypeMall || t == OrderTypeRecharge
}

var transitions = shared.Transitions[Status]{
	StatusPending: {StatusSuccess, StatusFailed, StatusClosed},
	// 关闭或失败后微信仍到账，只能经 MarkLatePaid 进入 success
	StatusClosed: {StatusSuccess},
	StatusFailed: {StatusSuccess},
}

type Bill struct {
	ID            string
	BillNo        string
	UserID        string
	Type          Type
	Channel       Channel
	Amount        int64
	Status        Status
	OrderType     OrderType
	OrderID       string
	OutTradeNo    string
	TransactionID string
	PaidAt        *time.Time
	Remark        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func newBill(userID string, typ Type, channel Channel, amount int64, orderType OrderType, orderID string, now time.Time) (*Bill, error) {
	if amount <= 0 {
		return nil, shared.NewValidationError("bill", "amount", "amount must be positive")
	}
	return &Bill{
		ID:        uuid.New().String(),
		BillNo:    shared.NewOrderNo("BL", now),
		UserID:    userID,
		Type:      typ,
		Channel:   channel,
		Amount:    amount,
		Status:    StatusPending,
		OrderType: orderType,
		OrderID:   orderID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewBalancePayment records a payment already debited from the wallet.
func NewBalancePayment(userID string, amount int64, orderType OrderType, orderID string, now time.Time) (*Bill, error) {
	b, err := newBill(userID, TypePayment, ChannelBalance, amount, orderType, orderID, now)
	if err != nil {
		return nil, err
	}
	b.Status = StatusSuccess
	b.PaidAt = &now
	return b, nil
}

// NewRefund records money credited back to the wallet.
func NewRefund(userID string, amount int64, orderType OrderType, orderID, remark string, now time.Time) (*Bill, error) {
	b, err := newBill(userID, TypeRefund, ChannelBalance, amount, orderType, orderID, now)
	if err != nil {
		return nil, err
	}
	b.Status = StatusSuccess
	b.PaidAt = &now
	b.Remark = remark
	return b, nil
}

// NewWechatPending opens a pending WeChat bill keyed by a fresh out_trade_no.
// Recharges carry TypeRecharge, everything else TypePayment.
func NewWechatPending(userID string, amount int64, orderType OrderType, orderID string, now time.Time) (*Bill, error) {
	if !orderType.IsValid() {
		return nil, shared.NewValidationError("bill", "order_type", "unknown order type")
	}
	typ := TypePayment
	if orderType == OrderTypeRecharge {
		typ = TypeRecharge
	}
	b, err := newBill(userID, typ, ChannelWechat, amount, orderType, orderID, now)
	if err != nil {
		return nil, err
	}
	b.OutTradeNo = strings.ReplaceAll(uuid.New().String(), "-", "")
	if orderType == OrderTypeRecharge {
		b.OrderID = b.ID
	}
	return b, nil
}

// MarkSuccess settles a pending bill with the gateway transaction id.
func (b *Bill) MarkSuccess(transactionID string, now time.Time) error {
	if b.Status != StatusPending {
		return shared.NewStateError("bill", "bill is "+string(b.Status))
	}
	b.settle(transactionID, now)
	return nil
}

// MarkLatePaid records money that reached a closed or failed bill. The caller
// refunds it to the wallet; the bill ends in success so a replayed notify is
// recognised as already settled.
func (b *Bill) MarkLatePaid(transactionID, remark string, now time.Time) error {
	if b.Status == StatusPending || !transitions.Allows(b.Status, StatusSuccess) {
		return shared.NewStateError("bill", "bill is "+string(b.Status))
	}
	b.settle(transactionID, now)
	b.Remark = remark
	return nil
}

func (b *Bill) settle(transactionID string, now time.Time) {
	b.Status = StatusSuccess
	b.TransactionID = transactionID
	b.PaidAt = &now
	b.UpdatedAt = now
}

func (b *Bill) MarkFailed(remark string) error {
	if !transitions.Allows(b.Status, StatusFailed) {
		return shared.NewStateError("bill", "bill is "+string(b.Status))
	}
	b.Status = StatusFailed
	b.Remark = remark
	b.UpdatedAt = time.Now()
	return nil
}

func (b *Bill) Close() error {
	if !transitions.Allows(b.Status, StatusClosed) {
		return shared.NewStateError("bill", "bill is "+string(b.Status))
	}
	b.Status = StatusClosed
	b.UpdatedAt = time.Now()
	return nil
}

func (b *Bill) IsSettled() bool {
	return b.Status == StatusSuccess
}

func (b *Bill) OwnedBy(userID string) error {
	if b.UserID != userID {
		return shared.NewNotFoundError("bill")
	}
	return nil
}
