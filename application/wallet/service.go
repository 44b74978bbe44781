/*
Package wallet 钱包与账单。

Debit/Credit 只在调用方的事务里使用：余额变动、账单写入和订单状态
必须在同一个 UnitOfWork 中提交。
*/
package wallet

import (
	"context"
	"time"

	"petcare/domain/bill"
	"petcare/domain/shared"
	"petcare/domain/user"
)

type ApplicationService struct {
	userRepo user.Repository
	billRepo bill.Repository
	now      func() time.Time
}

func NewApplicationService(userRepo user.Repository, billRepo bill.Repository) *ApplicationService {
	return &ApplicationService{userRepo: userRepo, billRepo: billRepo, now: time.Now}
}

// Debit 余额支付：扣减余额、写成功的 payment 账单，并关闭该订单未完成的微信账单
func (s *ApplicationService) Debit(ctx context.Context, userID string, amount int64, orderType bill.OrderType, orderID string) (*bill.Bill, error) {
	b, err := bill.NewBalancePayment(userID, amount, orderType, orderID, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.AdjustBalance(ctx, userID, -amount); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	if err := s.ClosePending(ctx, orderType, orderID); err != nil {
		return nil, err
	}
	return b, nil
}

// Refund 退款到余额并记一笔 refund 账单
func (s *ApplicationService) Refund(ctx context.Context, userID string, amount int64, orderType bill.OrderType, orderID, remark string) (*bill.Bill, error) {
	b, err := bill.NewRefund(userID, amount, orderType, orderID, remark, s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.AdjustBalance(ctx, userID, amount); err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Credit 充值到账，账单由调用方结算
func (s *ApplicationService) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	return s.userRepo.AdjustBalance(ctx, userID, amount)
}

func (s *ApplicationService) ClosePending(ctx context.Context, orderType bill.OrderType, orderID string) error {
	pending, err := s.billRepo.FindPendingByOrder(ctx, orderType, orderID)
	if err != nil {
		return err
	}
	for _, b := range pending {
		if err := b.Close(); err != nil {
			return err
		}
		if err := s.billRepo.Save(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

type BalanceResponse struct {
	Balance  int64 `json:"balance"`
	Integral int64 `json:"integral"`
}

type ListBillsRequest struct {
	UserID    string `form:"user_id"`
	Type      string `form:"type" binding:"omitempty,oneof=payment refund recharge"`
	Status    string `form:"status" binding:"omitempty,oneof=pending success failed closed"`
	OrderType string `form:"order_type" binding:"omitempty,oneof=service mall recharge"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

type BillResponse struct {
	ID            string     `json:"id"`
	BillNo        string     `json:"bill_no"`
	UserID        string     `json:"user_id"`
	Type          string     `json:"type"`
	Channel       string     `json:"channel"`
	Amount        int64      `json:"amount"`
	Status        string     `json:"status"`
	OrderType     string     `json:"order_type"`
	OrderID       string     `json:"order_id"`
	OutTradeNo    string     `json:"out_trade_no,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	Remark        string     `json:"remark,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToBillResponse(b *bill.Bill) *BillResponse {
	return &BillResponse{
		ID:            b.ID,
		BillNo:        b.BillNo,
		UserID:        b.UserID,
		Type:          string(b.Type),
		Channel:       string(b.Channel),
		Amount:        b.Amount,
		Status:        string(b.Status),
		OrderType:     string(b.OrderType),
		OrderID:       b.OrderID,
		OutTradeNo:    b.OutTradeNo,
		TransactionID: b.TransactionID,
		PaidAt:        b.PaidAt,
		Remark:        b.Remark,
		CreatedAt:     b.CreatedAt,
	}
}

func (s *ApplicationService) GetBalance(ctx context.Context, userID string) (*BalanceResponse, error) {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{Balance: u.Balance(), Integral: u.Integral()}, nil
}

// ListMine 忽略请求中的 user_id
func (s *ApplicationService) ListMine(ctx context.Context, userID string, req ListBillsRequest) (shared.Page[*BillResponse], error) {
	req.UserID = userID
	return s.List(ctx, req)
}

func (s *ApplicationService) List(ctx context.Context, req ListBillsRequest) (shared.Page[*BillResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	filter := bill.ListFilter{
		UserID:    req.UserID,
		Type:      bill.Type(req.Type),
		Status:    bill.Status(req.Status),
		OrderType: bill.OrderType(req.OrderType),
	}
	bills, total, err := s.billRepo.List(ctx, filter, page)
	if err != nil {
		return shared.Page[*BillResponse]{}, err
	}
	return shared.MapPage(shared.Page[*bill.Bill]{Items: bills, Total: total, Page: page.Page, PageSize: page.PageSize}, ToBillResponse), nil
}

func (s *ApplicationService) GetMine(ctx context.Context, userID, billID string) (*BillResponse, error) {
	b, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if err := b.OwnedBy(userID); err != nil {
		return nil, err
	}
	return ToBillResponse(b), nil
}
