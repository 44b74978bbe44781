/*
Package payment 微信支付 v2：下单、回调结算、查询。

回调处理只认账单状态：账单已 success 时直接应答 SUCCESS，
否则在同一个事务里结算账单与目标订单（或充值到余额）。
账单已关闭、已失败或订单已不可支付时，钱退回钱包，账单照样记为 success，
重复回调因此只入账一次。
*/
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petcare/application/wallet"
	"petcare/domain/bill"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/infrastructure/wechatpay"
	apperrors "petcare/pkg/errors"
	"petcare/pkg/logger"
	"petcare/pkg/metrics"

	"go.uber.org/zap"
)

// Payable 可以用微信支付的订单类型（服务订单、商城订单）
type Payable interface {
	OrderType() bill.OrderType
	// PaymentAmount checks ownership and that the order is awaiting payment.
	PaymentAmount(ctx context.Context, userID, orderID string) (int64, error)
	// SettlePayment runs inside the caller's unit of work.
	SettlePayment(ctx context.Context, uow shared.UnitOfWork, orderID string) error
}

type Gateway interface {
	TradeType() string
	UnifiedOrder(ctx context.Context, req wechatpay.UnifiedOrderRequest) (*wechatpay.UnifiedOrderResult, error)
	JSAPIParams(prepayID string) map[string]string
	ParseNotify(body []byte) (*wechatpay.Notification, error)
}

type CreateRequest struct {
	OrderType string `json:"order_type" binding:"required,oneof=service mall recharge"`
	OrderID   string `json:"order_id"`
	// Amount 仅充值使用，单位分
	Amount int64 `json:"amount" binding:"min=0"`
}

type CreateResponse struct {
	BillNo     string            `json:"bill_no"`
	OutTradeNo string            `json:"out_trade_no"`
	Amount     int64             `json:"amount"`
	TradeType  string            `json:"trade_type"`
	PayParams  map[string]string `json:"pay_params,omitempty"`
	CodeURL    string            `json:"code_url,omitempty"`
}

type ApplicationService struct {
	gateway    Gateway
	userRepo   user.Repository
	billRepo   bill.Repository
	wallet     *wallet.ApplicationService
	uowFactory shared.UnitOfWorkFactory
	payables   map[bill.OrderType]Payable
	now        func() time.Time
}

func NewApplicationService(
	gateway Gateway,
	userRepo user.Repository,
	billRepo bill.Repository,
	wallet *wallet.ApplicationService,
	uowFactory shared.UnitOfWorkFactory,
	payables ...Payable,
) *ApplicationService {
	m := make(map[bill.OrderType]Payable, len(payables))
	for _, p := range payables {
		m[p.OrderType()] = p
	}
	return &ApplicationService{
		gateway:    gateway,
		userRepo:   userRepo,
		billRepo:   billRepo,
		wallet:     wallet,
		uowFactory: uowFactory,
		payables:   m,
		now:        time.Now,
	}
}

func (s *ApplicationService) amountOf(ctx context.Context, userID string, orderType bill.OrderType, req CreateRequest) (int64, error) {
	if orderType == bill.OrderTypeRecharge {
		if req.Amount <= 0 {
			return 0, shared.NewValidationError("payment", "amount", "recharge amount must be positive")
		}
		return req.Amount, nil
	}
	if req.OrderID == "" {
		return 0, shared.NewValidationError("payment", "order_id", "order_id is required")
	}
	p, ok := s.payables[orderType]
	if !ok {
		return 0, shared.NewValidationError("payment", "order_type", "unsupported order type")
	}
	return p.PaymentAmount(ctx, userID, req.OrderID)
}

// Create 生成待支付账单并调用 unifiedorder。有 openid 走 JSAPI，否则走 NATIVE 扫码。
func (s *ApplicationService) Create(ctx context.Context, userID, clientIP string, req CreateRequest) (*CreateResponse, error) {
	orderType := bill.OrderType(req.OrderType)
	amount, err := s.amountOf(ctx, userID, orderType, req)
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	b, err := bill.NewWechatPending(userID, amount, orderType, req.OrderID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.billRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	tradeType := s.gateway.TradeType()
	if tradeType == wechatpay.TradeTypeJSAPI && u.OpenID() == "" {
		tradeType = wechatpay.TradeTypeNative
	}
	result, err := s.gateway.UnifiedOrder(ctx, wechatpay.UnifiedOrderRequest{
		TradeType:  tradeType,
		Body:       fmt.Sprintf("petcare-%s", orderType),
		OutTradeNo: b.OutTradeNo,
		TotalFee:   amount,
		ClientIP:   clientIP,
		OpenID:     u.OpenID(),
	})
	if err != nil {
		if markErr := b.MarkFailed(err.Error()); markErr == nil {
			if saveErr := s.billRepo.Save(ctx, b); saveErr != nil {
				logger.FromContext(ctx).Error("Failed to mark bill failed", zap.String("bill_no", b.BillNo), zap.Error(saveErr))
			}
		}
		return nil, apperrors.PaymentGateway(err)
	}

	resp := &CreateResponse{BillNo: b.BillNo, OutTradeNo: b.OutTradeNo, Amount: amount, TradeType: tradeType}
	if tradeType == wechatpay.TradeTypeJSAPI {
		resp.PayParams = s.gateway.JSAPIParams(result.PrepayID)
	} else {
		resp.CodeURL = result.CodeURL
	}
	logger.FromContext(ctx).Info("WeChat payment created",
		zap.String("bill_no", b.BillNo),
		zap.String("order_type", string(orderType)),
		zap.Int64("amount", amount),
		zap.String("trade_type", tradeType),
	)
	return resp, nil
}

// HandleNotify 处理支付回调并返回给微信的 XML 应答
func (s *ApplicationService) HandleNotify(ctx context.Context, body []byte) string {
	log := logger.FromContext(ctx)

	n, err := s.gateway.ParseNotify(body)
	if err != nil {
		var gwErr *wechatpay.GatewayError
		if errors.As(err, &gwErr) {
			// 通信失败的通知不带订单信息，无需重试
			metrics.PaymentNotifications.WithLabelValues("failed").Inc()
			log.Warn("WeChat notify returned FAIL", zap.Error(err))
			return wechatpay.Ack(true, "")
		}
		metrics.PaymentNotifications.WithLabelValues("invalid").Inc()
		log.Warn("Rejected WeChat notify", zap.Error(err))
		return wechatpay.Ack(false, "invalid notify")
	}

	if !n.Paid {
		if err := s.markFailed(ctx, n); err != nil {
			log.Error("Failed to mark bill failed",
				zap.String("out_trade_no", n.OutTradeNo), zap.Error(err))
			return wechatpay.Ack(false, "mark failed")
		}
		metrics.PaymentNotifications.WithLabelValues("failed").Inc()
		log.Warn("WeChat reported a failed payment",
			zap.String("out_trade_no", n.OutTradeNo), zap.String("reason", n.FailReason))
		return wechatpay.Ack(true, "")
	}

	result, err := s.settle(ctx, n)
	if err != nil {
		metrics.PaymentNotifications.WithLabelValues("error").Inc()
		log.Error("Failed to settle WeChat payment",
			zap.String("out_trade_no", n.OutTradeNo), zap.Error(err))
		return wechatpay.Ack(false, "settle failed")
	}
	metrics.PaymentNotifications.WithLabelValues(result).Inc()
	log.Info("WeChat payment notified",
		zap.String("out_trade_no", n.OutTradeNo),
		zap.String("transaction_id", n.TransactionID),
		zap.String("result", result),
	)
	return wechatpay.Ack(true, "")
}

// markFailed 只处理仍为 pending 的账单；其余状态原样保留
func (s *ApplicationService) markFailed(ctx context.Context, n *wechatpay.Notification) error {
	if n.OutTradeNo == "" {
		return nil
	}
	b, err := s.billRepo.FindByOutTradeNo(ctx, n.OutTradeNo)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if b.Status != bill.StatusPending {
		return nil
	}
	if err := b.MarkFailed(n.FailReason); err != nil {
		return err
	}
	return s.billRepo.Save(ctx, b)
}

func (s *ApplicationService) settle(ctx context.Context, n *wechatpay.Notification) (string, error) {
	var result string
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		b, err := s.billRepo.FindByOutTradeNo(ctx, n.OutTradeNo)
		if err != nil {
			return err
		}
		if b.Amount != n.TotalFee {
			return shared.NewValidationError("bill", "total_fee",
				fmt.Sprintf("total_fee %d does not match bill amount %d", n.TotalFee, b.Amount))
		}
		switch b.Status {
		case bill.StatusSuccess:
			result = "duplicate"
			return nil
		case bill.StatusClosed, bill.StatusFailed:
			// 订单已关闭或已用余额支付
			result = "refunded"
			return s.refundLate(ctx, b, n.TransactionID, "payment arrived after bill "+string(b.Status))
		}

		if b.OrderType == bill.OrderTypeRecharge {
			if err := b.MarkSuccess(n.TransactionID, s.now()); err != nil {
				return err
			}
			if err := s.billRepo.Save(ctx, b); err != nil {
				return err
			}
			if _, err := s.wallet.Credit(ctx, b.UserID, b.Amount); err != nil {
				return err
			}
			result = "success"
			return nil
		}

		p, ok := s.payables[b.OrderType]
		if !ok {
			return fmt.Errorf("no settler for order type %s", b.OrderType)
		}
		err = p.SettlePayment(ctx, uow, b.OrderID)
		if errors.Is(err, shared.ErrInvalidState) {
			// 订单已支付或已取消
			result = "refunded"
			return s.refundLate(ctx, b, n.TransactionID, "order is no longer payable")
		}
		if err != nil {
			return err
		}
		if err := b.MarkSuccess(n.TransactionID, s.now()); err != nil {
			return err
		}
		if err := s.billRepo.Save(ctx, b); err != nil {
			return err
		}
		// 同一订单的其他微信账单关闭，之后到账的走退款
		if err := s.wallet.ClosePending(ctx, b.OrderType, b.OrderID); err != nil {
			return err
		}
		result = "success"
		return nil
	})
	return result, err
}

// refundLate 把到账的钱退回钱包，并把账单记为已结算
func (s *ApplicationService) refundLate(ctx context.Context, b *bill.Bill, transactionID, reason string) error {
	if b.Status == bill.StatusPending {
		if err := b.Close(); err != nil {
			return err
		}
	}
	if err := b.MarkLatePaid(transactionID, reason+", refunded to wallet", s.now()); err != nil {
		return err
	}
	if err := s.billRepo.Save(ctx, b); err != nil {
		return err
	}
	_, err := s.wallet.Refund(ctx, b.UserID, b.Amount, b.OrderType, b.OrderID, reason)
	return err
}

// Query 按 out_trade_no 查询本地账单状态
func (s *ApplicationService) Query(ctx context.Context, userID, outTradeNo string) (*wallet.BillResponse, error) {
	b, err := s.billRepo.FindByOutTradeNo(ctx, outTradeNo)
	if err != nil {
		return nil, err
	}
	if err := b.OwnedBy(userID); err != nil {
		return nil, err
	}
	return wallet.ToBillResponse(b), nil
}
