package booking

import (
	"context"

	"petcare/domain/bill"
	"petcare/domain/shared"
)

// PaymentAmount 发起微信支付前校验订单归属与待支付状态
func (s *ApplicationService) PaymentAmount(ctx context.Context, userID, orderID string) (int64, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return 0, err
	}
	if err := o.CheckPayable(); err != nil {
		return 0, err
	}
	return o.TotalPrice(), nil
}

// SettlePayment 微信回调入账，必须在调用方的事务内执行
func (s *ApplicationService) SettlePayment(ctx context.Context, uow shared.UnitOfWork, orderID string) error {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if err := o.MarkPaid(s.now()); err != nil {
		return err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return err
	}
	uow.RegisterDirty(o)
	return nil
}

func (s *ApplicationService) OrderType() bill.OrderType { return bill.OrderTypeService }
