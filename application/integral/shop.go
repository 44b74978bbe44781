package integral

import (
	"context"

	"petcare/domain/integral"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/pkg/logger"

	"go.uber.org/zap"
)

func (s *ApplicationService) ListProducts(ctx context.Context, activeOnly bool, page shared.PageQuery) (shared.Page[*ProductResponse], error) {
	products, total, err := s.productRepo.List(ctx, activeOnly, page)
	if err != nil {
		return shared.Page[*ProductResponse]{}, err
	}
	return shared.MapPage(shared.Page[*integral.Product]{Items: products, Total: total, Page: page.Page, PageSize: page.PageSize}, toProductResponse), nil
}

func (s *ApplicationService) GetProduct(ctx context.Context, id string, activeOnly bool) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activeOnly && !p.IsActive {
		return nil, shared.NewNotFoundError("integral_product")
	}
	return toProductResponse(p), nil
}

func (s *ApplicationService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	p, err := integral.NewProduct(toProductInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *ApplicationService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(toProductInput(req)); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

func (s *ApplicationService) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

// Redeem 兑换：库存与积分都用条件更新扣减，任一不足整单回滚
func (s *ApplicationService) Redeem(ctx context.Context, userID string, req RedeemRequest) (*OrderResponse, error) {
	var address string
	if req.AddressID != "" {
		a, err := s.addressRepo.FindByID(ctx, req.AddressID)
		if err != nil {
			return nil, err
		}
		if a.UserID != userID {
			return nil, user.NewAddressNotFoundError()
		}
		address = a.Snapshot()
	}

	var o *integral.Order
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		p, err := s.productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		o, err = integral.NewOrder(userID, p, req.Quantity, address, s.now())
		if err != nil {
			return err
		}
		if err := s.productRepo.DecreaseStock(ctx, p.ID, o.Quantity); err != nil {
			return err
		}
		if _, err := s.adjust(ctx, userID, -o.Points, integral.ReasonRedeem, o.ID, p.Name); err != nil {
			return err
		}
		return s.orderRepo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Integral order created",
		zap.String("order_no", o.OrderNo), zap.Int64("points", o.Points))
	return toOrderResponse(o), nil
}

func (s *ApplicationService) ListOrders(ctx context.Context, req ListOrdersRequest) (shared.Page[*OrderResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	orders, total, err := s.orderRepo.List(ctx, integral.OrderFilter{UserID: req.UserID, Status: integral.OrderStatus(req.Status)}, page)
	if err != nil {
		return shared.Page[*OrderResponse]{}, err
	}
	return shared.MapPage(shared.Page[*integral.Order]{Items: orders, Total: total, Page: page.Page, PageSize: page.PageSize}, toOrderResponse), nil
}

func (s *ApplicationService) ListMyOrders(ctx context.Context, userID string, req ListOrdersRequest) (shared.Page[*OrderResponse], error) {
	req.UserID = userID
	return s.ListOrders(ctx, req)
}

func (s *ApplicationService) GetOrder(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.OwnedBy(userID); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (s *ApplicationService) ConfirmReceipt(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.OwnedBy(userID); err != nil {
		return nil, err
	}
	if err := o.ConfirmReceipt(s.now()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (s *ApplicationService) ShipOrder(ctx context.Context, orderID string, req ShipOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Ship(req.TrackingNo, s.now()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}
