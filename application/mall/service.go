/*
Package mall 商城应用服务：类目、商品与 SKU、购物车、订单。

下单在一个事务里完成扣库存、累计销量、删除购物车条目和保存订单；
取消（用户或定时任务）只允许在待支付状态，同事务回补库存。
*/
package mall

import (
	"context"
	"time"

	"petcare/application/wallet"
	"petcare/domain/bill"
	"petcare/domain/mall"
	"petcare/domain/shared"
	"petcare/domain/user"
	"petcare/pkg/logger"
	"petcare/pkg/metrics"

	"go.uber.org/zap"
)

// expiredBatch 每轮最多处理的超时订单数
const expiredBatch = 100

type ApplicationService struct {
	categoryRepo mall.CategoryRepository
	productRepo  mall.ProductRepository
	skuRepo      mall.SKURepository
	cartRepo     mall.CartRepository
	orderRepo    mall.OrderRepository
	addressRepo  user.AddressRepository
	wallet       *wallet.ApplicationService
	uowFactory   shared.UnitOfWorkFactory
	now          func() time.Time
}

type Repositories struct {
	Categories mall.CategoryRepository
	Products   mall.ProductRepository
	SKUs       mall.SKURepository
	Cart       mall.CartRepository
	Orders     mall.OrderRepository
	Addresses  user.AddressRepository
}

func NewApplicationService(repos Repositories, wallet *wallet.ApplicationService, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{
		categoryRepo: repos.Categories,
		productRepo:  repos.Products,
		skuRepo:      repos.SKUs,
		cartRepo:     repos.Cart,
		orderRepo:    repos.Orders,
		addressRepo:  repos.Addresses,
		wallet:       wallet,
		uowFactory:   uowFactory,
		now:          time.Now,
	}
}

type wantedLine struct {
	skuID    string
	quantity int
}

// CreateOrder 直接购买或购物车结算，二选一
func (s *ApplicationService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*OrderResponse, error) {
	if (len(req.Items) == 0) == (len(req.CartItemIDs) == 0) {
		return nil, shared.NewValidationError("order", "items", "provide either items or cart_item_ids")
	}
	address, err := s.addressRepo.FindByID(ctx, req.AddressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, user.NewAddressNotFoundError()
	}

	wanted, fromCart, err := s.wantedLines(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var o *mall.Order
	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		ids := make([]string, len(wanted))
		for i, w := range wanted {
			ids[i] = w.skuID
		}
		skus, products, err := s.loadSKUs(ctx, ids)
		if err != nil {
			return err
		}
		lines := make([]mall.LineInput, len(wanted))
		for i, w := range wanted {
			line := mall.LineInput{SKU: skus[w.skuID], Quantity: w.quantity}
			if line.SKU != nil {
				line.Product = products[line.SKU.ProductID]
			}
			lines[i] = line
		}
		o, err = mall.NewOrder(userID, lines, address.Snapshot(), req.Remark, s.now())
		if err != nil {
			return err
		}

		for _, it := range o.Items() {
			if err := s.skuRepo.DecreaseStock(ctx, it.SKUID, it.Quantity); err != nil {
				return err
			}
			if err := s.productRepo.AdjustSales(ctx, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		if fromCart {
			if err := s.cartRepo.DeleteByUserAndSKUs(ctx, userID, ids); err != nil {
				return err
			}
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues("mall").Inc()
	logger.FromContext(ctx).Info("Mall order created",
		zap.String("order_no", o.OrderNo()), zap.Int64("total_amount", o.TotalAmount()))
	return toOrderResponse(o), nil
}

func (s *ApplicationService) wantedLines(ctx context.Context, userID string, req CreateOrderRequest) ([]wantedLine, bool, error) {
	if len(req.Items) > 0 {
		out := make([]wantedLine, len(req.Items))
		for i, it := range req.Items {
			out[i] = wantedLine{skuID: it.SKUID, quantity: it.Quantity}
		}
		return out, false, nil
	}

	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	byID := make(map[string]*mall.CartItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]wantedLine, 0, len(req.CartItemIDs))
	for _, id := range req.CartItemIDs {
		it, ok := byID[id]
		if !ok {
			return nil, false, shared.NewNotFoundError("cart_item")
		}
		out = append(out, wantedLine{skuID: it.SKUID, quantity: it.Quantity})
	}
	return out, true, nil
}

func (s *ApplicationService) findOwned(ctx context.Context, userID, orderID string) (*mall.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.OwnedBy(userID); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *ApplicationService) GetOrder(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (s *ApplicationService) ListMyOrders(ctx context.Context, userID string, req ListOrdersRequest) (shared.Page[*OrderResponse], error) {
	req.UserID = userID
	return s.ListOrders(ctx, req)
}

func (s *ApplicationService) ListOrders(ctx context.Context, req ListOrdersRequest) (shared.Page[*OrderResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	orders, total, err := s.orderRepo.List(ctx, mall.OrderFilter{UserID: req.UserID, Status: mall.Status(req.Status)}, page)
	if err != nil {
		return shared.Page[*OrderResponse]{}, err
	}
	return shared.MapPage(shared.Page[*mall.Order]{Items: orders, Total: total, Page: page.Page, PageSize: page.PageSize}, toOrderResponse), nil
}

func (s *ApplicationService) GetAnyOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (s *ApplicationService) CancelOrder(ctx context.Context, userID, orderID string, req CancelOrderRequest) (*OrderResponse, error) {
	var o *mall.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.findOwned(ctx, userID, orderID)
		if err != nil {
			return err
		}
		reason := req.Reason
		if reason == "" {
			reason = "cancelled by user"
		}
		return s.cancel(ctx, uow, o, reason)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// cancel 回补库存和销量，关闭未完成的微信账单
func (s *ApplicationService) cancel(ctx context.Context, uow shared.UnitOfWork, o *mall.Order, reason string) error {
	if err := o.Cancel(reason, s.now()); err != nil {
		return err
	}
	for _, it := range o.Items() {
		if err := s.skuRepo.RestoreStock(ctx, it.SKUID, it.Quantity); err != nil {
			return err
		}
		if err := s.productRepo.AdjustSales(ctx, it.ProductID, -it.Quantity); err != nil {
			return err
		}
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return err
	}
	uow.RegisterDirty(o)
	return s.wallet.ClosePending(ctx, bill.OrderTypeMall, o.ID())
}

// CancelExpired 定时任务调用：取消超过支付时限的订单，返回取消数量
func (s *ApplicationService) CancelExpired(ctx context.Context, timeout time.Duration) (int, error) {
	now := s.now()
	ids, err := s.orderRepo.ListExpiredIDs(ctx, now.Add(-timeout), expiredBatch)
	if err != nil {
		return 0, err
	}
	log := logger.FromContext(ctx)
	cancelled := 0
	for _, id := range ids {
		var done bool
		uow := s.uowFactory.New()
		err := uow.Execute(ctx, func(ctx context.Context) error {
			o, err := s.orderRepo.FindByID(ctx, id)
			if err != nil {
				return err
			}
			// 查询到执行之间可能已被支付
			done = o.IsExpired(now, timeout)
			if !done {
				return nil
			}
			return s.cancel(ctx, uow, o, "payment timeout")
		})
		if err != nil {
			log.Warn("Failed to cancel expired order", zap.String("order_id", id), zap.Error(err))
			continue
		}
		if done {
			cancelled++
		}
	}
	return cancelled, nil
}

func (s *ApplicationService) PayWithBalance(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	var o *mall.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.findOwned(ctx, userID, orderID)
		if err != nil {
			return err
		}
		if err := o.MarkPaid(s.now()); err != nil {
			return err
		}
		if _, err := s.wallet.Debit(ctx, userID, o.TotalAmount(), bill.OrderTypeMall, o.ID()); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (s *ApplicationService) PaymentAmount(ctx context.Context, userID, orderID string) (int64, error) {
	o, err := s.findOwned(ctx, userID, orderID)
	if err != nil {
		return 0, err
	}
	if err := o.CheckPayable(); err != nil {
		return 0, err
	}
	return o.TotalAmount(), nil
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

func (s *ApplicationService) OrderType() bill.OrderType { return bill.OrderTypeMall }

// ShipOrder 后台发货
func (s *ApplicationService) ShipOrder(ctx context.Context, orderID string, req ShipOrderRequest) (*OrderResponse, error) {
	var o *mall.Order
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Ship(req.ShippingCompany, req.TrackingNo, s.now()); err != nil {
			return err
		}
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Mall order shipped",
		zap.String("order_no", o.OrderNo()), zap.String("tracking_no", o.TrackingNo()))
	return toOrderResponse(o), nil
}

func (s *ApplicationService) ConfirmReceipt(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	var o *mall.Order
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.findOwned(ctx, userID, orderID)
		if err != nil {
			return err
		}
		if err := o.ConfirmReceipt(s.now()); err != nil {
			return err
		}
		return s.orderRepo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}
