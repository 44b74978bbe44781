/*
Package booking 服务预约的应用层：服务项目与员工维护、预约下单、
取消退款、余额支付以及后台的状态流转和派单。

状态变化都经由 ServiceOrder 聚合根记录事件，由 UnitOfWork 写入 outbox，
通知在 outbox 消费端生成。
*/
package booking

import (
	"context"
	"time"

	"petcare/application/wallet"
	"petcare/domain/bill"
	"petcare/domain/booking"
	"petcare/domain/pet"
	"petcare/domain/shared"
	"petcare/pkg/logger"
	"petcare/pkg/metrics"

	"go.uber.org/zap"
)

type ApplicationService struct {
	itemRepo   booking.ServiceItemRepository
	staffRepo  booking.StaffRepository
	orderRepo  booking.ServiceOrderRepository
	petRepo    pet.Repository
	wallet     *wallet.ApplicationService
	uowFactory shared.UnitOfWorkFactory
	now        func() time.Time
}

func NewApplicationService(
	itemRepo booking.ServiceItemRepository,
	staffRepo booking.StaffRepository,
	orderRepo booking.ServiceOrderRepository,
	petRepo pet.Repository,
	wallet *wallet.ApplicationService,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		itemRepo:   itemRepo,
		staffRepo:  staffRepo,
		orderRepo:  orderRepo,
		petRepo:    petRepo,
		wallet:     wallet,
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// CreateOrder 校验宠物归属与服务项目后按快照价格下单
func (s *ApplicationService) CreateOrder(ctx context.Context, userID string, req CreateOrderRequest) (*OrderResponse, error) {
	base, err := s.itemRepo.FindByID(ctx, req.BaseServiceID)
	if err != nil {
		return nil, err
	}
	additional, err := s.loadAdditional(ctx, req.AdditionalServiceIDs)
	if err != nil {
		return nil, err
	}
	if err := s.checkPets(ctx, userID, req.PetIDs); err != nil {
		return nil, err
	}

	o, err := booking.NewServiceOrder(booking.CreateOptions{
		UserID:        userID,
		PetIDs:        req.PetIDs,
		Base:          base,
		Additional:    additional,
		AppointmentAt: req.AppointmentAt,
		ContactPhone:  req.ContactPhone,
		Remark:        req.Remark,
	}, s.now())
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues("service").Inc()
	logger.FromContext(ctx).Info("Service order created",
		zap.String("order_no", o.OrderNo()), zap.Int64("total_price", o.TotalPrice()))
	return toOrderResponse(o), nil
}

// loadAdditional 保持请求顺序；找不到的 id 视为校验失败
func (s *ApplicationService) loadAdditional(ctx context.Context, ids []string) ([]*booking.ServiceItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := s.itemRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*booking.ServiceItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	out := make([]*booking.ServiceItem, 0, len(ids))
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return nil, shared.NewValidationError("service_order", "additional_service_ids", "unknown service: "+id)
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ApplicationService) checkPets(ctx context.Context, userID string, ids []string) error {
	pets, err := s.petRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	owned := make(map[string]bool, len(pets))
	for _, p := range pets {
		if p.OwnerID == userID {
			owned[p.ID] = true
		}
	}
	for _, id := range ids {
		if !owned[id] {
			return shared.NewValidationError("service_order", "pet_ids", "pet does not belong to you: "+id)
		}
	}
	return nil
}

func (s *ApplicationService) findOwned(ctx context.Context, userID, orderID string) (*booking.ServiceOrder, error) {
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
	req.StaffID = ""
	return s.ListOrders(ctx, req)
}

// CancelOrder 用户只能取消待确认和已确认的预约；已支付的金额退回余额
func (s *ApplicationService) CancelOrder(ctx context.Context, userID, orderID string, req CancelOrderRequest) (*OrderResponse, error) {
	var o *booking.ServiceOrder
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.findOwned(ctx, userID, orderID)
		if err != nil {
			return err
		}
		if o.Status() != booking.StatusPending && o.Status() != booking.StatusConfirmed {
			return booking.NewInvalidTransitionError(o.Status(), booking.StatusCancelled)
		}
		return s.cancel(ctx, uow, o, req.Reason)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

func (s *ApplicationService) cancel(ctx context.Context, uow shared.UnitOfWork, o *booking.ServiceOrder, reason string) error {
	refund, err := o.Cancel(reason)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return err
	}
	uow.RegisterDirty(o)

	if refund > 0 {
		if _, err := s.wallet.Refund(ctx, o.UserID(), refund, bill.OrderTypeService, o.ID(), "service order cancelled"); err != nil {
			return err
		}
	}
	return s.wallet.ClosePending(ctx, bill.OrderTypeService, o.ID())
}

// PayWithBalance 余额支付：扣余额、记账单、标记已支付在同一事务
func (s *ApplicationService) PayWithBalance(ctx context.Context, userID, orderID string) (*OrderResponse, error) {
	var o *booking.ServiceOrder
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
		if _, err := s.wallet.Debit(ctx, userID, o.TotalPrice(), bill.OrderTypeService, o.ID()); err != nil {
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

func (s *ApplicationService) ListOrders(ctx context.Context, req ListOrdersRequest) (shared.Page[*OrderResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	filter := booking.OrderFilter{UserID: req.UserID, StaffID: req.StaffID, Status: booking.Status(req.Status)}
	orders, total, err := s.orderRepo.List(ctx, filter, page)
	if err != nil {
		return shared.Page[*OrderResponse]{}, err
	}
	return shared.MapPage(shared.Page[*booking.ServiceOrder]{Items: orders, Total: total, Page: page.Page, PageSize: page.PageSize}, toOrderResponse), nil
}

func (s *ApplicationService) GetAnyOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// UpdateStatus 后台按状态白名单推进预约，取消同样会退款
func (s *ApplicationService) UpdateStatus(ctx context.Context, orderID string, req UpdateStatusRequest) (*OrderResponse, error) {
	to := booking.Status(req.Status)
	var o *booking.ServiceOrder
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if to == booking.StatusCancelled {
			return s.cancel(ctx, uow, o, req.Reason)
		}
		if err := o.TransitionTo(to); err != nil {
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
	logger.FromContext(ctx).Info("Service order status updated",
		zap.String("order_no", o.OrderNo()), zap.String("status", string(o.Status())))
	return toOrderResponse(o), nil
}

func (s *ApplicationService) AssignStaff(ctx context.Context, orderID string, req AssignStaffRequest) (*OrderResponse, error) {
	var o *booking.ServiceOrder
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		staff, err := s.staffRepo.FindByID(ctx, req.StaffID)
		if err != nil {
			return err
		}
		o, err = s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.AssignStaff(staff); err != nil {
			return err
		}
		return s.orderRepo.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}
