package booking

import (
	"context"

	"petcare/domain/booking"
	"petcare/domain/shared"
)

// ListServiceItems 用户端只看到上架的服务项目
func (s *ApplicationService) ListServiceItems(ctx context.Context, req ListServiceItemsRequest, activeOnly bool) (shared.Page[*ServiceItemResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	items, total, err := s.itemRepo.List(ctx, booking.ServiceItemFilter{Kind: booking.ItemKind(req.Kind), ActiveOnly: activeOnly}, page)
	if err != nil {
		return shared.Page[*ServiceItemResponse]{}, err
	}
	return shared.MapPage(shared.Page[*booking.ServiceItem]{Items: items, Total: total, Page: page.Page, PageSize: page.PageSize}, toServiceItemResponse), nil
}

func (s *ApplicationService) GetServiceItem(ctx context.Context, id string) (*ServiceItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toServiceItemResponse(item), nil
}

func (s *ApplicationService) CreateServiceItem(ctx context.Context, req ServiceItemRequest) (*ServiceItemResponse, error) {
	item, err := booking.NewServiceItem(toServiceItemInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toServiceItemResponse(item), nil
}

func (s *ApplicationService) UpdateServiceItem(ctx context.Context, id string, req ServiceItemRequest) (*ServiceItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Update(toServiceItemInput(req)); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toServiceItemResponse(item), nil
}

func (s *ApplicationService) DeleteServiceItem(ctx context.Context, id string) error {
	return s.itemRepo.Delete(ctx, id)
}

func (s *ApplicationService) ListStaff(ctx context.Context, activeOnly bool, page shared.PageQuery) (shared.Page[*StaffResponse], error) {
	staff, total, err := s.staffRepo.List(ctx, activeOnly, page)
	if err != nil {
		return shared.Page[*StaffResponse]{}, err
	}
	mapper := toStaffResponse
	if activeOnly {
		mapper = toPublicStaffResponse
	}
	return shared.MapPage(shared.Page[*booking.Staff]{Items: staff, Total: total, Page: page.Page, PageSize: page.PageSize}, mapper), nil
}

func (s *ApplicationService) CreateStaff(ctx context.Context, req StaffRequest) (*StaffResponse, error) {
	staff, err := booking.NewStaff(toStaffInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

func (s *ApplicationService) UpdateStaff(ctx context.Context, id string, req StaffRequest) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := staff.Update(toStaffInput(req)); err != nil {
		return nil, err
	}
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

func (s *ApplicationService) DeleteStaff(ctx context.Context, id string) error {
	return s.staffRepo.Delete(ctx, id)
}
