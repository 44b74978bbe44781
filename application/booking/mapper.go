package booking

import "petcare/domain/booking"

func toServiceItemInput(req ServiceItemRequest) booking.ServiceItemInput {
	return booking.ServiceItemInput{
		Name:            req.Name,
		Kind:            booking.ItemKind(req.Kind),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		Image:           req.Image,
		Sort:            req.Sort,
		IsActive:        req.IsActive,
	}
}

func toServiceItemResponse(item *booking.ServiceItem) *ServiceItemResponse {
	return &ServiceItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Kind:            string(item.Kind),
		Price:           item.Price,
		DurationMinutes: item.DurationMinutes,
		Description:     item.Description,
		Image:           item.Image,
		Sort:            item.Sort,
		IsActive:        item.IsActive,
		CreatedAt:       item.CreatedAt,
	}
}

func toStaffInput(req StaffRequest) booking.StaffInput {
	return booking.StaffInput{
		Name:     req.Name,
		Title:    req.Title,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
		Intro:    req.Intro,
		IsActive: req.IsActive,
	}
}

func toStaffResponse(s *booking.Staff) *StaffResponse {
	return &StaffResponse{
		ID:       s.ID,
		Name:     s.Name,
		Title:    s.Title,
		Phone:    s.Phone,
		Avatar:   s.Avatar,
		Intro:    s.Intro,
		IsActive: s.IsActive,
	}
}

// toPublicStaffResponse 对用户端隐藏员工手机号
func toPublicStaffResponse(s *booking.Staff) *StaffResponse {
	resp := toStaffResponse(s)
	resp.Phone = ""
	return resp
}

func toLineResponse(l booking.ServiceLine) ServiceLineResponse {
	return ServiceLineResponse{ServiceID: l.ServiceID, Name: l.Name, Price: l.Price}
}

func toOrderResponse(o *booking.ServiceOrder) *OrderResponse {
	additional := make([]ServiceLineResponse, 0, len(o.Additional()))
	for _, l := range o.Additional() {
		additional = append(additional, toLineResponse(l))
	}
	return &OrderResponse{
		ID:                 o.ID(),
		OrderNo:            o.OrderNo(),
		UserID:             o.UserID(),
		StaffID:            o.StaffID(),
		PetIDs:             o.PetIDs(),
		BaseService:        toLineResponse(o.BaseService()),
		AdditionalServices: additional,
		AppointmentAt:      o.AppointmentAt(),
		ContactPhone:       o.ContactPhone(),
		Remark:             o.Remark(),
		BasePrice:          o.BasePrice(),
		AdditionalPrice:    o.AdditionalPrice(),
		TotalPrice:         o.TotalPrice(),
		Status:             string(o.Status()),
		IsPaid:             o.IsPaid(),
		PaidAt:             o.PaidAt(),
		CancelReason:       o.CancelReason(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}
