package integral

import "petcare/domain/integral"

func toProductInput(req ProductRequest) integral.ProductInput {
	return integral.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Cover:       req.Cover,
		Points:      req.Points,
		Stock:       req.Stock,
		Kind:        integral.Kind(req.Kind),
		Sort:        req.Sort,
		IsActive:    req.IsActive,
	}
}

func toProductResponse(p *integral.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Cover:       p.Cover,
		Points:      p.Points,
		Stock:       p.Stock,
		Kind:        string(p.Kind),
		Sort:        p.Sort,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func toOrderResponse(o *integral.Order) *OrderResponse {
	return &OrderResponse{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		ProductID:   o.ProductID,
		ProductName: o.ProductName,
		Cover:       o.Cover,
		Kind:        string(o.Kind),
		Quantity:    o.Quantity,
		Points:      o.Points,
		Address:     o.Address,
		RedeemCode:  o.RedeemCode,
		Status:      string(o.Status),
		TrackingNo:  o.TrackingNo,
		ShippedAt:   o.ShippedAt,
		CompletedAt: o.CompletedAt,
		CreatedAt:   o.CreatedAt,
	}
}

func toRecordResponse(r *integral.Record) *RecordResponse {
	return &RecordResponse{
		ID:           r.ID,
		Change:       r.Change,
		BalanceAfter: r.BalanceAfter,
		Reason:       string(r.Reason),
		RefID:        r.RefID,
		Remark:       r.Remark,
		CreatedAt:    r.CreatedAt,
	}
}
