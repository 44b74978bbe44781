package mall

import "petcare/domain/mall"

func toCategoryInput(req CategoryRequest) mall.CategoryInput {
	return mall.CategoryInput{Name: req.Name, Icon: req.Icon, Sort: req.Sort, IsActive: req.IsActive}
}

func toCategoryResponse(c *mall.Category) *CategoryResponse {
	return &CategoryResponse{ID: c.ID, Name: c.Name, Icon: c.Icon, Sort: c.Sort, IsActive: c.IsActive}
}

func toProductInput(req ProductRequest) mall.ProductInput {
	return mall.ProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Cover:       req.Cover,
		Images:      req.Images,
		IsOnSale:    req.IsOnSale,
	}
}

// toProductResponse 列表页不返回详情描述
func toProductResponse(p *mall.Product) *ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &ProductResponse{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Subtitle:   p.Subtitle,
		Cover:      p.Cover,
		Images:     images,
		Price:      p.Price,
		Sales:      p.Sales,
		IsOnSale:   p.IsOnSale,
		CreatedAt:  p.CreatedAt,
	}
}

func toProductDetail(p *mall.Product, skus []*mall.SKU) *ProductResponse {
	resp := toProductResponse(p)
	resp.Description = p.Description
	resp.SKUs = make([]*SKUResponse, len(skus))
	for i, sku := range skus {
		resp.SKUs[i] = toSKUResponse(sku)
	}
	return resp
}

func toSKUInput(req SKURequest) mall.SKUInput {
	return mall.SKUInput{Attributes: req.Attributes, Price: req.Price, Stock: req.Stock}
}

func toSKUResponse(s *mall.SKU) *SKUResponse {
	attrs := s.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &SKUResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Attributes: attrs,
		Label:      s.Label(),
		Price:      s.Price,
		Stock:      s.Stock,
		Sales:      s.Sales,
	}
}

func toOrderResponse(o *mall.Order) *OrderResponse {
	items := o.Items()
	out := make([]*OrderItemResponse, len(items))
	for i, it := range items {
		out[i] = &OrderItemResponse{
			ProductID:   it.ProductID,
			SKUID:       it.SKUID,
			ProductName: it.ProductName,
			SKULabel:    it.SKULabel,
			Cover:       it.Cover,
			Price:       it.Price,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		}
	}
	return &OrderResponse{
		ID:              o.ID(),
		OrderNo:         o.OrderNo(),
		UserID:          o.UserID(),
		Items:           out,
		TotalAmount:     o.TotalAmount(),
		Address:         o.Address(),
		Remark:          o.Remark(),
		Status:          string(o.Status()),
		ShippingCompany: o.ShippingCompany(),
		TrackingNo:      o.TrackingNo(),
		CancelReason:    o.CancelReason(),
		PaidAt:          o.PaidAt(),
		ShippedAt:       o.ShippedAt(),
		CompletedAt:     o.CompletedAt(),
		CreatedAt:       o.CreatedAt(),
	}
}
