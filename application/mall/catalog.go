package mall

import (
	"context"

	"petcare/domain/mall"
	"petcare/domain/shared"
)

func (s *ApplicationService) ListCategories(ctx context.Context, activeOnly bool) ([]*CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	return out, nil
}

func (s *ApplicationService) CreateCategory(ctx context.Context, req CategoryRequest) (*CategoryResponse, error) {
	c, err := mall.NewCategory(toCategoryInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (s *ApplicationService) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*CategoryResponse, error) {
	c, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(toCategoryInput(req)); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (s *ApplicationService) DeleteCategory(ctx context.Context, id string) error {
	return s.categoryRepo.Delete(ctx, id)
}

// ListProducts 用户端只看在售商品
func (s *ApplicationService) ListProducts(ctx context.Context, req ListProductsRequest, onSaleOnly bool) (shared.Page[*ProductResponse], error) {
	page := shared.NewPageQuery(req.Page, req.PageSize)
	filter := mall.ProductFilter{
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		OnSaleOnly: onSaleOnly,
		Order:      mall.ProductOrder(req.Order),
	}
	products, total, err := s.productRepo.List(ctx, filter, page)
	if err != nil {
		return shared.Page[*ProductResponse]{}, err
	}
	return shared.MapPage(shared.Page[*mall.Product]{Items: products, Total: total, Page: page.Page, PageSize: page.PageSize}, toProductResponse), nil
}

// GetProduct 下架商品对用户按不存在处理
func (s *ApplicationService) GetProduct(ctx context.Context, id string, onSaleOnly bool) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if onSaleOnly && !p.IsOnSale {
		return nil, shared.NewNotFoundError("product")
	}
	skus, err := s.skuRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDetail(p, skus), nil
}

func (s *ApplicationService) checkCategory(ctx context.Context, id string) error {
	_, err := s.categoryRepo.FindByID(ctx, id)
	return err
}

func (s *ApplicationService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	p, err := mall.NewProduct(toProductInput(req))
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	return toProductDetail(p, nil), nil
}

func (s *ApplicationService) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*ProductResponse, error) {
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}
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
	return s.GetProduct(ctx, id, false)
}

// DeleteProduct 连同 SKU 一起删除
func (s *ApplicationService) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *ApplicationService) CreateSKU(ctx context.Context, productID string, req SKURequest) (*SKUResponse, error) {
	var sku *mall.SKU
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		p, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		sku, err = mall.NewSKU(productID, toSKUInput(req))
		if err != nil {
			return err
		}
		if err := s.skuRepo.Save(ctx, sku); err != nil {
			return err
		}
		return s.refreshPrice(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toSKUResponse(sku), nil
}

func (s *ApplicationService) UpdateSKU(ctx context.Context, skuID string, req SKURequest) (*SKUResponse, error) {
	var sku *mall.SKU
	err := s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		var err error
		sku, err = s.skuRepo.FindByID(ctx, skuID)
		if err != nil {
			return err
		}
		if err := sku.Update(toSKUInput(req)); err != nil {
			return err
		}
		if err := s.skuRepo.Save(ctx, sku); err != nil {
			return err
		}
		p, err := s.productRepo.FindByID(ctx, sku.ProductID)
		if err != nil {
			return err
		}
		return s.refreshPrice(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return toSKUResponse(sku), nil
}

func (s *ApplicationService) DeleteSKU(ctx context.Context, skuID string) error {
	return s.uowFactory.New().Execute(ctx, func(ctx context.Context) error {
		sku, err := s.skuRepo.FindByID(ctx, skuID)
		if err != nil {
			return err
		}
		if err := s.skuRepo.Delete(ctx, skuID); err != nil {
			return err
		}
		p, err := s.productRepo.FindByID(ctx, sku.ProductID)
		if err != nil {
			return err
		}
		return s.refreshPrice(ctx, p)
	})
}

// refreshPrice 商品价格始终是最低 SKU 价
func (s *ApplicationService) refreshPrice(ctx context.Context, p *mall.Product) error {
	skus, err := s.skuRepo.ListByProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	p.RefreshPrice(skus)
	return s.productRepo.Save(ctx, p)
}
