package mall

import (
	"context"
	"errors"

	"petcare/domain/mall"
	"petcare/domain/shared"
)

// ListCart 汇总金额只计算仍可购买的条目
func (s *ApplicationService) ListCart(ctx context.Context, userID string) (*CartResponse, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	skuIDs := make([]string, len(items))
	for i, it := range items {
		skuIDs[i] = it.SKUID
	}
	skus, products, err := s.loadSKUs(ctx, skuIDs)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{Items: make([]*CartItemResponse, 0, len(items))}
	for _, it := range items {
		line := &CartItemResponse{ID: it.ID, SKUID: it.SKUID, Quantity: it.Quantity}
		if sku, ok := skus[it.SKUID]; ok {
			line.Price = sku.Price
			line.Stock = sku.Stock
			line.SKULabel = sku.Label()
			if p, ok := products[sku.ProductID]; ok {
				line.ProductID = p.ID
				line.ProductName = p.Name
				line.Cover = p.Cover
				line.Available = p.IsOnSale && sku.Stock >= it.Quantity
			}
		}
		if line.Available {
			resp.Total += line.Price * int64(line.Quantity)
		}
		resp.Items = append(resp.Items, line)
	}
	return resp, nil
}

// AddToCart 同一 SKU 再次加入时合并数量
func (s *ApplicationService) AddToCart(ctx context.Context, userID string, req AddCartRequest) error {
	sku, err := s.skuRepo.FindByID(ctx, req.SKUID)
	if err != nil {
		return err
	}
	p, err := s.productRepo.FindByID(ctx, sku.ProductID)
	if err != nil {
		return err
	}
	if !p.IsOnSale {
		return shared.NewStateError("cart_item", "product is off sale: "+p.Name)
	}

	item, err := s.cartRepo.FindByUserAndSKU(ctx, userID, req.SKUID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		item, err = mall.NewCartItem(userID, req.SKUID, req.Quantity)
	case err == nil:
		err = item.Merge(req.Quantity)
	}
	if err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, item)
}

func (s *ApplicationService) UpdateCartItem(ctx context.Context, userID, itemID string, req UpdateCartRequest) error {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := item.OwnedBy(userID); err != nil {
		return err
	}
	if err := item.SetQuantity(req.Quantity); err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, item)
}

func (s *ApplicationService) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := item.OwnedBy(userID); err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, itemID)
}

// loadSKUs 按 id 批量加载 SKU 及其商品
func (s *ApplicationService) loadSKUs(ctx context.Context, skuIDs []string) (map[string]*mall.SKU, map[string]*mall.Product, error) {
	if len(skuIDs) == 0 {
		return map[string]*mall.SKU{}, map[string]*mall.Product{}, nil
	}
	skus, err := s.skuRepo.FindByIDs(ctx, skuIDs)
	if err != nil {
		return nil, nil, err
	}
	skuByID := make(map[string]*mall.SKU, len(skus))
	productIDs := make([]string, 0, len(skus))
	for _, sku := range skus {
		skuByID[sku.ID] = sku
		productIDs = append(productIDs, sku.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}
	productByID := make(map[string]*mall.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}
	return skuByID, productByID, nil
}
