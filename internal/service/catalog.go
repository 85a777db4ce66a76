package service

import (
	"context"
	"fmt"

	"storefront-client/internal/client"
	"storefront-client/internal/model"
)

type CatalogService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, productID int64) (*model.Product, error)
}

type catalogServiceImpl struct {
	gateway client.Gateway
}

func NewCatalogService(gateway client.Gateway) CatalogService {
	return &catalogServiceImpl{
		gateway: gateway,
	}
}

func (s *catalogServiceImpl) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := s.gateway.Get(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *catalogServiceImpl) Get(ctx context.Context, productID int64) (*model.Product, error) {
	var product model.Product
	if err := s.gateway.Get(ctx, fmt.Sprintf("/products/%d", productID), &product); err != nil {
		return nil, fmt.Errorf("fetch product %d: %w", productID, err)
	}
	return &product, nil
}
