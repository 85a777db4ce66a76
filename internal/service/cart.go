package service

import (
	"context"
	"fmt"
	"sync"

	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"

	"github.com/shopspring/decimal"
)

// CartService keeps a read-through copy of the backend cart. Every mutation
// is followed by a full re-fetch; the backend's view is the authoritative one
// and the total is always recomputed from items, never trusted from a cache.
type CartService interface {
	Fetch(ctx context.Context) (*model.Cart, error)
	Add(ctx context.Context, productID int64, quantity int, recurrence model.Recurrence) (*model.Cart, error)
	SetQuantity(ctx context.Context, productID int64, quantity int, recurrence model.Recurrence) (*model.Cart, error)
	Remove(ctx context.Context, itemID int64) (*model.Cart, error)

	// Total sums unit price times quantity over the last fetched items,
	// in minor currency units.
	Total() int64

	// TotalDisplay renders the total in major units, e.g. exponent 2 turns
	// 2000 into "20.00".
	TotalDisplay(exponent int32) string
}

type cartServiceImpl struct {
	gateway client.Gateway

	mu    sync.Mutex
	items []model.CartItem
}

func NewCartService(gateway client.Gateway) CartService {
	return &cartServiceImpl{
		gateway: gateway,
	}
}

func (s *cartServiceImpl) Fetch(ctx context.Context) (*model.Cart, error) {
	var cart model.Cart
	if err := s.gateway.Get(ctx, "/orders/cart", &cart); err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}

	s.mu.Lock()
	s.items = cart.Items
	s.mu.Unlock()

	return &cart, nil
}

func (s *cartServiceImpl) Add(ctx context.Context, productID int64, quantity int, recurrence model.Recurrence) (*model.Cart, error) {
	if quantity <= 0 {
		return nil, apperr.New(apperr.KindValidationFailed, "quantity must be positive")
	}

	err := s.gateway.Post(ctx, "/orders/add-item", dto.AddItemRequest{
		ProductID:  productID,
		Quantity:   quantity,
		Recurrence: recurrence,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	return s.Fetch(ctx)
}

func (s *cartServiceImpl) SetQuantity(ctx context.Context, productID int64, quantity int, recurrence model.Recurrence) (*model.Cart, error) {
	// Quantity zero means the item leaves the cart; a zero-quantity record
	// must never exist.
	if quantity <= 0 {
		item, ok := s.findByProduct(productID)
		if !ok {
			cart, err := s.Fetch(ctx)
			if err != nil {
				return nil, err
			}
			if item, ok = s.findByProduct(productID); !ok {
				return cart, nil
			}
		}
		return s.Remove(ctx, item.ID)
	}

	err := s.gateway.Put(ctx, "/orders/update-item", dto.UpdateItemRequest{
		ProductID:  productID,
		Quantity:   quantity,
		Recurrence: recurrence,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	return s.Fetch(ctx)
}

func (s *cartServiceImpl) Remove(ctx context.Context, itemID int64) (*model.Cart, error) {
	if err := s.gateway.Delete(ctx, fmt.Sprintf("/orders/item/%d", itemID)); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}

	return s.Fetch(ctx)
}

func (s *cartServiceImpl) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	if total < 0 {
		return 0
	}
	return total
}

func (s *cartServiceImpl) TotalDisplay(exponent int32) string {
	return decimal.New(s.Total(), -exponent).StringFixed(exponent)
}

func (s *cartServiceImpl) findByProduct(productID int64) (model.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return model.CartItem{}, false
}
