package service

import (
	"context"
	"fmt"

	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"
)

type AddressForm struct {
	Kind       model.AddressKind
	Street     string
	Number     string
	Complement string
	ZipCode    string
	City       string
	Region     string
	Country    string
}

func (f AddressForm) Validate() error {
	if f.Kind != model.AddressBilling && f.Kind != model.AddressShipping {
		return apperr.New(apperr.KindValidationFailed, "address kind must be billing or shipping")
	}
	if f.Street == "" || f.Number == "" || f.ZipCode == "" || f.City == "" || f.Country == "" {
		return apperr.New(apperr.KindValidationFailed, "street, number, zip code, city and country are required")
	}
	return nil
}

type AddressService interface {
	List(ctx context.Context) ([]model.Address, error)
	Add(ctx context.Context, form AddressForm) error
	Update(ctx context.Context, addressID int64, form AddressForm) error
	Delete(ctx context.Context, addressID int64) error

	// AttachToOrder selects the shipping and billing addresses for a draft
	// order, moving it to the addressed state.
	AttachToOrder(ctx context.Context, orderID, shippingAddressID, billingAddressID int64) error
}

type addressServiceImpl struct {
	gateway client.Gateway
}

func NewAddressService(gateway client.Gateway) AddressService {
	return &addressServiceImpl{
		gateway: gateway,
	}
}

func (s *addressServiceImpl) List(ctx context.Context) ([]model.Address, error) {
	var addresses []model.Address
	err := s.gateway.Get(ctx, "/addresses", &addresses)
	if err != nil {
		// No addresses yet is a normal state, not a failure.
		if apperr.IsKind(err, apperr.KindNotFound) {
			return []model.Address{}, nil
		}
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

func (s *addressServiceImpl) Add(ctx context.Context, form AddressForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	if err := s.gateway.Post(ctx, "/addresses", addressRequest(0, form), nil); err != nil {
		return fmt.Errorf("add address: %w", err)
	}
	return nil
}

func (s *addressServiceImpl) Update(ctx context.Context, addressID int64, form AddressForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	if err := s.gateway.Put(ctx, "/addresses", addressRequest(addressID, form), nil); err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

func (s *addressServiceImpl) Delete(ctx context.Context, addressID int64) error {
	if err := s.gateway.Delete(ctx, fmt.Sprintf("/addresses/%d", addressID)); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

func (s *addressServiceImpl) AttachToOrder(ctx context.Context, orderID, shippingAddressID, billingAddressID int64) error {
	if shippingAddressID == 0 || billingAddressID == 0 {
		return apperr.New(apperr.KindValidationFailed, "shipping and billing addresses must be selected")
	}

	err := s.gateway.Put(ctx, "/orders/update-order", dto.UpdateOrderRequest{
		OrderID:           orderID,
		Status:            model.OrderAddressed,
		ShippingAddressID: shippingAddressID,
		BillingAddressID:  billingAddressID,
	}, nil)
	if err != nil {
		return fmt.Errorf("attach addresses to order %d: %w", orderID, err)
	}
	return nil
}

func addressRequest(id int64, form AddressForm) dto.AddressRequest {
	return dto.AddressRequest{
		ID:         id,
		Kind:       form.Kind,
		Street:     form.Street,
		Number:     form.Number,
		Complement: form.Complement,
		ZipCode:    form.ZipCode,
		City:       form.City,
		Region:     form.Region,
		Country:    form.Country,
	}
}
