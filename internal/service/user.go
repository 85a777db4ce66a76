package service

import (
	"context"
	"fmt"

	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
)

type UserService interface {
	Update(ctx context.Context, firstName, lastName, email string) error
	UpdatePassword(ctx context.Context, previous, next, confirm string) error
}

type userServiceImpl struct {
	gateway client.Gateway
}

func NewUserService(gateway client.Gateway) UserService {
	return &userServiceImpl{
		gateway: gateway,
	}
}

func (s *userServiceImpl) Update(ctx context.Context, firstName, lastName, email string) error {
	if firstName == "" || lastName == "" || email == "" {
		return apperr.New(apperr.KindValidationFailed, "first name, last name and email are required")
	}

	err := s.gateway.Put(ctx, "/users/update", dto.UpdateUserRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}, nil)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (s *userServiceImpl) UpdatePassword(ctx context.Context, previous, next, confirm string) error {
	if previous == "" || next == "" {
		return apperr.New(apperr.KindValidationFailed, "previous and new passwords are required")
	}
	if next != confirm {
		return apperr.New(apperr.KindValidationFailed, "passwords do not match")
	}

	err := s.gateway.Put(ctx, "/users/update-password", dto.UpdatePasswordRequest{
		PreviousPassword:   previous,
		NewPassword:        next,
		ConfirmNewPassword: confirm,
	}, nil)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
