package service

import (
	"context"
	"fmt"

	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"
	"storefront-client/internal/repository"
)

type RegisterForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate is pure: it never touches the network, so a bad form fails
// before any request is made.
func (f RegisterForm) Validate() error {
	if f.FirstName == "" || f.LastName == "" || f.Email == "" || f.Password == "" || f.ConfirmPassword == "" {
		return apperr.New(apperr.KindValidationFailed, "all fields are required")
	}
	if f.Password != f.ConfirmPassword {
		return apperr.New(apperr.KindValidationFailed, "passwords do not match")
	}
	return nil
}

type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, form RegisterForm) error
	Me(ctx context.Context) (*model.User, error)
	Logout(ctx context.Context) error
}

type authServiceImpl struct {
	gateway  client.Gateway
	sessions repository.SessionStore
}

func NewAuthService(gateway client.Gateway, sessions repository.SessionStore) AuthService {
	return &authServiceImpl{
		gateway:  gateway,
		sessions: sessions,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return apperr.New(apperr.KindValidationFailed, "email and password are required")
	}

	var pair dto.TokenPairResponse
	err := s.gateway.PostAnon(ctx, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &pair)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	return s.sessions.Set(ctx, model.Credential{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	})
}

func (s *authServiceImpl) Register(ctx context.Context, form RegisterForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	var pair dto.TokenPairResponse
	err := s.gateway.PostAnon(ctx, "/auth/register", dto.RegisterRequest{
		FirstName:       form.FirstName,
		LastName:        form.LastName,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	}, &pair)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return s.sessions.Set(ctx, model.Credential{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	})
}

func (s *authServiceImpl) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.gateway.Get(ctx, "/auth/me", &user); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &user, nil
}

func (s *authServiceImpl) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}
