package service

import (
	"context"
	"testing"

	"storefront-client/internal/apperr"
	"storefront-client/internal/dto"

	"github.com/stretchr/testify/require"
)

func TestLoginPersistsCredentialPair(t *testing.T) {
	gw := newFakeGateway()
	gw.reply("POST-ANON", "/auth/login", dto.TokenPairResponse{Access: "acc-1", Refresh: "ref-1"})
	sessions := &fakeSessionStore{}
	svc := NewAuthService(gw, sessions)

	require.NoError(t, svc.Login(context.Background(), "a@b.c", "secret"))

	cred, err := sessions.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cred)
	require.Equal(t, "acc-1", cred.AccessToken)
	require.Equal(t, "ref-1", cred.RefreshToken)
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	gw := newFakeGateway()
	svc := NewAuthService(gw, &fakeSessionStore{})

	err := svc.Login(context.Background(), "", "secret")
	require.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
	require.Empty(t, gw.requests)
}

func TestRegisterPasswordMismatchFailsBeforeNetwork(t *testing.T) {
	gw := newFakeGateway()
	svc := NewAuthService(gw, &fakeSessionStore{})

	err := svc.Register(context.Background(), RegisterForm{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.org",
		Password:        "one",
		ConfirmPassword: "two",
	})
	require.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
	require.Empty(t, gw.requests)
}

func TestLogoutClearsSession(t *testing.T) {
	sessions := &fakeSessionStore{}
	require.NoError(t, sessions.Set(context.Background(), credFixture()))
	svc := NewAuthService(newFakeGateway(), sessions)

	require.NoError(t, svc.Logout(context.Background()))

	cred, err := sessions.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, cred)
}
