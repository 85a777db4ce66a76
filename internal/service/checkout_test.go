package service

import (
	"context"
	"testing"

	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testCard = client.CardDetails{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"}

func newCheckout(gw *fakeGateway, provider client.PaymentProvider, policy PartialFailurePolicy) CheckoutService {
	return NewCheckoutService(gw, provider, policy, zerolog.Nop())
}

func stubIntent(gw *fakeGateway) {
	gw.reply("POST", "/checkout/setup-intent", model.SetupIntent{
		IntentID:     "seti_1",
		ClientSecret: "seti_1_secret_abc",
	})
}

func stubPayments(gw *fakeGateway, secrets ...string) {
	payments := make([]dto.Payment, len(secrets))
	for i, secret := range secrets {
		payments[i] = dto.Payment{ClientSecret: secret, Type: "monthly"}
	}
	gw.reply("POST", "/checkout", dto.CheckoutResponse{Payments: payments})
	gw.reply("POST", "/checkout/cancel-setup-intent", struct{}{})
}

func TestCheckoutSettlesWhenAllPaymentsConfirm(t *testing.T) {
	gw := newFakeGateway()
	stubIntent(gw)
	stubPayments(gw, "pi_1_secret_x", "pi_2_secret_y")
	provider := &fakeProvider{}

	attempt, err := newCheckout(gw, provider, LeaveSettled).Begin(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, CheckoutIntentCreated, attempt.State())

	require.NoError(t, attempt.Pay(context.Background(), testCard))
	require.Equal(t, CheckoutSettled, attempt.State())
	require.Equal(t, 2, attempt.ConfirmedPayments())
	require.Equal(t, []string{"pi_1_secret_x", "pi_2_secret_y"}, provider.confirmed)
}

func TestCheckoutSetupIntentFailureIsTerminalAndSkipsProvider(t *testing.T) {
	gw := newFakeGateway()
	gw.failWith("POST", "/checkout/setup-intent",
		apperr.New(apperr.KindNetworkUnavailable, "backend unreachable"))
	provider := &fakeProvider{}
	svc := newCheckout(gw, provider, LeaveSettled)

	attempt, err := svc.Begin(context.Background(), 42)
	require.Error(t, err)
	require.Nil(t, attempt)
	require.Zero(t, provider.setupCalls)

	// The failed attempt must not leave the order id locked.
	stubIntent(gw)
	attempt, err = svc.Begin(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, CheckoutIntentCreated, attempt.State())
}

func TestCheckoutDeclineOnSetupConfirmation(t *testing.T) {
	gw := newFakeGateway()
	stubIntent(gw)
	provider := &fakeProvider{setupErr: apperr.New(apperr.KindPaymentDeclined, "card expired")}

	attempt, err := newCheckout(gw, provider, LeaveSettled).Begin(context.Background(), 42)
	require.NoError(t, err)

	err = attempt.Pay(context.Background(), testCard)
	require.Error(t, err)
	require.Equal(t, apperr.KindPaymentDeclined, apperr.KindOf(err))
	require.ErrorContains(t, err, "card expired")
	require.Equal(t, CheckoutFailed, attempt.State())
	require.Zero(t, gw.calls("POST", "/checkout"))
}

func TestCheckoutStopsBatchAtFirstFailedPayment(t *testing.T) {
	gw := newFakeGateway()
	stubIntent(gw)
	stubPayments(gw, "pi_1_secret_x", "pi_2_secret_y", "pi_3_secret_z")
	provider := &fakeProvider{confirmFailAt: 2}

	attempt, err := newCheckout(gw, provider, LeaveSettled).Begin(context.Background(), 42)
	require.NoError(t, err)

	err = attempt.Pay(context.Background(), testCard)
	require.Error(t, err)
	require.Equal(t, CheckoutFailed, attempt.State())

	// First payment confirmed and left untouched, third never attempted.
	require.Equal(t, 1, attempt.ConfirmedPayments())
	require.Equal(t, []string{"pi_1_secret_x"}, provider.confirmed)
	require.Equal(t, 2, provider.confirmedCount)
}

func TestCheckoutRefundPolicyWalksBackSettledPayments(t *testing.T) {
	gw := newFakeGateway()
	stubIntent(gw)
	stubPayments(gw, "pi_1_secret_x", "pi_2_secret_y")
	provider := &fakeRefundingProvider{fakeProvider: fakeProvider{confirmFailAt: 2}}

	attempt, err := newCheckout(gw, provider, RefundSettled).Begin(context.Background(), 42)
	require.NoError(t, err)

	require.Error(t, attempt.Pay(context.Background(), testCard))
	require.Equal(t, CheckoutFailed, attempt.State())
	require.Equal(t, []string{"pi_1_secret_x"}, provider.refunded)
}

func TestCheckoutLeaveSettledNeverRefunds(t *testing.T) {
	gw := newFakeGateway()
	stubIntent(gw)
	stubPayments(gw, "pi_1_secret_x", "pi_2_secret_y")
	provider := &fakeRefundingProvider{fakeProvider: fakeProvider{confirmFailAt: 2}}

	attempt, err := newCheckout(gw, provider, LeaveSettled).Begin(context.Background(), 42)
	require.NoError(t, err)

	require.Error(t, attempt.Pay(context.Background(), testCard))
	require.Empty(t, provider.refunded)
}

func TestCheckoutCancelNeverChargesAndIsBestEffort(t *testing.T) {
	gw := newFakeGateway()
	stubIntent(gw)
	gw.failWith("POST", "/checkout/cancel-setup-intent",
		apperr.New(apperr.KindNetworkUnavailable, "backend unreachable"))
	provider := &fakeProvider{}
	svc := newCheckout(gw, provider, LeaveSettled)

	attempt, err := svc.Begin(context.Background(), 42)
	require.NoError(t, err)

	// Backend cancellation fails, the attempt still ends Canceled.
	require.NoError(t, attempt.Cancel(context.Background()))
	require.Equal(t, CheckoutCanceled, attempt.State())
	require.Zero(t, gw.calls("POST", "/checkout"))
	require.Zero(t, provider.confirmedCount)

	// And the order id is free for a new attempt.
	_, err = svc.Begin(context.Background(), 42)
	require.NoError(t, err)
}

func TestCheckoutRejectsConcurrentAttemptForSameOrder(t *testing.T) {
	gw := newFakeGateway()
	stubIntent(gw)
	svc := newCheckout(gw, &fakeProvider{}, LeaveSettled)

	_, err := svc.Begin(context.Background(), 42)
	require.NoError(t, err)

	_, err = svc.Begin(context.Background(), 42)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// A different order is unaffected.
	_, err = svc.Begin(context.Background(), 43)
	require.NoError(t, err)
}

func TestCheckoutPayRequiresIntentCreatedState(t *testing.T) {
	gw := newFakeGateway()
	stubIntent(gw)
	stubPayments(gw, "pi_1_secret_x")

	attempt, err := newCheckout(gw, &fakeProvider{}, LeaveSettled).Begin(context.Background(), 42)
	require.NoError(t, err)
	require.NoError(t, attempt.Pay(context.Background(), testCard))

	err = attempt.Pay(context.Background(), testCard)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	err = attempt.Cancel(context.Background())
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
