package service

import (
	"context"
	"fmt"
	"sync"

	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CheckoutState names every stop of the checkout flow so each suspension
// point and failure branch is enumerable, instead of hiding in a chain of
// callbacks.
type CheckoutState string

const (
	CheckoutIdle            CheckoutState = "idle"
	CheckoutIntentCreated   CheckoutState = "intent_created"
	CheckoutMethodConfirmed CheckoutState = "method_confirmed"
	CheckoutOrderCharging   CheckoutState = "order_charging"
	CheckoutPaying          CheckoutState = "paying"
	CheckoutSettled         CheckoutState = "settled"
	CheckoutFailed          CheckoutState = "failed"
	CheckoutCanceled        CheckoutState = "canceled"
)

// PartialFailurePolicy decides what happens to payments already confirmed
// when a later one in the same batch fails.
type PartialFailurePolicy int

const (
	// LeaveSettled keeps earlier confirmed payments untouched and lets the
	// backend reconcile them later.
	LeaveSettled PartialFailurePolicy = iota

	// RefundSettled asks the provider to walk back earlier confirmed
	// payments, best effort, when the provider supports refunds.
	RefundSettled
)

type CheckoutService interface {
	// Begin requests a setup intent for the order and opens an attempt.
	// At most one attempt may be in flight per order id; a second Begin
	// for the same order fails with a conflict.
	Begin(ctx context.Context, orderID int64) (*CheckoutAttempt, error)
}

type checkoutServiceImpl struct {
	gateway  client.Gateway
	provider client.PaymentProvider
	policy   PartialFailurePolicy
	log      zerolog.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewCheckoutService(gateway client.Gateway, provider client.PaymentProvider, policy PartialFailurePolicy, log zerolog.Logger) CheckoutService {
	return &checkoutServiceImpl{
		gateway:  gateway,
		provider: provider,
		policy:   policy,
		log:      log,
		inFlight: make(map[int64]struct{}),
	}
}

func (s *checkoutServiceImpl) Begin(ctx context.Context, orderID int64) (*CheckoutAttempt, error) {
	if err := s.acquire(orderID); err != nil {
		return nil, err
	}

	var intent model.SetupIntent
	err := s.gateway.Post(ctx, "/checkout/setup-intent", dto.SetupIntentRequest{OrderID: orderID}, &intent)
	if err != nil {
		// Terminal for this attempt: back to idle, nothing to undo, the
		// provider was never contacted.
		s.release(orderID)
		return nil, fmt.Errorf("create setup intent for order %d: %w", orderID, err)
	}

	return &CheckoutAttempt{
		svc:            s,
		orderID:        orderID,
		intent:         intent,
		state:          CheckoutIntentCreated,
		idempotencyKey: uuid.NewString(),
	}, nil
}

func (s *checkoutServiceImpl) acquire(orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[orderID]; busy {
		return apperr.New(apperr.KindConflict,
			fmt.Sprintf("checkout already in flight for order %d", orderID))
	}
	s.inFlight[orderID] = struct{}{}
	return nil
}

func (s *checkoutServiceImpl) release(orderID int64) {
	s.mu.Lock()
	delete(s.inFlight, orderID)
	s.mu.Unlock()
}

// CheckoutAttempt is one pass through the state machine. Its methods are
// meant to be driven by a single caller; transitions from anything but the
// expected state fail with a conflict.
type CheckoutAttempt struct {
	svc            *checkoutServiceImpl
	orderID        int64
	intent         model.SetupIntent
	idempotencyKey string

	mu        sync.Mutex
	state     CheckoutState
	confirmed int
}

func (a *CheckoutAttempt) State() CheckoutState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// ConfirmedPayments reports how many payments of the current batch were
// confirmed with the provider, settled or not.
func (a *CheckoutAttempt) ConfirmedPayments() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.confirmed
}

func (a *CheckoutAttempt) SetupIntent() model.SetupIntent {
	return a.intent
}

// Pay drives the attempt from IntentCreated to Settled: confirm the setup
// intent with the captured card, submit the order for charging, then confirm
// every returned payment in order. The first failure stops the sequence; a
// payment is never attempted after an earlier one failed.
func (a *CheckoutAttempt) Pay(ctx context.Context, card client.CardDetails) error {
	if err := a.transition(CheckoutIntentCreated, CheckoutIntentCreated); err != nil {
		return err
	}

	setup, err := a.svc.provider.ConfirmSetupIntent(ctx, a.intent.ClientSecret, card)
	if err != nil {
		a.fail()
		return fmt.Errorf("confirm setup intent: %w", err)
	}
	a.setState(CheckoutMethodConfirmed)

	var batch dto.CheckoutResponse
	err = a.svc.gateway.Post(ctx, "/checkout", dto.CheckoutRequest{
		OrderID:           a.orderID,
		PaymentMethodID:   setup.PaymentMethodID,
		PaymentMethodType: setup.PaymentMethodType,
		IdempotencyKey:    a.idempotencyKey,
	}, &batch)
	if err != nil {
		a.fail()
		return fmt.Errorf("submit order %d for charge: %w", a.orderID, err)
	}
	a.setState(CheckoutOrderCharging)

	for i, payment := range batch.Payments {
		a.setState(CheckoutPaying)

		if err := a.svc.provider.ConfirmPayment(ctx, payment.ClientSecret, setup.PaymentMethodID); err != nil {
			a.svc.log.Warn().
				Int64("order_id", a.orderID).
				Int("payment_index", i).
				Int("confirmed", a.ConfirmedPayments()).
				Msg("payment confirmation failed, stopping batch")

			a.compensate(ctx, batch.Payments[:i])
			a.fail()
			return fmt.Errorf("confirm payment %d of %d: %w", i+1, len(batch.Payments), err)
		}

		a.mu.Lock()
		a.confirmed++
		a.mu.Unlock()
	}

	a.setState(CheckoutSettled)
	a.svc.release(a.orderID)
	return nil
}

// Cancel abandons the attempt before the payment method was confirmed. The
// backend cancellation of the setup intent is best effort: its failure is
// logged, never surfaced, and the attempt still ends Canceled.
func (a *CheckoutAttempt) Cancel(ctx context.Context) error {
	if err := a.transition(CheckoutIntentCreated, CheckoutCanceled); err != nil {
		return err
	}
	defer a.svc.release(a.orderID)

	err := a.svc.gateway.Post(ctx, "/checkout/cancel-setup-intent",
		dto.CancelSetupIntentRequest{IntentID: a.intent.IntentID}, nil)
	if err != nil {
		a.svc.log.Warn().
			Int64("order_id", a.orderID).
			Str("intent_id", a.intent.IntentID).
			Err(err).
			Msg("setup intent cancellation failed")
	}

	return nil
}

// compensate walks back already-confirmed payments when the policy asks for
// it and the provider can. Failures are logged; by this point the attempt is
// failing anyway.
func (a *CheckoutAttempt) compensate(ctx context.Context, settled []dto.Payment) {
	if a.svc.policy != RefundSettled || len(settled) == 0 {
		return
	}

	refunder, ok := a.svc.provider.(client.Refunder)
	if !ok {
		a.svc.log.Warn().
			Int64("order_id", a.orderID).
			Msg("refund policy set but provider cannot refund")
		return
	}

	for i, payment := range settled {
		if err := refunder.RefundPayment(ctx, payment.ClientSecret); err != nil {
			a.svc.log.Warn().
				Int64("order_id", a.orderID).
				Int("payment_index", i).
				Err(err).
				Msg("refund of settled payment failed")
		}
	}
}

func (a *CheckoutAttempt) transition(from, to CheckoutState) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != from {
		return apperr.New(apperr.KindConflict,
			fmt.Sprintf("checkout attempt is %s, expected %s", a.state, from))
	}
	a.state = to
	return nil
}

func (a *CheckoutAttempt) setState(state CheckoutState) {
	a.mu.Lock()
	a.state = state
	a.mu.Unlock()
}

func (a *CheckoutAttempt) fail() {
	a.setState(CheckoutFailed)
	a.svc.release(a.orderID)
}
