package handler

import (
	"net/http"
	"strings"

	"storefront-client/internal/dto"
	"storefront-client/internal/middleware"
	"storefront-client/internal/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CheckoutHandler fakes the payment-side endpoints: it issues setup intents
// with stub client secrets and fans an order out into one payment per
// recurrence present in the cart, like the real backend does.
type CheckoutHandler struct {
	store *Store
}

func NewCheckoutHandler(store *Store) *CheckoutHandler {
	return &CheckoutHandler{
		store: store,
	}
}

func (h *CheckoutHandler) CreateSetupIntent(c echo.Context) error {
	var req dto.SetupIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	cart := h.store.cartFor(middleware.UserID(c))
	if cart.OrderID != req.OrderID {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "order not found"})
	}
	if len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "cart is empty"})
	}

	intentID := newProviderID("seti")
	record := &intentRecord{
		Intent: model.SetupIntent{
			IntentID:     intentID,
			ClientSecret: intentID + "_secret_" + uuid.NewString(),
		},
		OrderID: req.OrderID,
	}
	h.store.intents[intentID] = record

	return c.JSON(http.StatusOK, record.Intent)
}

func (h *CheckoutHandler) CancelSetupIntent(c echo.Context) error {
	var req dto.CancelSetupIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	record, ok := h.store.intents[req.IntentID]
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "setup intent not found"})
	}

	record.Canceled = true
	return c.NoContent(http.StatusNoContent)
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}
	if req.PaymentMethodID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "payment method is required"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	userID := middleware.UserID(c)
	cart := h.store.cartFor(userID)
	if cart.OrderID != req.OrderID {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "order not found"})
	}
	if cart.Status != model.OrderAddressed {
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Message: "order has no addresses yet"})
	}

	// One payment per billing cadence in the cart.
	var payments []dto.Payment
	for _, recurrence := range []model.Recurrence{model.RecurrenceMonthly, model.RecurrenceYearly} {
		for _, item := range cart.Items {
			if item.Recurrence == recurrence {
				payments = append(payments, dto.Payment{
					ClientSecret: newProviderID("pi") + "_secret_" + uuid.NewString(),
					Type:         string(recurrence),
				})
				break
			}
		}
	}

	// The stub cannot see provider confirmations, so it settles eagerly.
	h.store.settle(userID)

	return c.JSON(http.StatusOK, dto.CheckoutResponse{Payments: payments})
}

func (h *CheckoutHandler) ListSubscriptions(c echo.Context) error {
	status := c.QueryParam("status")

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	var out []model.Subscription
	for _, sub := range h.store.subs[middleware.UserID(c)] {
		if status == "" || string(sub.Status) == status {
			out = append(out, sub)
		}
	}

	if len(out) == 0 {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "no subscriptions"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) CancelSubscription(c echo.Context) error {
	var req dto.CancelSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed body"})
	}

	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	subs := h.store.subs[middleware.UserID(c)]
	for i, sub := range subs {
		if sub.ID == req.SubscriptionID {
			subs[i].Status = model.SubscriptionCanceled
			return c.NoContent(http.StatusNoContent)
		}
	}
	return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "subscription not found"})
}

func newProviderID(prefix string) string {
	return prefix + "_stub_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
