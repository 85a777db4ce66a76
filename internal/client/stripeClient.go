package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront-client/internal/apperr"
	"storefront-client/internal/config"
)

// --- INTERFACE ---

type CardDetails struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

type SetupConfirmation struct {
	PaymentMethodID   string
	PaymentMethodType string
}

type PaymentProvider interface {
	// ConfirmSetupIntent submits card data against a setup intent's client
	// secret, validating the payment method and returning its provider id.
	ConfirmSetupIntent(ctx context.Context, clientSecret string, card CardDetails) (*SetupConfirmation, error)

	// ConfirmPayment confirms one payment intent with a previously
	// validated payment method.
	ConfirmPayment(ctx context.Context, clientSecret, paymentMethodID string) error
}

// Refunder is optionally implemented by providers that can walk back a
// confirmed payment. The publishable-key REST client cannot; a backend-
// mediated provider can.
type Refunder interface {
	RefundPayment(ctx context.Context, clientSecret string) error
}

// --- IMPLEMENTATION ---

type stripeClientImpl struct {
	httpClient     *http.Client
	baseApiURL     string
	publishableKey string
}

func NewStripeClient(cfg *config.Stripe) PaymentProvider {
	return &stripeClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:     cfg.BaseApiURL,
		publishableKey: cfg.PublishableKey,
	}
}

// --- METHODS ---

func (c *stripeClientImpl) ConfirmSetupIntent(ctx context.Context, clientSecret string, card CardDetails) (*SetupConfirmation, error) {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("key", c.publishableKey)
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", strconv.Itoa(card.ExpMonth))
	form.Set("payment_method_data[card][exp_year]", strconv.Itoa(card.ExpYear))
	form.Set("payment_method_data[card][cvc]", card.CVC)

	var result struct {
		ID                 string   `json:"id"`
		Status             string   `json:"status"`
		PaymentMethod      string   `json:"payment_method"`
		PaymentMethodTypes []string `json:"payment_method_types"`
	}
	if err := c.post(ctx, "/v1/setup_intents/"+intentID+"/confirm", form, &result); err != nil {
		return nil, err
	}

	if result.Status != "succeeded" || result.PaymentMethod == "" {
		return nil, apperr.New(apperr.KindPaymentDeclined,
			fmt.Sprintf("setup intent not confirmed, status %q", result.Status))
	}

	methodType := "card"
	if len(result.PaymentMethodTypes) > 0 {
		methodType = result.PaymentMethodTypes[0]
	}

	return &SetupConfirmation{
		PaymentMethodID:   result.PaymentMethod,
		PaymentMethodType: methodType,
	}, nil
}

func (c *stripeClientImpl) ConfirmPayment(ctx context.Context, clientSecret, paymentMethodID string) error {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("key", c.publishableKey)
	form.Set("client_secret", clientSecret)
	form.Set("payment_method", paymentMethodID)

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.post(ctx, "/v1/payment_intents/"+intentID+"/confirm", form, &result); err != nil {
		return err
	}

	// requires_capture counts as confirmed, the backend captures later.
	if result.Status != "succeeded" && result.Status != "requires_capture" && result.Status != "processing" {
		return apperr.New(apperr.KindPaymentDeclined,
			fmt.Sprintf("payment not confirmed, status %q", result.Status))
	}

	return nil
}

func (c *stripeClientImpl) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return apperr.Wrap(apperr.KindNetworkUnavailable, "payment provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeProviderError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}

// decodeProviderError surfaces the provider's reason verbatim; the flow
// never retries a decline on its own.
func decodeProviderError(resp *http.Response) error {
	var payload struct {
		Error struct {
			Message     string `json:"message"`
			Code        string `json:"code"`
			DeclineCode string `json:"decline_code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error.Message == "" {
		return apperr.New(apperr.KindPaymentDeclined,
			fmt.Sprintf("provider error %d", resp.StatusCode))
	}
	return apperr.New(apperr.KindPaymentDeclined, payload.Error.Message)
}

func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", apperr.New(apperr.KindValidationFailed, "malformed client secret")
	}
	return id, nil
}
