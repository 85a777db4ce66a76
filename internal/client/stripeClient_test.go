package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-client/internal/apperr"
	"storefront-client/internal/config"

	"github.com/stretchr/testify/require"
)

func newTestStripe(baseURL string) PaymentProvider {
	return NewStripeClient(&config.Stripe{BaseApiURL: baseURL, PublishableKey: "pk_test_123"})
}

func TestStripeConfirmSetupIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/setup_intents/seti_1/confirm", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "pk_test_123", r.Form.Get("key"))
		require.Equal(t, "seti_1_secret_abc", r.Form.Get("client_secret"))
		require.Equal(t, "card", r.Form.Get("payment_method_data[type]"))
		require.Equal(t, "4242424242424242", r.Form.Get("payment_method_data[card][number]"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":                   "seti_1",
			"status":               "succeeded",
			"payment_method":       "pm_123",
			"payment_method_types": []string{"card"},
		})
	}))
	defer srv.Close()

	setup, err := newTestStripe(srv.URL).ConfirmSetupIntent(context.Background(), "seti_1_secret_abc",
		CardDetails{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVC: "123"})
	require.NoError(t, err)
	require.Equal(t, "pm_123", setup.PaymentMethodID)
	require.Equal(t, "card", setup.PaymentMethodType)
}

func TestStripeDeclineSurfacesProviderMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message":      "Your card has insufficient funds.",
				"code":         "card_declined",
				"decline_code": "insufficient_funds",
			},
		})
	}))
	defer srv.Close()

	err := newTestStripe(srv.URL).ConfirmPayment(context.Background(), "pi_1_secret_x", "pm_123")
	require.Equal(t, apperr.KindPaymentDeclined, apperr.KindOf(err))
	require.ErrorContains(t, err, "Your card has insufficient funds.")
}

func TestStripeConfirmPaymentAcceptsRequiresCapture(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/pi_1/confirm", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"id": "pi_1", "status": "requires_capture"})
	}))
	defer srv.Close()

	err := newTestStripe(srv.URL).ConfirmPayment(context.Background(), "pi_1_secret_x", "pm_123")
	require.NoError(t, err)
}

func TestStripeMalformedClientSecret(t *testing.T) {
	_, err := newTestStripe("http://unused").ConfirmSetupIntent(context.Background(), "garbage",
		CardDetails{Number: "4242424242424242"})
	require.Equal(t, apperr.KindValidationFailed, apperr.KindOf(err))
}

func TestStripeUnreachableProvider(t *testing.T) {
	err := newTestStripe("http://127.0.0.1:1").ConfirmPayment(context.Background(), "pi_1_secret_x", "pm_123")
	require.Equal(t, apperr.KindNetworkUnavailable, apperr.KindOf(err))
}
