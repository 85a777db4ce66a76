package dto

import "storefront-client/internal/model"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AddItemRequest struct {
	ProductID  int64            `json:"productId"`
	Quantity   int              `json:"quantity"`
	Recurrence model.Recurrence `json:"recurrence"`
}

type UpdateItemRequest struct {
	ProductID  int64            `json:"productId"`
	Quantity   int              `json:"quantity"`
	Recurrence model.Recurrence `json:"recurrence"`
}

type UpdateOrderRequest struct {
	OrderID           int64             `json:"orderId"`
	Status            model.OrderStatus `json:"status"`
	ShippingAddressID int64             `json:"shippingAddressId"`
	BillingAddressID  int64             `json:"billingAddressId"`
}

type AddressRequest struct {
	ID         int64             `json:"id,omitempty"`
	Kind       model.AddressKind `json:"kind"`
	Street     string            `json:"street"`
	Number     string            `json:"number"`
	Complement string            `json:"complement,omitempty"`
	ZipCode    string            `json:"zipCode"`
	City       string            `json:"city"`
	Region     string            `json:"region"`
	Country    string            `json:"country"`
}

type SetupIntentRequest struct {
	OrderID int64 `json:"orderId"`
}

type CancelSetupIntentRequest struct {
	IntentID string `json:"intentId"`
}

type CheckoutRequest struct {
	OrderID           int64  `json:"orderId"`
	PaymentMethodID   string `json:"paymentMethodId"`
	PaymentMethodType string `json:"paymentMethodType"`
	IdempotencyKey    string `json:"idempotencyKey"`
}

// Payment is one charge the client still has to confirm with the provider.
// An order may fan out into several, e.g. split one-time and recurring billing.
type Payment struct {
	ClientSecret string `json:"clientSecret"`
	Type         string `json:"type"`
}

type CheckoutResponse struct {
	Payments []Payment `json:"payments"`
}

type CancelSubscriptionRequest struct {
	SubscriptionID int64  `json:"subscriptionId"`
	ProviderItemID string `json:"providerItemId"`
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type UpdatePasswordRequest struct {
	PreviousPassword   string `json:"previousPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
