package model

import "time"

// Credential is the access/refresh token pair issued by the backend.
// Both fields are present or the credential does not exist at all.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

type Recurrence string

const (
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"` // minor currency units
	Slides      []string `json:"slides"`
}

type CartItem struct {
	ID         int64      `json:"id"`
	ProductID  int64      `json:"productId"`
	Name       string     `json:"name"`
	UnitPrice  int64      `json:"unitPrice"` // minor currency units
	Quantity   int        `json:"quantity"`
	Recurrence Recurrence `json:"recurrence"`
}

// Cart is the draft order acting as the user's cart on the backend.
type Cart struct {
	OrderID int64      `json:"orderId"`
	Items   []CartItem `json:"items"`
}

type AddressKind string

const (
	AddressBilling  AddressKind = "billing"
	AddressShipping AddressKind = "shipping"
)

type Address struct {
	ID         int64       `json:"id"`
	Kind       AddressKind `json:"kind"`
	Street     string      `json:"street"`
	Number     string      `json:"number"`
	Complement string      `json:"complement,omitempty"`
	ZipCode    string      `json:"zipCode"`
	City       string      `json:"city"`
	Region     string      `json:"region"`
	Country    string      `json:"country"`
}

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderAddressed OrderStatus = "addressed"
	OrderPaid      OrderStatus = "paid"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderAbandoned OrderStatus = "abandoned"
)

// SetupIntent is the provider-issued object for validating a payment method.
// It lives for one checkout attempt and is cancelable until confirmed.
type SetupIntent struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

type SubscriptionStatus string

const (
	SubscriptionActive            SubscriptionStatus = "active"
	SubscriptionCanceled          SubscriptionStatus = "canceled"
	SubscriptionIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionPastDue           SubscriptionStatus = "past_due"
	SubscriptionPaused            SubscriptionStatus = "paused"
	SubscriptionTrialing          SubscriptionStatus = "trialing"
	SubscriptionUnpaid            SubscriptionStatus = "unpaid"
)

type SubscriptionItem struct {
	ID             int64  `json:"id"`
	ProviderItemID string `json:"providerItemId"`
	ProductName    string `json:"productName"`
}

type Subscription struct {
	ID             int64              `json:"id"`
	Status         SubscriptionStatus `json:"status"`
	Recurrence     Recurrence         `json:"recurrence"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastInvoiceURL string             `json:"lastInvoiceUrl,omitempty"`
	Items          []SubscriptionItem `json:"items"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
