package handler

import (
	"sync"
	"time"

	"storefront-client/internal/model"
)

// Store is the in-memory state of the stub backend. Good enough for local
// runs of the client against realistic responses; nothing survives restart.
type Store struct {
	mu sync.Mutex

	nextID   int64
	users    map[int64]*userRecord
	byEmail  map[string]int64
	products []model.Product
	carts    map[int64]*cartState
	addrs    map[int64][]model.Address
	subs     map[int64][]model.Subscription
	intents  map[string]*intentRecord
}

type userRecord struct {
	model.User
	Password string
}

type cartState struct {
	OrderID           int64
	Status            model.OrderStatus
	Items             []model.CartItem
	ShippingAddressID int64
	BillingAddressID  int64
}

type intentRecord struct {
	Intent   model.SetupIntent
	OrderID  int64
	Canceled bool
}

func NewStore() *Store {
	return &Store{
		nextID:  1000,
		users:   make(map[int64]*userRecord),
		byEmail: make(map[string]int64),
		carts:   make(map[int64]*cartState),
		addrs:   make(map[int64][]model.Address),
		subs:    make(map[int64][]model.Subscription),
		intents: make(map[string]*intentRecord),
		products: []model.Product{
			{ID: 1, Name: "Starter Box", Description: "Monthly starter bundle", Price: 1000, Slides: []string{"https://img.example/starter.png"}},
			{ID: 2, Name: "Family Box", Description: "Bigger bundle for households", Price: 2500, Slides: []string{"https://img.example/family.png"}},
			{ID: 3, Name: "Premium Box", Description: "Everything, every month", Price: 4900, Slides: []string{"https://img.example/premium.png"}},
		},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) cartFor(userID int64) *cartState {
	cart, ok := s.carts[userID]
	if !ok {
		cart = &cartState{OrderID: s.id(), Status: model.OrderDraft}
		s.carts[userID] = cart
	}
	return cart
}

func (s *Store) productByID(id int64) (model.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// settle converts a paid cart into subscriptions and resets the cart,
// mimicking what the real backend does after all payments confirm.
func (s *Store) settle(userID int64) {
	cart := s.cartFor(userID)
	for _, item := range cart.Items {
		s.subs[userID] = append(s.subs[userID], model.Subscription{
			ID:         s.id(),
			Status:     model.SubscriptionActive,
			Recurrence: item.Recurrence,
			CreatedAt:  time.Now(),
			Items: []model.SubscriptionItem{
				{ID: s.id(), ProviderItemID: newProviderID("si"), ProductName: item.Name},
			},
		})
	}
	cart.Status = model.OrderPaid
	delete(s.carts, userID)
}
