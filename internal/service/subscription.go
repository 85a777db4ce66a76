package service

import (
	"context"
	"fmt"
	"net/url"

	"storefront-client/internal/apperr"
	"storefront-client/internal/client"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"
)

type SubscriptionService interface {
	// List returns the user's subscriptions, optionally filtered by status.
	// A backend 404 means no subscriptions yet and yields an empty list.
	List(ctx context.Context, status model.SubscriptionStatus) ([]model.Subscription, error)

	Cancel(ctx context.Context, sub *model.Subscription) error
}

type subscriptionServiceImpl struct {
	gateway client.Gateway
}

func NewSubscriptionService(gateway client.Gateway) SubscriptionService {
	return &subscriptionServiceImpl{
		gateway: gateway,
	}
}

func (s *subscriptionServiceImpl) List(ctx context.Context, status model.SubscriptionStatus) ([]model.Subscription, error) {
	path := "/subscriptions"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}

	var subs []model.Subscription
	err := s.gateway.Get(ctx, path, &subs)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return []model.Subscription{}, nil
		}
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *subscriptionServiceImpl) Cancel(ctx context.Context, sub *model.Subscription) error {
	// Cancellation goes through the provider-side item id. A subscription
	// without items is malformed backend state; refuse instead of panicking.
	if sub == nil || len(sub.Items) == 0 {
		return apperr.New(apperr.KindPreconditionFailed, "subscription has no items to cancel")
	}

	err := s.gateway.Post(ctx, "/subscriptions/cancel", dto.CancelSubscriptionRequest{
		SubscriptionID: sub.ID,
		ProviderItemID: sub.Items[0].ProviderItemID,
	}, nil)
	if err != nil {
		return fmt.Errorf("cancel subscription %d: %w", sub.ID, err)
	}
	return nil
}
