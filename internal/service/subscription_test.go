package service

import (
	"context"
	"testing"

	"storefront-client/internal/apperr"
	"storefront-client/internal/dto"
	"storefront-client/internal/model"

	"github.com/stretchr/testify/require"
)

func TestSubscriptionListNotFoundMeansEmpty(t *testing.T) {
	gw := newFakeGateway()
	gw.failWith("GET", "/subscriptions?status=active",
		apperr.New(apperr.KindNotFound, "no subscriptions"))
	svc := NewSubscriptionService(gw)

	subs, err := svc.List(context.Background(), model.SubscriptionActive)
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestSubscriptionListPassesStatusFilter(t *testing.T) {
	gw := newFakeGateway()
	gw.reply("GET", "/subscriptions?status=past_due", []model.Subscription{
		{ID: 5, Status: model.SubscriptionPastDue, Recurrence: model.RecurrenceMonthly},
	})
	svc := NewSubscriptionService(gw)

	subs, err := svc.List(context.Background(), model.SubscriptionPastDue)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, model.SubscriptionPastDue, subs[0].Status)
}

func TestSubscriptionCancelRequiresItems(t *testing.T) {
	gw := newFakeGateway()
	svc := NewSubscriptionService(gw)

	err := svc.Cancel(context.Background(), &model.Subscription{ID: 5})
	require.Equal(t, apperr.KindPreconditionFailed, apperr.KindOf(err))
	require.Empty(t, gw.requests)
}

func TestSubscriptionCancelUsesProviderItemID(t *testing.T) {
	gw := newFakeGateway()
	gw.reply("POST", "/subscriptions/cancel", struct{}{})
	svc := NewSubscriptionService(gw)

	err := svc.Cancel(context.Background(), &model.Subscription{
		ID: 5,
		Items: []model.SubscriptionItem{
			{ID: 1, ProviderItemID: "si_abc"},
			{ID: 2, ProviderItemID: "si_def"},
		},
	})
	require.NoError(t, err)

	require.Len(t, gw.requests, 1)
	req := gw.requests[0].Body.(dto.CancelSubscriptionRequest)
	require.EqualValues(t, 5, req.SubscriptionID)
	require.Equal(t, "si_abc", req.ProviderItemID)
}
