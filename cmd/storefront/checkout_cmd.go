package main

import (
	"fmt"
	"strconv"

	"storefront-client/internal/client"
	"storefront-client/internal/model"

	"github.com/spf13/cobra"
)

var (
	shippingAddrFlag int64
	billingAddrFlag  int64
	cardNumberFlag   string
	cardExpMonthFlag int
	cardExpYearFlag  int
	cardCVCFlag      string
	statusFlag       string
)

// checkoutCmd walks the whole payment flow for the current cart: attach
// addresses, open an attempt, confirm the card, confirm every payment.
var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Pay for the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		cart, err := a.cart.Fetch(ctx)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("cart is empty")
		}

		if err := a.addrs.AttachToOrder(ctx, cart.OrderID, shippingAddrFlag, billingAddrFlag); err != nil {
			return err
		}

		attempt, err := a.checkout.Begin(ctx, cart.OrderID)
		if err != nil {
			return err
		}

		err = attempt.Pay(ctx, client.CardDetails{
			Number:   cardNumberFlag,
			ExpMonth: cardExpMonthFlag,
			ExpYear:  cardExpYearFlag,
			CVC:      cardCVCFlag,
		})
		if err != nil {
			return fmt.Errorf("checkout ended %s after %d confirmed payment(s): %w",
				attempt.State(), attempt.ConfirmedPayments(), err)
		}

		fmt.Printf("order %d settled, %d payment(s) confirmed\n", cart.OrderID, attempt.ConfirmedPayments())
		return nil
	},
}

var subscriptionsCmd = &cobra.Command{
	Use:   "subscriptions",
	Short: "List subscriptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		subs, err := a.subs.List(cmd.Context(), model.SubscriptionStatus(statusFlag))
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			fmt.Println("no subscriptions")
			return nil
		}
		for _, sub := range subs {
			name := "unknown product"
			if len(sub.Items) > 0 {
				name = sub.Items[0].ProductName
			}
			fmt.Printf("#%d %s — %s, %s, since %s\n",
				sub.ID, name, sub.Status, sub.Recurrence, sub.CreatedAt.Format("2006-01-02"))
		}
		return nil
	},
}

var subscriptionCancelCmd = &cobra.Command{
	Use:   "cancel <subscription-id>",
	Short: "Cancel a subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad subscription id %q", args[0])
		}

		subs, err := a.subs.List(ctx, "")
		if err != nil {
			return err
		}
		for i := range subs {
			if subs[i].ID == id {
				if err := a.subs.Cancel(ctx, &subs[i]); err != nil {
					return err
				}
				fmt.Println("subscription canceled")
				return nil
			}
		}
		return fmt.Errorf("no subscription %d", id)
	},
}

func init() {
	checkoutCmd.Flags().Int64Var(&shippingAddrFlag, "shipping-address", 0, "shipping address id")
	checkoutCmd.Flags().Int64Var(&billingAddrFlag, "billing-address", 0, "billing address id")
	checkoutCmd.Flags().StringVar(&cardNumberFlag, "card-number", "", "card number")
	checkoutCmd.Flags().IntVar(&cardExpMonthFlag, "card-exp-month", 0, "card expiry month")
	checkoutCmd.Flags().IntVar(&cardExpYearFlag, "card-exp-year", 0, "card expiry year")
	checkoutCmd.Flags().StringVar(&cardCVCFlag, "card-cvc", "", "card verification code")

	subscriptionsCmd.Flags().StringVar(&statusFlag, "status", "", "filter by status, e.g. active")
	subscriptionsCmd.AddCommand(subscriptionCancelCmd)
}
