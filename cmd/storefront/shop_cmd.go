package main

import (
	"fmt"
	"strconv"

	"storefront-client/internal/model"
	"storefront-client/internal/service"

	"github.com/spf13/cobra"
)

var (
	quantityFlag   int
	recurrenceFlag string

	addrKindFlag       string
	addrStreetFlag     string
	addrNumberFlag     string
	addrComplementFlag string
	addrZipFlag        string
	addrCityFlag       string
	addrRegionFlag     string
	addrCountryFlag    string
)

var productsCmd = &cobra.Command{
	Use:   "products [id]",
	Short: "List products or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("bad product id %q", args[0])
			}
			product, err := a.catalog.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("#%d %s — %s (%s)\n", product.ID, product.Name, product.Description, minor(product.Price))
			return nil
		}

		products, err := a.catalog.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("#%d %s (%s)\n", p.ID, p.Name, minor(p.Price))
		}
		return nil
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return printCart(cmd, a)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad product id %q", args[0])
		}

		if _, err := a.cart.Add(cmd.Context(), id, quantityFlag, model.Recurrence(recurrenceFlag)); err != nil {
			return err
		}
		return printCart(cmd, a)
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id>",
	Short: "Set quantity and recurrence for a cart line (0 removes it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad product id %q", args[0])
		}

		// The service needs the current cart to resolve product -> item.
		if _, err := a.cart.Fetch(cmd.Context()); err != nil {
			return err
		}

		if _, err := a.cart.SetQuantity(cmd.Context(), id, quantityFlag, model.Recurrence(recurrenceFlag)); err != nil {
			return err
		}
		return printCart(cmd, a)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove an item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad item id %q", args[0])
		}

		if _, err := a.cart.Remove(cmd.Context(), id); err != nil {
			return err
		}
		return printCart(cmd, a)
	},
}

var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "List addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		addrs, err := a.addrs.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(addrs) == 0 {
			fmt.Println("no addresses yet")
			return nil
		}
		for _, addr := range addrs {
			fmt.Printf("#%d [%s] %s %s, %s %s, %s\n",
				addr.ID, addr.Kind, addr.Number, addr.Street, addr.ZipCode, addr.City, addr.Country)
		}
		return nil
	},
}

var addressAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an address",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		err = a.addrs.Add(cmd.Context(), service.AddressForm{
			Kind:       model.AddressKind(addrKindFlag),
			Street:     addrStreetFlag,
			Number:     addrNumberFlag,
			Complement: addrComplementFlag,
			ZipCode:    addrZipFlag,
			City:       addrCityFlag,
			Region:     addrRegionFlag,
			Country:    addrCountryFlag,
		})
		if err != nil {
			return err
		}
		fmt.Println("address added")
		return nil
	},
}

var addressDeleteCmd = &cobra.Command{
	Use:   "delete <address-id>",
	Short: "Delete an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad address id %q", args[0])
		}

		if err := a.addrs.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("address deleted")
		return nil
	},
}

func printCart(cmd *cobra.Command, a *app) error {
	cart, err := a.cart.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	if len(cart.Items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, item := range cart.Items {
		fmt.Printf("#%d %s x%d (%s, %s each)\n",
			item.ID, item.Name, item.Quantity, item.Recurrence, minor(item.UnitPrice))
	}
	fmt.Printf("order %d, total %s\n", cart.OrderID, a.cart.TotalDisplay(2))
	return nil
}

func minor(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}

func init() {
	cartAddCmd.Flags().IntVar(&quantityFlag, "quantity", 1, "quantity")
	cartAddCmd.Flags().StringVar(&recurrenceFlag, "recurrence", "monthly", "monthly or yearly")
	cartSetCmd.Flags().IntVar(&quantityFlag, "quantity", 1, "quantity, 0 removes the item")
	cartSetCmd.Flags().StringVar(&recurrenceFlag, "recurrence", "monthly", "monthly or yearly")

	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartRemoveCmd)

	addressAddCmd.Flags().StringVar(&addrKindFlag, "kind", "shipping", "billing or shipping")
	addressAddCmd.Flags().StringVar(&addrStreetFlag, "street", "", "street name")
	addressAddCmd.Flags().StringVar(&addrNumberFlag, "number", "", "street number")
	addressAddCmd.Flags().StringVar(&addrComplementFlag, "complement", "", "address complement")
	addressAddCmd.Flags().StringVar(&addrZipFlag, "zip", "", "zip code")
	addressAddCmd.Flags().StringVar(&addrCityFlag, "city", "", "city")
	addressAddCmd.Flags().StringVar(&addrRegionFlag, "region", "", "region")
	addressAddCmd.Flags().StringVar(&addrCountryFlag, "country", "", "country")

	addressesCmd.AddCommand(addressAddCmd)
	addressesCmd.AddCommand(addressDeleteCmd)
}
