package main

import (
	"fmt"

	"storefront-client/internal/service"

	"github.com/spf13/cobra"
)

var (
	emailFlag     string
	passwordFlag  string
	firstNameFlag string
	lastNameFlag  string
	confirmFlag   string
	previousFlag  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.auth.Login(cmd.Context(), emailFlag, passwordFlag); err != nil {
			return err
		}
		fmt.Println("logged in")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		err = a.auth.Register(cmd.Context(), service.RegisterForm{
			FirstName:       firstNameFlag,
			LastName:        lastNameFlag,
			Email:           emailFlag,
			Password:        passwordFlag,
			ConfirmPassword: confirmFlag,
		})
		if err != nil {
			return err
		}
		fmt.Println("registered and logged in")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.auth.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		user, err := a.auth.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Update profile or password",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update name and email",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.users.Update(cmd.Context(), firstNameFlag, lastNameFlag, emailFlag); err != nil {
			return err
		}
		fmt.Println("profile updated")
		return nil
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.users.UpdatePassword(cmd.Context(), previousFlag, passwordFlag, confirmFlag); err != nil {
			return err
		}
		fmt.Println("password updated")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&emailFlag, "email", "", "account email")
	loginCmd.Flags().StringVar(&passwordFlag, "password", "", "account password")

	registerCmd.Flags().StringVar(&firstNameFlag, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&lastNameFlag, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&emailFlag, "email", "", "account email")
	registerCmd.Flags().StringVar(&passwordFlag, "password", "", "account password")
	registerCmd.Flags().StringVar(&confirmFlag, "confirm-password", "", "password confirmation")

	profileUpdateCmd.Flags().StringVar(&firstNameFlag, "first-name", "", "first name")
	profileUpdateCmd.Flags().StringVar(&lastNameFlag, "last-name", "", "last name")
	profileUpdateCmd.Flags().StringVar(&emailFlag, "email", "", "account email")

	profilePasswordCmd.Flags().StringVar(&previousFlag, "previous", "", "current password")
	profilePasswordCmd.Flags().StringVar(&passwordFlag, "password", "", "new password")
	profilePasswordCmd.Flags().StringVar(&confirmFlag, "confirm-password", "", "new password confirmation")

	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePasswordCmd)
}
