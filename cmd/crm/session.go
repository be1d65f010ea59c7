package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/auth"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/toast"
	"github.com/Lavescar-dev/salesforce-crm-demo/pkg/types"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as one of the demo users",
	Long: `Sign in as one of the demo users. The session is persisted in the
store and survives restarts until logout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		notices := newNotices(cmd, a)
		defer notices.Clear()

		session := auth.New(cmd.Context(), a.kv, auth.WithBroker(a.reg.Broker()))
		res, err := session.Login(cmd.Context(), types.LoginCredentials{Email: email, Password: password})
		if err != nil {
			return err
		}
		if !res.Success {
			notices.Error(res.Reason)
			return fmt.Errorf("login failed: %s", res.Reason)
		}
		notices.Success(fmt.Sprintf("Welcome back, %s", res.User.FirstName))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		notices := newNotices(cmd, a)
		defer notices.Clear()

		session := auth.New(cmd.Context(), a.kv,
			auth.WithBroker(a.reg.Broker()),
			auth.WithNavigator(func(path string) {
				fmt.Fprintf(cmd.OutOrStdout(), "→ %s\n", path)
			}),
		)
		if !session.IsAuthenticated() {
			notices.Info("Not signed in")
			return nil
		}
		if err := session.Logout(cmd.Context()); err != nil {
			return err
		}
		notices.Success("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		session := auth.New(cmd.Context(), a.kv)
		user, ok := session.User()
		if !ok {
			return fmt.Errorf("not signed in")
		}
		return printJSON(cmd.OutOrStdout(), user)
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Account email (required)")
	loginCmd.Flags().String("password", "", "Account password (required)")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	loginCmd.Long += "\n\nDemo users:"
	for _, u := range auth.MockUsers {
		loginCmd.Long += fmt.Sprintf("\n  %s / %s (%s)", u.Email, u.Password, u.Role)
	}
}

// newNotices returns a toast queue that prints each shown message once
func newNotices(cmd *cobra.Command, a *app) *toast.Queue {
	q := toast.New(toast.WithBroker(a.reg.Broker()))
	seen := make(map[string]bool)
	q.Subscribe(func(msgs []toast.Message) {
		for _, m := range msgs {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", noticeMark(m.Kind), m.Text)
		}
	})
	return q
}

func noticeMark(k toast.Kind) string {
	switch k {
	case toast.KindSuccess:
		return "✓"
	case toast.KindError:
		return "✗"
	case toast.KindWarning:
		return "⚠"
	default:
		return "•"
	}
}
