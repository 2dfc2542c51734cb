package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/ports/auth"
)

func newRegisterCmd(rt *runtime) *cobra.Command {
	var in auth.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the pet service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rt.svc().Register(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), p, func(w io.Writer) {
				fmt.Fprintf(w, "registered %s <%s>\n", p.Name, p.Email)
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Profile name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (8+ characters)")
	cmd.Flags().StringVar(&in.Bio, "bio", "", "Optional bio")
	return cmd
}

func newLoginCmd(rt *runtime) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session in local storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := rt.svc().Login(cmdContext(cmd), email, password)
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), id, func(w io.Writer) {
				fmt.Fprintf(w, "logged in as %s\n", id.Name)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.svc().Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newWhoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := rt.svc().Me()
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), id, func(w io.Writer) {
				fmt.Fprintf(w, "%s <%s>\n", id.Name, id.Email)
			})
		},
	}
}
