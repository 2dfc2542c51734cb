package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/domain/adoptions"
)

func newAdoptCmd(rt *runtime) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "adopt <pet-id>",
		Short: "Send an adoption request for a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rt.svc().RequestAdoption(cmdContext(cmd), args[0], message)
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), req, func(w io.Writer) {
				fmt.Fprintf(w, "request sent to %s for %s\n", req.OwnerName, req.PetID)
			})
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Message for the owner")
	return cmd
}

func newRequestsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Adoption requests you received or sent",
	}

	list := func(use, short string, fn func(*app.Service) ([]adoptions.Request, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := fn(rt.svc())
				if err != nil {
					return err
				}
				return rt.print(cmd.OutOrStdout(), items, func(w io.Writer) { printRequests(w, items) })
			},
		}
	}

	decide := func(use, short string, status adoptions.Status) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <pet-id> <requester>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := rt.svc().DecideRequest(cmdContext(cmd), args[0], args[1], status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", args[0], args[1], status)
				return nil
			},
		}
	}

	cmd.AddCommand(
		list("received", "Requests for your pets", (*app.Service).ReceivedRequests),
		list("sent", "Requests you sent", (*app.Service).SentRequests),
		&cobra.Command{
			Use:   "pet <pet-id>",
			Short: "Requests for one of your pets",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := rt.svc().PetRequests(args[0])
				if err != nil {
					return err
				}
				return rt.print(cmd.OutOrStdout(), items, func(w io.Writer) { printRequests(w, items) })
			},
		},
		decide("approve", "Approve a pending request; the pet becomes Adopted", adoptions.StatusApproved),
		decide("decline", "Decline a pending request", adoptions.StatusDeclined),
		newSeenCmd(rt),
	)
	return cmd
}

func newSeenCmd(rt *runtime) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "seen",
		Short: "Mark requests as seen (clears alerts)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := adoptions.ParseRole(role)
			if !ok {
				return fmt.Errorf("invalid role %q: use owner or requester", role)
			}
			n, err := rt.svc().MarkSeen(r)
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), map[string]int{"updated": n}, func(w io.Writer) {
				fmt.Fprintf(w, "%d marked as seen\n", n)
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", string(adoptions.RoleOwner), "owner or requester")
	return cmd
}

func newAlertsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Count unseen adoption activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := rt.svc().AlertCount()
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), map[string]int{"count": n}, func(w io.Writer) {
				fmt.Fprintln(w, n)
			})
		},
	}
}

func printRequests(w io.Writer, items []adoptions.Request) {
	tw := newTable(w)
	fmt.Fprintln(tw, "PET\tREQUESTER\tOWNER\tSTATUS\tDATE\tMESSAGE")
	for _, r := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.PetID, r.RequesterName, r.OwnerName, r.Status, r.Date.Format("2006-01-02 15:04"), r.Message)
	}
	_ = tw.Flush()
}
