package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pet-adoption-hub/internal/app"
	"pet-adoption-hub/internal/domain/browse"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/ports/catalog"
)

func newPetsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Browse and manage pets",
	}
	cmd.AddCommand(
		newPetsListCmd(rt),
		newPetsShowCmd(rt),
		newPetsRefreshCmd(rt),
		newPetsMineCmd(rt),
		newPetsCreateCmd(rt),
		newPetsDeleteCmd(rt),
	)
	return cmd
}

func newPetsListCmd(rt *runtime) *cobra.Command {
	var (
		search      string
		mode        string
		include     []string
		exclude     []string
		showAdopted bool
		page        int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of the filtered catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p browse.Patch
			f := cmd.Flags()
			if f.Changed("search") {
				p.SearchTerm = &search
			}
			if f.Changed("mode") {
				m := browse.ViewMode(mode)
				p.ViewMode = &m
			}
			if f.Changed("include") {
				p.Included = &include
			}
			if f.Changed("exclude") {
				p.Excluded = &exclude
			}
			if f.Changed("show-adopted") {
				p.ShowAdopted = &showAdopted
			}
			if f.Changed("page") {
				p.Page = &page
			}

			res, err := rt.svc().UpdateFilters(p)
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), res, func(w io.Writer) { printPage(w, res) })
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Substring over name, species, breed and the rest of the card")
	cmd.Flags().StringVar(&mode, "mode", "", "View mode: all, include or exclude")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Species to include (mode include)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Species to exclude, aliases expanded")
	cmd.Flags().BoolVar(&showAdopted, "show-adopted", false, "Also show adopted pets")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func newPetsShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pet-id>",
		Short: "Show a pet and its adoption state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rt.svc().PetDetail(cmdContext(cmd), args[0])
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), d, func(w io.Writer) { printDetail(w, d) })
		},
	}
}

func newPetsRefreshCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Fetch the full catalog from the pet service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := rt.svc().RefreshCatalog(cmdContext(cmd))
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), map[string]int{"count": n}, func(w io.Writer) {
				fmt.Fprintf(w, "%d pets\n", n)
			})
		},
	}
}

func newPetsMineCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List the pets you published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := rt.svc().MyPets()
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), items, func(w io.Writer) { printPets(w, items) })
		},
	}
}

func newPetsCreateCmd(rt *runtime) *cobra.Command {
	var (
		in  catalog.PetInput
		age int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a pet for adoption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("age") {
				in.Age = &age
			}
			p, err := rt.svc().CreatePet(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			return rt.print(cmd.OutOrStdout(), p, func(w io.Writer) {
				fmt.Fprintf(w, "created %s (%s)\n", p.Name, p.ID)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Name")
	f.StringVar(&in.Species, "species", "", "Species")
	f.StringVar(&in.Breed, "breed", "", "Breed")
	f.IntVar(&age, "age", 0, "Age in years")
	f.StringVar(&in.Gender, "gender", "", "Gender")
	f.StringVar(&in.Size, "size", "", "Size")
	f.StringVar(&in.Color, "color", "", "Color")
	f.StringVar(&in.Description, "description", "", "Description")
	f.StringVar(&in.Location, "location", "", "Location")
	return cmd
}

func newPetsDeleteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <pet-id>",
		Short: "Delete one of your pets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.svc().DeletePet(cmdContext(cmd), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printPets(w io.Writer, items []pets.Pet) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIES\tBREED\tAGE\tSTATUS\tOWNER")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Species, p.Breed, strconv.Itoa(p.Age), p.AdoptionStatus, p.OwnerName())
	}
	_ = tw.Flush()
}

func printPage(w io.Writer, res app.BrowseResult) {
	printPets(w, res.Page.Items)
	fmt.Fprintf(w, "page %d/%d (%d pets)\n", res.Page.Page, res.Page.TotalPages, res.Page.Total)
	if len(res.Filters.Excluded) > 0 {
		fmt.Fprintf(w, "excluding: %s\n", strings.Join(res.Filters.Excluded, ", "))
	}
}

func printDetail(w io.Writer, d app.Detail) {
	tw := newTable(w)
	p := d.Pet
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Species:\t%s (%s)\n", p.Species, p.Breed)
	fmt.Fprintf(tw, "Age:\t%d\n", p.Age)
	fmt.Fprintf(tw, "Location:\t%s\n", p.Location)
	fmt.Fprintf(tw, "Owner:\t%s\n", p.OwnerName())
	fmt.Fprintf(tw, "Status:\t%s\n", p.AdoptionStatus)
	if d.AdoptedBy != "" {
		fmt.Fprintf(tw, "Adopted by:\t%s\n", d.AdoptedBy)
	}
	switch {
	case d.HasPending:
		fmt.Fprintln(tw, "Your request:\tpending")
	case d.CanAdopt:
		fmt.Fprintf(tw, "Adopt:\tpetadopt adopt %s\n", p.ID)
	}
	_ = tw.Flush()

	if d.IsOwner && len(d.Requests) > 0 {
		fmt.Fprintln(w)
		printRequests(w, d.Requests)
	}
}
