package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newThemeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := rt.svc()
			if len(args) == 1 {
				if args[0] == "toggle" {
					svc.ToggleTheme()
				} else if _, err := svc.SetTheme(args[0]); err != nil {
					return fmt.Errorf("theme %q: %w", args[0], err)
				}
			}

			prefs := svc.Preferences()
			return rt.print(cmd.OutOrStdout(), prefs, func(w io.Writer) {
				fmt.Fprintln(w, prefs.Theme)
			})
		},
	}
}
