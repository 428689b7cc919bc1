package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vibecode_spa/internal/bootstrap"
)

func newRoutesCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATTERN\tNAME")
			for _, r := range bootstrap.DefaultRoutes().Routes() {
				fmt.Fprintf(tw, "%s\t%s\n", r.Pattern, r.Name)
			}
			return tw.Flush()
		},
	}
}
