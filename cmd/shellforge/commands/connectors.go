package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shellforge/shellforge"
	"github.com/spf13/cobra"
)

func newConnectorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connectors",
		Short: "List supported connector types and their opening sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tOPENING (mm)")
			for _, c := range shellforge.ConnectorTypes() {
				p := c.Profile()
				if p.Round() {
					fmt.Fprintf(w, "%s\t%.1f dia\n", c, p.Diameter)
				} else {
					fmt.Fprintf(w, "%s\t%.1f x %.1f\n", c, p.Width, p.Height)
				}
			}
			return w.Flush()
		},
	}
}
