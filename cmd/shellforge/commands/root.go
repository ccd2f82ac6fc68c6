package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the root command.
func Execute(version, commit, buildDate string) error {
	return newRootCommand(version, commit, buildDate).Execute()
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shellforge",
		Short: "ShellForge - parametric enclosure generator",
		Long: `ShellForge turns a declarative description of electronic components,
connector cutouts and style parameters into printable enclosure parts.

A request file lists components with their dimensions and placement,
the connectors that need wall openings, and the enclosure style. The
generator sizes the cavity, builds the base and lid (plus optional
tray and bracket) and writes STL or 3MF meshes.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newConnectorsCommand())

	return rootCmd
}
