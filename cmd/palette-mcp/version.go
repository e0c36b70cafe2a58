package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set by ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "palette-mcp %s\n  Build time: %s\n  Git commit: %s\n", version, date, commit)
			return nil
		},
	}
}
