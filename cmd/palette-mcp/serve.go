package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-tools-mcp/internal/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}
}

func runServe(cmd *cobra.Command, flags *rootFlags) error {
	cfg, log, err := loadRuntime(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	server.Version = version
	log.WithFields(map[string]any{
		"version": version,
		"commit":  commit,
		"base":    cfg.Palette.Base,
		"scheme":  cfg.Palette.Scheme,
	}).Debug("starting server")

	srv := server.New(cfg, log)
	return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
}
