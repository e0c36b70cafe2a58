package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/palette-tools-mcp/internal/config"
	"github.com/ironsheep/palette-tools-mcp/internal/logger"
)

type rootFlags struct {
	configPath string
	logLevel   string
	humanLogs  bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "palette-mcp",
		Short:         "Colour palette tools served over MCP",
		Long:          "palette-mcp derives colour schemes and picks colours from images.\nWith no subcommand it serves MCP over stdin/stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file (env "+config.EnvConfigPath+")")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.humanLogs, "human-logs", false, "Write console-formatted logs instead of JSON")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newPaletteCmd(flags))
	cmd.AddCommand(newPickCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadRuntime resolves configuration from file, environment and flags, in
// increasing order of precedence, and builds the logger.
func loadRuntime(flags *rootFlags, logOut io.Writer) (*config.Config, *logger.Logger, error) {
	path := flags.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.humanLogs {
		cfg.Log.HumanReadable = true
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Options{
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.HumanReadable,
		Writer:        logOut,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
