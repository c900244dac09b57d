package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tracks.ghoststops.org/internal/appconf"
	"tracks.ghoststops.org/internal/logging"
)

// cli carries the state shared by every subcommand.
type cli struct {
	configPath string
	envName    string
	logLevel   string
	logFormat  string

	cfg    appconf.Config
	logger *slog.Logger
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "tracks",
		Short:         "Build and inspect the CTA rail track-segment map",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", appconf.DefaultConfigPath, "YAML configuration file")
	flags.StringVar(&c.envName, "env", "", "Environment (development|test|production)")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	flags.StringVar(&c.logFormat, "log-format", "", "Log format (text|json)")

	root.AddCommand(
		newSegmentsCmd(c),
		newFeedInfoCmd(c),
		newSyncRidershipCmd(c),
		newInspectCmd(c),
		newServeCmd(c),
	)

	return root
}

// setup loads configuration, applies persistent flags and the environment,
// and installs the logger in the command context.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := appconf.Load(c.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	applyString(flags, "env", c.envName, &cfg.EnvName)
	applyString(flags, "log-level", c.logLevel, &cfg.LogLevel)
	applyString(flags, "log-format", c.logFormat, &cfg.LogFormat)
	cfg.Env = appconf.EnvFlagToEnvironment(cfg.EnvName)
	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logging.NewLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.SlogLevel())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, c.logger))
	return nil
}

func applyString(flags *pflag.FlagSet, name, value string, dst *string) {
	if flags.Changed(name) {
		*dst = value
	}
}

func applyInt(flags *pflag.FlagSet, name string, value int, dst *int) {
	if flags.Changed(name) {
		*dst = value
	}
}

func applyFloat(flags *pflag.FlagSet, name string, value float64, dst *float64) {
	if flags.Changed(name) {
		*dst = value
	}
}
