// Package cli implements the oscroute command tree.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chabad360/oscaddress/internal/config"
	"github.com/chabad360/oscaddress/internal/logging"
)

// RootOptions holds global flags and the state they produce.
type RootOptions struct {
	ConfigPath string
	LogLevel   string

	Config *config.Config
	Logger *zap.Logger
}

// NewRootCommand creates the root command for the oscroute CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "oscroute",
		Short: "oscroute - typed OSC address routing",
		Long: `Send and receive OSC messages routed through a typed message tree.

Addresses such as /renderer/42/say are decoded into typed messages; anything
that does not fit the tree is rejected with the segment that failed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Logger != nil {
				_ = opts.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ./oscroute.yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override log.level (debug|info|warn|error)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSendCommand(opts))
	cmd.AddCommand(NewTimeTagCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

func (o *RootOptions) setup() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	o.Config = cfg

	logger, err := logging.SetupLogger(cfg.Log)
	if err != nil {
		return err
	}
	o.Logger = logger
	return nil
}
