// Package cli is the rummikub command line: set checks, rearrangement runs and
// seeded self-play, all against the same engine the server module uses.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rummikub/internal/app"
	"rummikub/internal/config"
	"rummikub/internal/logger"
	"rummikub/internal/render"
)

type rootOptions struct {
	debug      bool
	jsonLogs   bool
	configPath string
	plain      bool
}

func (o *rootOptions) logger(cmd *cobra.Command) zerolog.Logger {
	return logger.New(logger.Config{Debug: o.debug, JSON: o.jsonLogs, Out: cmd.ErrOrStderr()})
}

func (o *rootOptions) rules() (app.Rules, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return app.Rules{}, err
	}
	return app.RulesFromConfig(*cfg)
}

func (o *rootOptions) theme() render.Theme {
	if o.plain {
		return render.PlainTheme()
	}
	return render.DefaultTheme()
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "rummikub",
		Short:        "Rummikub rules engine: validate sets, rearrange tables, simulate games",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "write logs as JSON lines")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "game config file (yaml or json)")
	cmd.PersistentFlags().BoolVar(&opts.plain, "plain", false, "disable colors")

	cmd.AddCommand(
		validateCmd(opts),
		meldCmd(opts),
		rearrangeCmd(opts),
		scenariosCmd(opts),
		simulateCmd(opts),
	)
	return cmd
}
