package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-betriebsanweisung/config"
	"github.com/goliatone/go-betriebsanweisung/internal/app"
	"github.com/goliatone/go-betriebsanweisung/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "betriebsanweisung",
		Short: "Generate Betriebsanweisung PDFs",
		Long: `Generate German safety instructions (Betriebsanweisungen) as PDF.

Records are rendered from JSON, YAML or TOML files, from the built-in
category examples, through an interactive terminal form, or through the
web form and JSON API started by "serve".

Configuration is read from an optional TOML file, a .env file and
BETRIEBSANWEISUNG_* environment variables.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a TOML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format (text or json)")

	cmd.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newRenderBatchCmd(opts),
		newCategoriesCmd(),
		newFormCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig reads the configuration and builds the logger for cmd.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, *logging.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, nil, err
	}
	level := cfg.App.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	return cfg, logging.New(cmd.ErrOrStderr(), level, o.logFormat), nil
}

// openApp loads the configuration, applies mutate and builds the app.
func (o *rootOptions) openApp(cmd *cobra.Command, mutate func(*config.Config)) (*app.App, error) {
	cfg, logger, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return app.New(cmd.Context(), cfg, logger)
}
