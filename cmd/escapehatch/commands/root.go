package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jongio/escapehatch/cliout"
	"github.com/jongio/escapehatch/config"
	"github.com/jongio/escapehatch/logutil"
	"github.com/jongio/escapehatch/version"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	debug      bool
	logFormat  string
	output     string
}

// Execute runs the root command with os.Args.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if err != nil && !cliout.IsJSON() {
		cliout.Error("%v", err)
	}
	return err
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "escapehatch",
		Short:         "Smart redirect page that escapes in-app browsers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cliout.SetFormat(opts.output); err != nil {
				return err
			}
			logutil.SetupLogger(opts.debug || os.Getenv(logutil.EnvDebug) == "true", opts.logFormat == "json")
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file, YAML or TOML (default "+config.DefaultFileName+")")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format (text, json); overrides log.format")
	pf.StringVarP(&opts.output, "output", "o", "default", "Output format (default, json)")
	config.RegisterFlags(pf)

	root.AddCommand(
		newServeCommand(opts),
		newClassifyCommand(),
		newSimulateCommand(opts),
		newLinkCommand(opts),
		newInitCommand(),
		version.NewCommand(version.New("escapehatch")),
	)
	return root
}

// loadConfig resolves the configuration for cmd (file, then environment,
// then flags) and applies its log settings. Explicit --debug and
// --log-format win over the file.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.DefaultFileName
	} else if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(path, os.LookupEnv, cmd.Flags())
	if err != nil {
		return nil, err
	}

	format := cfg.Log.Format
	if o.logFormat != "" {
		format = o.logFormat
	}
	logutil.Configure(cfg.Log.Level, format)
	if o.debug || os.Getenv(logutil.EnvDebug) == "true" {
		logutil.SetLevel(logutil.LevelDebug)
	}

	logutil.Debug("configuration resolved", "path", path, "destination", cfg.Destination.BaseURL)
	return cfg, nil
}
