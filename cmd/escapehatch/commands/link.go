package commands

import (
	"context"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/escapehatch/cliout"
	"github.com/jongio/escapehatch/clipboard"
	"github.com/jongio/escapehatch/config"
	"github.com/jongio/escapehatch/escape"
	"github.com/jongio/escapehatch/pathutil"
	"github.com/jongio/escapehatch/target"
)

type linkResult struct {
	target.Target
	IntentURL   string `json:"intentUrl"`
	ShortcutURL string `json:"shortcutUrl"`
	Copied      *bool  `json:"copied,omitempty"`
}

func newLinkCommand(opts *rootOptions) *cobra.Command {
	var (
		code string
		copyURL bool
	)
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print the destination URL and its escape variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			res, err := buildLink(cfg, code)
			if err != nil {
				return err
			}
			if copyURL {
				copier := &clipboard.Copier{
					Primary:     clipboard.NewOSC52Writer(),
					Fallback:    clipboard.NewCommandWriter(),
					AckDuration: cfg.Timings.CopiedAck,
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()
				copied := copier.Copy(ctx, res.URL)
				res.Copied = &copied
			}
			return cliout.Print(res, func() { printLink(res) })
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Pass-through code appended to the destination")
	cmd.Flags().BoolVar(&copyURL, "copy", false, "Copy the destination URL to the clipboard")
	return cmd
}

func buildLink(cfg *config.Config, code string) (linkResult, error) {
	builder, err := target.NewBuilder(cfg.Destination.BaseURL, cfg.Destination.Param)
	if err != nil {
		return linkResult{}, err
	}
	tgt, err := builder.Build(code)
	if err != nil {
		return linkResult{}, err
	}
	planOpts := cfg.PlanOptions()
	return linkResult{
		Target:      tgt,
		IntentURL:   escape.IntentURL(tgt, planOpts.AndroidPackage),
		ShortcutURL: escape.ShortcutURL(tgt, planOpts.ShortcutName),
	}, nil
}

func printLink(res linkResult) {
	cliout.CommandHeader("link")
	cliout.Label("URL", cliout.URL(res.URL))
	cliout.Label("Android intent", res.IntentURL)
	cliout.Label("iOS shortcut", res.ShortcutURL)
	if res.Copied == nil {
		return
	}
	if *res.Copied {
		cliout.Success("Copied!")
	} else {
		cliout.Warning("Could not copy to the clipboard")
		for _, c := range clipboard.DefaultCommands(runtime.GOOS) {
			cliout.Hint(pathutil.InstallSuggestion(c.Name))
		}
		cliout.Hint("Or run in a terminal that supports OSC 52")
	}
}
