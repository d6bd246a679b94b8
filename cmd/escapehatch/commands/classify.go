package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jongio/escapehatch/cliout"
	"github.com/jongio/escapehatch/escape"
	"github.com/jongio/escapehatch/uaclass"
)

type classifyResult struct {
	Environment uaclass.Environment `json:"environment"`
	Decision    escape.Decision     `json:"decision"`
	Manual      *escape.Manual      `json:"manual,omitempty"`
}

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <user-agent>",
		Short: "Classify a user-agent string and show the redirect decision",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ua := strings.Join(args, " ")
			res := classify(ua)
			return cliout.Print(res, func() { printClassification(res) })
		},
	}
}

func classify(ua string) classifyResult {
	env := uaclass.Classify(ua)
	res := classifyResult{Environment: env, Decision: escape.Decide(env)}
	if res.Decision == escape.DecisionEscape {
		m := escape.Instructions(env)
		res.Manual = &m
	}
	return res
}

func printClassification(res classifyResult) {
	env := res.Environment
	cliout.CommandHeader("classify")
	cliout.Label("Platform", string(env.Platform))
	cliout.Label("Browser", env.Browser.DisplayName())
	if env.Product != env.Browser {
		cliout.Label("Product", env.Product.DisplayName())
	}
	if env.Host != uaclass.HostNone {
		cliout.Label("Host", env.AppName())
	}
	cliout.Label("In-app", fmt.Sprint(env.InApp))
	cliout.Label("Default browser", fmt.Sprint(env.DefaultBrowser))
	cliout.Label("Non-default", fmt.Sprint(env.NonDefault))
	cliout.Label("Decision", cliout.Status(string(res.Decision)))

	if res.Manual == nil {
		return
	}
	cliout.Section("Manual instructions")
	cliout.Plain("%s", res.Manual.Title)
	cliout.Plain("%s", cliout.Muted("%s", res.Manual.Subtitle))
	for i, step := range res.Manual.Steps {
		cliout.Item("%d. %s", i+1, step)
	}
}
