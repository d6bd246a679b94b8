package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jongio/escapehatch/cliout"
	"github.com/jongio/escapehatch/config"
	"github.com/jongio/escapehatch/escape"
	"github.com/jongio/escapehatch/logutil"
	"github.com/jongio/escapehatch/target"
	"github.com/jongio/escapehatch/uaclass"
)

// settleGrace is how long simulate waits past the plan timeout before giving
// up on the orchestrator reaching a terminal phase.
const settleGrace = 500 * time.Millisecond

type simulateResult struct {
	Target      target.Target       `json:"target"`
	Environment uaclass.Environment `json:"environment"`
	Decision    escape.Decision     `json:"decision"`
	Phase       escape.Phase        `json:"phase"`
	Reason      escape.ManualReason `json:"reason,omitempty"`
	Navigated   string              `json:"navigated,omitempty"`
	Fired       []escape.Fired      `json:"fired"`
}

// logNavigator records what a browser would have been asked to do.
type logNavigator struct {
	log       *logutil.ComponentLogger
	navigated chan string
}

func (n *logNavigator) Perform(step escape.Step) {
	n.log.Info("perform", "step", step.Name, "kind", step.Kind, "url", step.URL)
}

func (n *logNavigator) Navigate(url string) {
	n.log.Info("navigate", "url", url)
	select {
	case n.navigated <- url:
	default:
	}
}

func newSimulateCommand(opts *rootOptions) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "simulate <user-agent>",
		Short: "Run the escape sequence for a user agent and report what fired",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			res, err := simulate(cmd.Context(), cfg, strings.Join(args, " "), code)
			if err != nil {
				return err
			}
			return cliout.Print(res, func() { printSimulation(res) })
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Pass-through code appended to the destination")
	return cmd
}

func simulate(ctx context.Context, cfg *config.Config, ua, code string) (simulateResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	builder, err := target.NewBuilder(cfg.Destination.BaseURL, cfg.Destination.Param)
	if err != nil {
		return simulateResult{}, err
	}
	tgt, err := builder.Build(code)
	if err != nil {
		return simulateResult{}, err
	}

	env := uaclass.Classify(ua)
	nav := &logNavigator{log: logutil.NewLogger("simulate"), navigated: make(chan string, 1)}
	phases := make(chan escape.Phase, 8)
	orch := escape.New(escape.Options{
		Navigator:   nav,
		Timings:     cfg.Timings,
		PlanOptions: cfg.PlanOptions(),
		OnPhase: func(p escape.Phase) {
			select {
			case phases <- p:
			default:
			}
		},
	})
	defer orch.Stop()

	if err := orch.Start(env, tgt); err != nil {
		return simulateResult{}, err
	}

	wait := settleGrace
	if plan := orch.Plan(); !plan.Empty() {
		wait += plan.Timeout
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

loop:
	for !orch.Phase().IsTerminal() {
		select {
		case <-phases:
		case <-timer.C:
			break loop
		case <-ctx.Done():
			return simulateResult{}, ctx.Err()
		}
	}

	res := simulateResult{
		Target:      tgt,
		Environment: env,
		Decision:    escape.Decide(env),
		Phase:       orch.Phase(),
		Reason:      orch.ManualReason(),
		Fired:       orch.Fired(),
	}
	select {
	case res.Navigated = <-nav.navigated:
	default:
	}
	return res, nil
}

func printSimulation(res simulateResult) {
	cliout.CommandHeader("simulate")
	cliout.Label("Target", cliout.URL(res.Target.URL))
	cliout.Label("Platform", string(res.Environment.Platform))
	cliout.Label("Browser", res.Environment.Browser.DisplayName())
	cliout.Label("Decision", cliout.Status(string(res.Decision)))

	if res.Navigated != "" {
		cliout.Label("Navigated", res.Navigated)
	}
	if len(res.Fired) > 0 {
		cliout.Section("Steps")
		rows := make([]cliout.TableRow, 0, len(res.Fired))
		for _, f := range res.Fired {
			rows = append(rows, cliout.TableRow{
				"At":   fmt.Sprintf("%dms", f.Offset.Milliseconds()),
				"Step": f.Step.Name,
				"URL":  f.Step.URL,
			})
		}
		cliout.Table([]string{"At", "Step", "URL"}, rows)
	}

	cliout.Newline()
	phase := cliout.Status(string(res.Phase))
	if res.Reason != escape.ReasonNone {
		phase += cliout.Muted(" (%s)", res.Reason)
	}
	cliout.Label("Phase", phase)
}
