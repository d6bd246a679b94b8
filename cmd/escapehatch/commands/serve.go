package commands

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jongio/escapehatch/cliout"
	"github.com/jongio/escapehatch/config"
	"github.com/jongio/escapehatch/launcher"
	"github.com/jongio/escapehatch/page"
	"github.com/jongio/escapehatch/probe"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var open string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the redirect page server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !launcher.IsValid(open) {
				return fmt.Errorf("invalid --open value %q (valid: %s)", open, launcher.FormatValidTargets())
			}
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, launcher.Target(open))
		},
	}
	cmd.Flags().StringVar(&open, "open", string(launcher.TargetNone), "Open the page in a browser once listening ("+launcher.FormatValidTargets()+")")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, open launcher.Target) error {
	var prober *probe.Prober
	if cfg.Probe.Interval > 0 {
		prober = probe.New(probe.Config{
			URL:             cfg.Destination.BaseURL,
			Interval:        cfg.Probe.Interval,
			Timeout:         cfg.Probe.Timeout,
			BreakerFailures: cfg.Probe.BreakerFailures,
			BreakerTimeout:  cfg.Probe.BreakerTimeout,
			EnableMetrics:   cfg.Metrics.Enabled,
		})
	}

	srv, err := page.New(cfg, prober)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Listen, err)
	}

	pageURL := localURL(ln.Addr())
	cliout.CommandHeader("serve")
	cliout.Label("Page", cliout.URL(pageURL))
	cliout.Label("Destination", cfg.Destination.BaseURL)

	if err := launcher.Launch(launcher.LaunchOptions{URL: pageURL, Target: open}); err != nil {
		cliout.Warning("Could not open browser: %v", err)
	}

	return srv.Serve(ctx, ln)
}

// localURL turns a listener address into a URL a local browser can open.
func localURL(addr net.Addr) string {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return "http://" + addr.String() + "/"
	}
	host := tcp.IP.String()
	if tcp.IP == nil || tcp.IP.IsUnspecified() || tcp.IP.IsLoopback() {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s/", net.JoinHostPort(host, fmt.Sprint(tcp.Port)))
}
