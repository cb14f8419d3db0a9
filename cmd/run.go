package cmd

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vulnissimo/vulnissimo/internal/console"
	"github.com/vulnissimo/vulnissimo/internal/output"
	"github.com/vulnissimo/vulnissimo/internal/poller"
	"github.com/vulnissimo/vulnissimo/internal/slack"
	"github.com/vulnissimo/vulnissimo/internal/target"
	"github.com/vulnissimo/vulnissimo/internal/types"
)

// scanner starts scans and reads their results
type scanner interface {
	poller.Fetcher
	CreateScan(ctx context.Context, target string) (*types.ScanCreated, error)
}

// notifier delivers scan completion messages
type notifier interface {
	Send(ctx context.Context, msg slack.Message) error
}

// runOptions holds the collaborators of runScan that have defaults
type runOptions struct {
	interval time.Duration
	notifier notifier
}

// runCmd starts a scan, follows it to completion and renders the result
var runCmd = &cobra.Command{
	Use:   "run <target>",
	Short: "run a scan on a target and wait for the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := target.Parse(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		c := newConsole(cmd)

		out, err := setupOutputter(cfg, c)
		if err != nil {
			return err
		}

		client, err := setupClient(cfg)
		if err != nil {
			return err
		}

		opts := runOptions{interval: cfg.Poll.Interval}
		if n := setupNotifier(cfg); n != nil {
			opts.notifier = n
		}

		_, err = runScan(cmd.Context(), client, c, out, info, opts)

		return err
	},
}

// init registers the run command and its flags on the root command
func init() {
	rootCmd.AddCommand(runCmd)
	addOutputFlags(runCmd)
}

// runScan creates a scan on tgt, polls it until it finishes, renders the final
// snapshot and sends the optional completion notification
func runScan(ctx context.Context, api scanner, c *console.Console, out *output.Outputter, tgt *target.Info, opts runOptions) (*types.ScanResult, error) {
	log.Debug().Str("host", tgt.Host).Str("domain", tgt.Domain).Bool("ip", tgt.IsIP).Msg("starting scan")

	created, err := api.CreateScan(ctx, tgt.Target)
	if err != nil {
		return nil, err
	}

	c.Notef("Scan started on %s.", tgt.Target)
	c.Notef("See live updates at %s.", created.HTMLResult)

	p, err := poller.New(api,
		poller.WithInterval(opts.interval),
		poller.WithProgressDisplay(c.NewProgress("Scanning...")),
		poller.WithRedirectHandler(func(result *types.ScanResult) {
			c.Infof("Target redirected. Now scanning %s.", result.ScanInfo.EffectiveTarget())
		}),
	)
	if err != nil {
		return nil, err
	}

	result, err := p.Poll(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	c.Notef("Scan finished.")

	if err := out.Render(result); err != nil {
		return nil, err
	}

	notify(ctx, opts.notifier, result, created.HTMLResult)

	return result, nil
}

// notify sends the completion summary, logging failures instead of returning them
func notify(ctx context.Context, n notifier, result *types.ScanResult, liveURL string) {
	if n == nil {
		return
	}

	msg, err := slack.ScanSummary(result, liveURL)
	if err != nil {
		log.Warn().Err(err).Msg("building scan notification")
		return
	}

	if err := n.Send(ctx, msg); err != nil {
		log.Warn().Err(err).Str("scan_id", result.ID.String()).Msg("sending scan notification")
	}
}
