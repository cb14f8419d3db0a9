// Package poller drives a running scan to completion
package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/vulnissimo/vulnissimo/internal/types"
)

const (
	// DefaultInterval is the wait between two fetches of a running scan
	DefaultInterval = 2 * time.Second

	minProgress = 0
	maxProgress = 100
)

// State is the phase of a poll
type State int

const (
	// StateStarting is the state before the first fetch
	StateStarting State = iota
	// StatePolling is the state while the scan has not finished
	StatePolling
	// StateFinished is the terminal state
	StateFinished
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StatePolling:
		return "polling"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Fetcher retrieves the current snapshot of a scan
type Fetcher interface {
	FetchScanResult(ctx context.Context, id uuid.UUID) (*types.ScanResult, error)
}

// ProgressDisplay shows the completion percentage of the scan
type ProgressDisplay interface {
	Set(percent int) error
	Finish() error
}

// RedirectHandler is called once for each distinct redirect target discovered during a poll
type RedirectHandler func(result *types.ScanResult)

// Poller fetches a scan until it finishes
type Poller struct {
	fetcher    Fetcher
	display    ProgressDisplay
	onRedirect RedirectHandler
	interval   time.Duration
	state      State
}

// Option configures the Poller
type Option func(*Poller)

// WithInterval overrides the wait between fetches
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval >= 0 {
			p.interval = interval
		}
	}
}

// WithProgressDisplay sets where progress is shown
func WithProgressDisplay(display ProgressDisplay) Option {
	return func(p *Poller) {
		if display != nil {
			p.display = display
		}
	}
}

// WithRedirectHandler sets the callback announcing a newly discovered redirect target
func WithRedirectHandler(handler RedirectHandler) Option {
	return func(p *Poller) {
		if handler != nil {
			p.onRedirect = handler
		}
	}
}

// New creates a Poller reading snapshots from fetcher
func New(fetcher Fetcher, opts ...Option) (*Poller, error) {
	if fetcher == nil {
		return nil, ErrMissingFetcher
	}

	p := &Poller{
		fetcher:    fetcher,
		display:    noopDisplay{},
		onRedirect: func(*types.ScanResult) {},
		interval:   DefaultInterval,
		state:      StateStarting,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// State returns the current phase of the poll
func (p *Poller) State() State {
	return p.state
}

// Poll fetches the scan identified by id until its status is finished and
// returns that final snapshot. The displayed progress never decreases. A fetch
// failure or a cancelled context ends the poll with the error.
func (p *Poller) Poll(ctx context.Context, id uuid.UUID) (*types.ScanResult, error) {
	p.transition(id, StatePolling)

	var (
		previous  *types.ScanResult
		displayed = minProgress
		announced = make(map[string]struct{})
	)

	for {
		current, err := p.fetcher.FetchScanResult(ctx, id)
		if err != nil {
			return nil, err
		}

		if redirect := current.ScanInfo.Redirect(); redirect != "" {
			if _, seen := announced[redirect]; !seen {
				announced[redirect] = struct{}{}

				log.Debug().Str("scan_id", id.String()).Str("redirect_target", redirect).Msg("scan target redirected")

				p.onRedirect(current)
			}
		}

		reported := lo.Clamp(current.ScanInfo.Progress, minProgress, maxProgress)
		if reported < displayed {
			log.Debug().Str("scan_id", id.String()).Int("reported", reported).Int("displayed", displayed).Msg("ignoring progress regression")
		}

		displayed = max(displayed, reported)

		if err := p.display.Set(displayed); err != nil {
			log.Debug().Err(err).Msg("updating progress display")
		}

		if previous != nil && previous.ScanInfo.Status != current.ScanInfo.Status {
			log.Debug().Str("scan_id", id.String()).Str("from", string(previous.ScanInfo.Status)).Str("to", string(current.ScanInfo.Status)).Msg("scan status changed")
		}

		if current.IsFinished() {
			if err := p.display.Finish(); err != nil {
				log.Debug().Err(err).Msg("finishing progress display")
			}

			p.transition(id, StateFinished)

			return current, nil
		}

		previous = current

		if err := wait(ctx, p.interval); err != nil {
			return nil, err
		}
	}
}

// transition moves the poll to state
func (p *Poller) transition(id uuid.UUID, state State) {
	log.Debug().Str("scan_id", id.String()).Stringer("from", p.state).Stringer("to", state).Msg("poller state change")

	p.state = state
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// noopDisplay discards progress updates
type noopDisplay struct{}

func (noopDisplay) Set(int) error { return nil }

func (noopDisplay) Finish() error { return nil }
