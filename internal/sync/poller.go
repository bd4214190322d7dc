// Package sync drives the foreground auto-refresh of status data. The
// poller owns one cooperative loop at a time; results cross into the
// Bubble Tea runtime as messages over a non-blocking channel.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clanwatch/clanwatch/internal/model"
)

// StatusMsg is a tea.Msg delivered for every completed refresh cycle.
// Err carries the repository fault when the refresh failed.
type StatusMsg struct {
	Status *model.Status
	Err    error
}

// StatusFetcher is the single repository operation the poller invokes.
type StatusFetcher interface {
	Status(ctx context.Context) (*model.Status, error)
}

// fetchTimeout bounds one refresh call; the loop itself is unbounded.
const fetchTimeout = 30 * time.Second

// Poller repeatedly refreshes status at a fixed interval for as long
// as it has not been stopped. Start is idempotent in effect: it cancels
// any running loop before launching a new one, so two loops never run
// concurrently.
type Poller struct {
	fetcher  StatusFetcher
	interval time.Duration
	msgCh    chan tea.Msg

	mu     gosync.Mutex
	cancel context.CancelFunc
}

// New creates a Poller over the given fetcher. A non-positive interval
// falls back to one minute.
func New(fetcher StatusFetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		msgCh:    make(chan tea.Msg, 16),
	}
}

// Start cancels any existing loop, then launches a new one that
// performs an immediate refresh and repeats at the configured interval.
// The returned command subscribes to refresh results.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.mu.Unlock()

	go p.loop(ctx)

	return p.waitForMsg()
}

// Stop cancels the running loop, if any. The last-delivered state is
// left untouched. Safe to call repeatedly.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Running reports whether a loop is currently active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// WaitForNextMsg returns a command that waits for the next refresh
// result. Call it after processing a StatusMsg to keep listening.
func (p *Poller) WaitForNextMsg() tea.Cmd {
	return p.waitForMsg()
}

// loop runs refresh cycles until ctx is cancelled. Cancellation takes
// effect at the next suspension point: before a wait ends or before the
// next refresh begins.
func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			p.refresh(ctx)
		}
	}
}

// refresh performs one status fetch and publishes the result.
func (p *Poller) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	status, err := p.fetcher.Status(fetchCtx)
	if ctx.Err() != nil {
		// Stopped mid-flight; drop the result.
		return
	}
	p.send(StatusMsg{Status: status, Err: err})
}

// send publishes a message without blocking the loop.
func (p *Poller) send(msg tea.Msg) {
	select {
	case p.msgCh <- msg:
	default:
		// Drop if the channel is full; the next cycle supersedes it anyway.
	}
}

func (p *Poller) waitForMsg() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-p.msgCh
		if !ok {
			return nil
		}
		return msg
	}
}
