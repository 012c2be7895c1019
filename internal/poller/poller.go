package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Resyncer re-applies roles for every linked account in a Discord guild
type Resyncer interface {
	Resync(ctx context.Context, guildID string) error
}

// Poller periodically resyncs guild roles for linked accounts
type Poller struct {
	resyncer Resyncer
	guildID  string
	interval time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new Poller
func New(resyncer Resyncer, guildID string, interval time.Duration) *Poller {
	return &Poller{
		resyncer: resyncer,
		guildID:  guildID,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the polling loop in the background. It runs until ctx is
// cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.wg.Add(1)
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	slog.Info("Starting role resync poller", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Poller stopped (context cancelled)")
			return
		case <-p.stopChan:
			slog.Info("Poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// Stop signals the poller to stop and waits for the current pass to finish
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopChan) })
	p.wg.Wait()
}

func (p *Poller) poll(ctx context.Context) {
	start := time.Now()
	if err := p.resyncer.Resync(ctx, p.guildID); err != nil {
		slog.Error("Role resync failed", "error", err)
		return
	}
	slog.Debug("Role resync finished", "took", time.Since(start))
}
