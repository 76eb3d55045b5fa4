package vbz_poller

import (
	"context"
	"time"

	"github.com/F3NN3X/vbz-departures-service/dlog"
	"github.com/F3NN3X/vbz-departures-service/model"
)

// State is the poller lifecycle state. Transitions are serialized by the
// poller mutex so concurrent Start/Stop callers cannot race.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Start launches the polling loop. The first poll fires immediately, then
// one per interval. Starting an already-running poller is a logged no-op
// returning false. The loop exits when ctx is cancelled or Stop is called.
func (p *VbzPoller) Start(ctx context.Context) bool {
	logger := dlog.OrNop(p.Logger)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateIdle {
		logger.Warnf("poller is already %s; start ignored", p.state)
		return false
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.state = StateRunning

	go p.run(runCtx)

	logger.Infof("polling stop %s every %s", p.StopPointRef, p.interval())
	return true
}

// Stop cancels the polling loop and blocks until its cleanup has run.
// Stopping an idle poller is a no-op.
func (p *VbzPoller) Stop() {
	logger := dlog.OrNop(p.Logger)

	p.mu.Lock()
	if p.state == StateIdle {
		p.mu.Unlock()
		logger.Debugf("poller is idle; stop ignored")
		return
	}
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}

// State returns the current lifecycle state.
func (p *VbzPoller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// run is the single cooperative poll loop: one fetch-parse-enrich cycle
// completes before the next wait is entered, so at most one poll is in
// flight per instance. The ticker measures tick start to tick start; a
// fetch slower than the interval therefore produces back-to-back ticks.
// Known overlap risk, accepted.
func (p *VbzPoller) run(ctx context.Context) {
	defer p.finish()

	p.publish(p.tick(ctx))

	ticker := time.NewTicker(p.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publish(p.tick(ctx))
		}
	}
}

// finish is the stop-cleanup. It runs exactly once per Start, whether the
// loop exited through Stop or through external cancellation, and disposes
// the shared HTTP transport.
func (p *VbzPoller) finish() {
	logger := dlog.OrNop(p.Logger)

	p.mu.Lock()
	p.state = StateStopping
	p.cancel()
	p.Client.Close()
	done := p.done
	p.done = nil
	p.cancel = nil
	p.state = StateIdle
	p.mu.Unlock()

	close(done)
	logger.Infof("poller stopped")
}

// publish hands the snapshot to the subscriber, shielding the loop from
// subscriber panics.
func (p *VbzPoller) publish(snapshot model.Snapshot) {
	if p.Subscriber == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			dlog.OrNop(p.Logger).Errorf("subscriber panicked: %v", r)
		}
	}()

	p.Subscriber(snapshot)
}

func (p *VbzPoller) interval() time.Duration {
	if p.Interval > 0 {
		return p.Interval
	}
	return DefaultInterval
}
