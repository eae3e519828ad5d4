package servo

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// StateSink receives polled states.
type StateSink interface {
	PublishState(context.Context, State) error
}

// PublishStateFunc is func form of StateSink.
type PublishStateFunc func(context.Context, State) error

// PublishState implements StateSink.
func (f PublishStateFunc) PublishState(ctx context.Context, st State) error {
	return f(ctx, st)
}

// DefaultPollInterval is used when Poller.Interval is not set.
const DefaultPollInterval = 200 * time.Millisecond

// Poller reads the state periodically and publishes it to sinks.
// Failed reads are published too, with State.Err set.
type Poller struct {
	Servo    *Servo
	Interval time.Duration
	Sinks    []StateSink
}

// Name implements framework.Named.
func (p *Poller) Name() string {
	return "poller"
}

// Run implements framework.Runnable.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var failing bool
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		st := p.Servo.State()
		if st.Err != nil && !failing {
			glog.Errorf("poll failed: %v", st.Err)
		} else if st.Err == nil && failing {
			glog.Info("poll recovered")
		}
		failing = st.Err != nil
		for _, sink := range p.Sinks {
			if err := sink.PublishState(ctx, st); err != nil {
				glog.Warningf("publish state: %v", err)
			}
		}
	}
}
