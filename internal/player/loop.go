package player

import (
	"context"
	"time"
)

// Loop runs a ManualScheduler against the wall clock on a single goroutine.
// Commands sent through Do run on that same goroutine, so a Player driven
// by a Loop never sees concurrent calls.
type Loop struct {
	sched *ManualScheduler
	cmds  chan func()
}

func NewLoop() *Loop {
	return &Loop{sched: NewManualScheduler(), cmds: make(chan func())}
}

func (l *Loop) Scheduler() Scheduler { return l.sched }

// Run blocks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	last := time.Now()
	for {
		var wake <-chan time.Time
		if d, ok := l.sched.Next(); ok {
			timer.Reset(d)
			wake = timer.C
		}

		var cmd func()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd = <-l.cmds:
		case <-wake:
		}
		timer.Stop()

		now := time.Now()
		l.sched.Advance(now.Sub(last))
		last = now
		if cmd != nil {
			cmd()
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case l.cmds <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
