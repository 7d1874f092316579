package player

import (
	"github.com/san-kum/algoviz/internal/trace"
)

// Frame is what a Player shows. Index is -1 when the display is cleared.
type Frame struct {
	Index    int
	Snapshot trace.Snapshot
	Status   Status
}

type Option func(*Player)

func WithSpeed(speed int) Option {
	return func(p *Player) { p.m.Speed = ClampSpeed(speed) }
}

func WithTiming(t Timing) Option {
	return func(p *Player) {
		if t.Validate() == nil {
			p.m.Timing = t
		}
	}
}

// WithObserver registers a callback for every displayed or cleared frame.
func WithObserver(fn func(Frame)) Option {
	return func(p *Player) { p.observe = fn }
}

// Player drives a Machine over a history. It holds at most one pending
// task and cancels it whenever a transition invalidates it. A Player is
// not safe for concurrent use; drive it from one goroutine, as Loop does.
type Player struct {
	history *trace.History
	m       Machine
	sched   Scheduler
	task    Task
	observe func(Frame)
}

func New(h *trace.History, sched Scheduler, opts ...Option) *Player {
	p := &Player{
		history: h,
		m:       NewMachine(h.Len(), DefaultSpeed, DefaultTiming),
		sched:   sched,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Player) Machine() Machine        { return p.m }
func (p *Player) Status() Status          { return p.m.Status }
func (p *Player) History() *trace.History { return p.history }

// Current returns the displayed snapshot; ok is false before the first display.
func (p *Player) Current() (trace.Snapshot, bool) {
	if p.m.Current < 0 || p.m.Current >= p.history.Len() {
		return trace.Snapshot{}, false
	}
	return p.history.Snapshots[p.m.Current], true
}

func (p *Player) Run()               { p.apply(p.m.Run()) }
func (p *Player) Pause()             { p.apply(p.m.Pause()) }
func (p *Player) Resume()            { p.apply(p.m.Resume()) }
func (p *Player) Step()              { p.apply(p.m.Step()) }
func (p *Player) Seek(i int)         { p.apply(p.m.Seek(i)) }
func (p *Player) Reset()             { p.apply(p.m.Reset()) }
func (p *Player) SetSpeed(speed int) { p.apply(p.m.SetSpeed(speed)) }

// Load swaps in a new history and returns to Idle.
func (p *Player) Load(h *trace.History) {
	p.history = h
	p.apply(p.m.Load(h.Len()))
}

// Stop cancels any pending tick without changing state.
func (p *Player) Stop() {
	if p.task != nil {
		p.task.Cancel()
		p.task = nil
	}
}

func (p *Player) apply(next Machine, eff Effect) {
	if next.Generation != p.m.Generation {
		p.Stop()
	}
	p.m = next
	if eff.Clear {
		p.emit(Frame{Index: -1, Status: next.Status})
	}
	if eff.Display {
		p.emit(Frame{Index: next.Current, Snapshot: p.history.Snapshots[next.Current], Status: next.Status})
	}
	if eff.Schedule {
		gen := eff.Generation
		p.task = p.sched.After(eff.Delay, func() {
			p.task = nil
			p.apply(p.m.Tick(gen))
		})
	}
}

func (p *Player) emit(f Frame) {
	if p.observe != nil {
		p.observe(f)
	}
}
