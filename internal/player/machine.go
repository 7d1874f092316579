// Package player replays a trace history. Machine is a pure state value whose
// transitions return the next state and an Effect telling the driver what to
// display and whether to arm the next tick. Player drives a Machine against a
// Scheduler and keeps at most one pending tick.
package player

import (
	"errors"
	"fmt"
	"time"
)

type Status int

const (
	Idle Status = iota
	Running
	Paused
	Finished
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

const (
	MinSpeed     = 1
	MaxSpeed     = 100
	DefaultSpeed = 50
)

var ErrTiming = errors.New("player: invalid timing")

// Timing maps speed to the pause between ticks. MaxDelay applies at
// MinSpeed, MinDelay at MaxSpeed, linear in between.
type Timing struct {
	MinDelay time.Duration
	MaxDelay time.Duration
}

var DefaultTiming = Timing{MinDelay: 20 * time.Millisecond, MaxDelay: 2 * time.Second}

func (t Timing) Validate() error {
	if t.MinDelay <= 0 || t.MaxDelay <= t.MinDelay {
		return fmt.Errorf("%w: need 0 < min (%v) < max (%v)", ErrTiming, t.MinDelay, t.MaxDelay)
	}
	return nil
}

func (t Timing) Delay(speed int) time.Duration {
	speed = ClampSpeed(speed)
	span := t.MaxDelay - t.MinDelay
	return t.MaxDelay - span*time.Duration(speed-MinSpeed)/time.Duration(MaxSpeed-MinSpeed)
}

func ClampSpeed(speed int) int {
	return min(max(speed, MinSpeed), MaxSpeed)
}

// Effect is what a transition asks of its driver.
type Effect struct {
	// Display the snapshot at the machine's Current index.
	Display bool
	// Clear the display back to the original input.
	Clear bool
	// Schedule a tick carrying Generation after Delay.
	Schedule   bool
	Delay      time.Duration
	Generation uint64
}

// Machine is the playback state. Current is -1 before the first display.
// Generation changes whenever a pending tick must stop counting; ticks from
// an older generation are ignored.
type Machine struct {
	Total      int
	Current    int
	Status     Status
	Speed      int
	Generation uint64
	Timing     Timing
}

func NewMachine(total, speed int, timing Timing) Machine {
	if timing.Validate() != nil {
		timing = DefaultTiming
	}
	return Machine{Total: total, Current: -1, Status: Idle, Speed: ClampSpeed(speed), Timing: timing}
}

func (m Machine) Delay() time.Duration { return m.Timing.Delay(m.Speed) }

func (m Machine) atEnd() bool { return m.Current >= m.Total-1 }

func (m Machine) tick() Effect {
	return Effect{Display: true, Schedule: true, Delay: m.Delay(), Generation: m.Generation}
}

// Run starts playback from the first snapshot.
func (m Machine) Run() (Machine, Effect) {
	if m.Total == 0 {
		return m, Effect{}
	}
	m.Generation++
	m.Current = 0
	if m.atEnd() {
		m.Status = Finished
		return m, Effect{Display: true}
	}
	m.Status = Running
	return m, m.tick()
}

// Tick advances one snapshot if gen is still current.
func (m Machine) Tick(gen uint64) (Machine, Effect) {
	if m.Status != Running || gen != m.Generation {
		return m, Effect{}
	}
	m.Current++
	if m.atEnd() {
		m.Status = Finished
		return m, Effect{Display: true}
	}
	return m, m.tick()
}

func (m Machine) Pause() (Machine, Effect) {
	if m.Status != Running {
		return m, Effect{}
	}
	m.Generation++
	m.Status = Paused
	return m, Effect{}
}

// Resume continues from the current snapshot; the next tick shows Current+1.
func (m Machine) Resume() (Machine, Effect) {
	if m.Status != Paused {
		return m, Effect{}
	}
	m.Generation++
	m.Status = Running
	return m, Effect{Schedule: true, Delay: m.Delay(), Generation: m.Generation}
}

// Step shows exactly one more snapshot and leaves the machine paused, or
// finished at the last snapshot. It is a no-op once finished.
func (m Machine) Step() (Machine, Effect) {
	if m.Status == Finished || m.Total == 0 {
		return m, Effect{}
	}
	m.Generation++
	m.Current++
	m.Status = Paused
	if m.atEnd() {
		m.Status = Finished
	}
	return m, Effect{Display: true}
}

// Seek jumps to snapshot i and pauses there.
func (m Machine) Seek(i int) (Machine, Effect) {
	if i < 0 || i >= m.Total {
		return m, Effect{}
	}
	m.Generation++
	m.Current = i
	m.Status = Paused
	if m.atEnd() {
		m.Status = Finished
	}
	return m, Effect{Display: true}
}

func (m Machine) Reset() (Machine, Effect) {
	m.Generation++
	m.Current = -1
	m.Status = Idle
	return m, Effect{Clear: true}
}

// SetSpeed changes the delay. A running machine re-arms its tick with the new delay.
func (m Machine) SetSpeed(speed int) (Machine, Effect) {
	m.Speed = ClampSpeed(speed)
	if m.Status != Running {
		return m, Effect{}
	}
	m.Generation++
	return m, Effect{Schedule: true, Delay: m.Delay(), Generation: m.Generation}
}

// Load replaces the history length and returns to Idle.
func (m Machine) Load(total int) (Machine, Effect) {
	m, eff := m.Reset()
	m.Total = max(total, 0)
	return m, eff
}
