package player

import (
	"slices"
	"time"
)

// Task is a pending callback. Cancel reports whether it stopped the task
// before it ran.
type Task interface {
	Cancel() bool
}

type Scheduler interface {
	After(d time.Duration, fn func()) Task
}

// ManualScheduler runs callbacks against a virtual clock moved by Advance.
// Callbacks run on the goroutine calling Advance.
type ManualScheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	s    *ManualScheduler
	due  time.Duration
	seq  uint64
	fn   func()
	done bool
}

func (t *manualTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) After(d time.Duration, fn func()) Task {
	s.seq++
	t := &manualTask{s: s, due: s.now + max(d, 0), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every task that falls due
// in order. Tasks scheduled by a callback run too if they fall due within d.
// It returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + max(d, 0)
	n := 0
	for {
		t := s.earliest()
		if t == nil || t.due > target {
			break
		}
		s.remove(t)
		t.done = true
		s.now = t.due
		t.fn()
		n++
	}
	s.now = target
	return n
}

// Next returns the time until the earliest pending task.
func (s *ManualScheduler) Next() (time.Duration, bool) {
	t := s.earliest()
	if t == nil {
		return 0, false
	}
	return max(t.due-s.now, 0), true
}

func (s *ManualScheduler) Pending() int { return len(s.tasks) }

func (s *ManualScheduler) Now() time.Duration { return s.now }

func (s *ManualScheduler) earliest() *manualTask {
	var best *manualTask
	for _, t := range s.tasks {
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *ManualScheduler) remove(t *manualTask) {
	s.tasks = slices.DeleteFunc(s.tasks, func(x *manualTask) bool { return x == t })
}
