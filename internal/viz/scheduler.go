package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/player"
)

// tickMsg fires a scheduled task. Bubble Tea cannot cancel a tea.Tick, so
// the id is checked on arrival and ticks for cancelled tasks are dropped.
type tickMsg struct {
	id uint64
}

// teaScheduler adapts player.Scheduler to Bubble Tea: After queues a tea.Tick
// command that the model hands back to the runtime from Update.
type teaScheduler struct {
	seq     uint64
	pending map[uint64]*teaTask
	queued  []tea.Cmd
}

type teaTask struct {
	s  *teaScheduler
	id uint64
	fn func()
}

func (t *teaTask) Cancel() bool {
	if _, ok := t.s.pending[t.id]; !ok {
		return false
	}
	delete(t.s.pending, t.id)
	return true
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[uint64]*teaTask)}
}

var _ player.Scheduler = (*teaScheduler)(nil)

func (s *teaScheduler) After(d time.Duration, fn func()) player.Task {
	s.seq++
	t := &teaTask{s: s, id: s.seq, fn: fn}
	s.pending[t.id] = t
	id := t.id
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{id: id} }))
	return t
}

// fire runs the task with the given id and reports whether it was still live.
func (s *teaScheduler) fire(id uint64) bool {
	t, ok := s.pending[id]
	if !ok {
		return false
	}
	delete(s.pending, id)
	t.fn()
	return true
}

// drain returns the ticks queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

func (s *teaScheduler) live() int { return len(s.pending) }
