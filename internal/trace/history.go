package trace

import (
	"errors"
	"fmt"
	"slices"
)

var ErrOutOfRange = errors.New("trace: step out of range")

// History is the complete ordered trace of one algorithm run.
type History struct {
	Algorithm string     `json:"algorithm"`
	Snapshots []Snapshot `json:"snapshots"`
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Snapshots)
}

func (h *History) At(i int) (Snapshot, error) {
	if i < 0 || i >= h.Len() {
		return Snapshot{}, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, h.Len())
	}
	return h.Snapshots[i], nil
}

// Last returns the final snapshot; ok is false for an empty history.
func (h *History) Last() (Snapshot, bool) {
	if h.Len() == 0 {
		return Snapshot{}, false
	}
	return h.Snapshots[len(h.Snapshots)-1], true
}

// Labels returns the label of every step in order.
func (h *History) Labels() []Label {
	out := make([]Label, h.Len())
	for i := range out {
		out[i] = h.Snapshots[i].Label
	}
	return out
}

// Recorder appends snapshots to a history it owns.
type Recorder struct {
	h *History
}

func NewRecorder(algorithm string) *Recorder {
	return &Recorder{h: &History{Algorithm: algorithm, Snapshots: make([]Snapshot, 0, 64)}}
}

// Record appends a snapshot holding a private copy of p.
func (r *Recorder) Record(label Label, p Payload, lines []int, explanation string) {
	r.h.Snapshots = append(r.h.Snapshots, Snapshot{
		Label:       label,
		Explanation: explanation,
		Lines:       slices.Clone(lines),
		Payload:     p.Clone(),
	})
}

func (r *Recorder) Recordf(label Label, p Payload, lines []int, format string, args ...any) {
	r.Record(label, p, lines, fmt.Sprintf(format, args...))
}

func (r *Recorder) Len() int { return r.h.Len() }

// History returns the recorded history. The recorder must not be used afterwards.
func (r *Recorder) History() *History {
	h := r.h
	r.h = nil
	return h
}
