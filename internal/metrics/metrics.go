package metrics

import (
	"slices"

	"github.com/san-kum/algoviz/internal/trace"
)

// Metric accumulates a single number over the snapshots of a history.
type Metric interface {
	Name() string
	Observe(s trace.Snapshot)
	Value() float64
	Reset()
}

// Counter counts snapshots whose label is in its set. An empty set counts every step.
type Counter struct {
	name   string
	labels []trace.Label
	n      int
}

func NewCounter(name string, labels ...trace.Label) *Counter {
	return &Counter{name: name, labels: labels}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(s trace.Snapshot) {
	if len(c.labels) == 0 || slices.Contains(c.labels, s.Label) {
		c.n++
	}
}

func (c *Counter) Value() float64 { return float64(c.n) }

func (c *Counter) Reset() { c.n = 0 }

// Peak tracks the largest value of one payload scalar.
type Peak struct {
	name string
	key  string
	max  float64
	seen bool
}

func NewPeak(name, key string) *Peak {
	return &Peak{name: name, key: key}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s trace.Snapshot) {
	if s.Payload == nil {
		return
	}
	v, ok := s.Payload.Scalars()[p.key]
	if !ok {
		return
	}
	if !p.seen || v > p.max {
		p.max = v
		p.seen = true
	}
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}

// Final reports a payload scalar as of the last snapshot that carried it.
type Final struct {
	name string
	key  string
	v    float64
}

func NewFinal(name, key string) *Final {
	return &Final{name: name, key: key}
}

func (f *Final) Name() string { return f.name }

func (f *Final) Observe(s trace.Snapshot) {
	if s.Payload == nil {
		return
	}
	if v, ok := s.Payload.Scalars()[f.key]; ok {
		f.v = v
	}
}

func (f *Final) Value() float64 { return f.v }

func (f *Final) Reset() { f.v = 0 }

// Counters returns the step counters every algorithm reports.
func Counters() []Metric {
	return []Metric{
		NewCounter("steps"),
		NewCounter("comparisons", trace.LabelCompare, trace.LabelConsider),
		NewCounter("swaps", trace.LabelSwap, trace.LabelExtract),
		NewCounter("writes", trace.LabelWrite, trace.LabelShift, trace.LabelPlace, trace.LabelAssign, trace.LabelFree),
		NewCounter("decisions", trace.LabelSelect, trace.LabelReject, trace.LabelTake,
			trace.LabelPartial, trace.LabelSkip, trace.LabelReset, trace.LabelExtend, trace.LabelBest, trace.LabelEarlyExit),
	}
}

// Summarize resets ms, feeds them every snapshot of h and collects their
// values by name. With no metrics it uses Counters.
func Summarize(h *trace.History, ms ...Metric) map[string]float64 {
	if len(ms) == 0 {
		ms = Counters()
	}
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < h.Len(); i++ {
		for _, m := range ms {
			m.Observe(h.Snapshots[i])
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
