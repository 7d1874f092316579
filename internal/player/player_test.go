package player_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/trace"
)

var timing = player.Timing{MinDelay: 10 * time.Millisecond, MaxDelay: 1010 * time.Millisecond}

func history(n int) *trace.History {
	rec := trace.NewRecorder("test")
	for i := 0; i < n; i++ {
		rec.Recordf(trace.LabelCompare, &trace.Array{Values: []float64{float64(i)}}, nil, "step %d", i)
	}
	return rec.History()
}

type recorder struct {
	frames []player.Frame
}

func (r *recorder) observe(f player.Frame) { r.frames = append(r.frames, f) }

func (r *recorder) shown() []int {
	var out []int
	for _, f := range r.frames {
		if f.Index >= 0 {
			out = append(out, f.Index)
		}
	}
	return out
}

func upTo(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

var _ = Describe("Machine", func() {
	It("maps speed to a strictly decreasing delay", func() {
		Expect(timing.Delay(player.MinSpeed)).To(Equal(timing.MaxDelay))
		Expect(timing.Delay(player.MaxSpeed)).To(Equal(timing.MinDelay))
		prev := timing.Delay(player.MinSpeed)
		for s := player.MinSpeed + 1; s <= player.MaxSpeed; s++ {
			d := timing.Delay(s)
			Expect(d).To(BeNumerically("<", prev), "speed %d", s)
			prev = d
		}
	})

	It("clamps out of range speeds", func() {
		Expect(timing.Delay(-5)).To(Equal(timing.Delay(player.MinSpeed)))
		Expect(timing.Delay(500)).To(Equal(timing.Delay(player.MaxSpeed)))
	})

	It("rejects inverted timing", func() {
		Expect(player.Timing{MinDelay: time.Second, MaxDelay: time.Millisecond}.Validate()).
			To(MatchError(player.ErrTiming))
	})

	It("stays idle when run without snapshots", func() {
		m, eff := player.NewMachine(0, 50, timing).Run()
		Expect(m.Status).To(Equal(player.Idle))
		Expect(eff).To(Equal(player.Effect{}))
	})

	It("finishes immediately on a single snapshot", func() {
		m, eff := player.NewMachine(1, 50, timing).Run()
		Expect(m.Status).To(Equal(player.Finished))
		Expect(eff.Display).To(BeTrue())
		Expect(eff.Schedule).To(BeFalse())
	})

	It("ignores ticks from an older generation", func() {
		m, eff := player.NewMachine(5, 50, timing).Run()
		stale := eff.Generation
		m, _ = m.Pause()
		m, _ = m.Resume()
		next, tickEff := m.Tick(stale)
		Expect(next).To(Equal(m))
		Expect(tickEff).To(Equal(player.Effect{}))
	})

	It("steps N times from idle onto the last snapshot", func() {
		m := player.NewMachine(4, 50, timing)
		for i := 0; i < 4; i++ {
			var eff player.Effect
			m, eff = m.Step()
			Expect(eff.Display).To(BeTrue())
			Expect(m.Current).To(Equal(i))
		}
		Expect(m.Status).To(Equal(player.Finished))

		again, eff := m.Step()
		Expect(again).To(Equal(m))
		Expect(eff).To(Equal(player.Effect{}))
	})

	It("resets from any state", func() {
		m, _ := player.NewMachine(3, 50, timing).Run()
		m, eff := m.Reset()
		Expect(m.Status).To(Equal(player.Idle))
		Expect(m.Current).To(Equal(-1))
		Expect(eff.Clear).To(BeTrue())
	})
})

var _ = Describe("Player", func() {
	var (
		sched *player.ManualScheduler
		rec   *recorder
		p     *player.Player
		delay time.Duration
	)

	const n = 6

	BeforeEach(func() {
		sched = player.NewManualScheduler()
		rec = &recorder{}
		p = player.New(history(n), sched,
			player.WithTiming(timing),
			player.WithSpeed(50),
			player.WithObserver(rec.observe))
		delay = timing.Delay(50)
	})

	It("plays every snapshot in order and finishes", func() {
		p.Run()
		Expect(rec.shown()).To(Equal([]int{0}))
		Expect(sched.Pending()).To(Equal(1))

		sched.Advance(time.Duration(n) * delay)
		Expect(rec.shown()).To(Equal(upTo(n)))
		Expect(p.Status()).To(Equal(player.Finished))
		Expect(sched.Pending()).To(BeZero())
	})

	It("does not advance while paused", func() {
		p.Run()
		sched.Advance(delay)
		p.Pause()
		Expect(sched.Pending()).To(BeZero())

		sched.Advance(10 * delay)
		Expect(rec.shown()).To(Equal([]int{0, 1}))
		Expect(p.Status()).To(Equal(player.Paused))
	})

	It("shows the same sequence with pauses as without", func() {
		p.Run()
		sched.Advance(delay)
		p.Pause()
		sched.Advance(3 * delay)
		p.Resume()
		sched.Advance(delay / 2)
		p.Pause()
		p.Resume()
		sched.Advance(time.Duration(n) * delay)

		Expect(rec.shown()).To(Equal(upTo(n)))
		Expect(p.Status()).To(Equal(player.Finished))
	})

	It("steps synchronously and cancels the pending tick", func() {
		p.Run()
		p.Step()
		Expect(p.Status()).To(Equal(player.Paused))
		Expect(sched.Pending()).To(BeZero())
		Expect(rec.shown()).To(Equal([]int{0, 1}))

		sched.Advance(10 * delay)
		Expect(rec.shown()).To(Equal([]int{0, 1}))
	})

	It("keeps a single pending tick across speed changes", func() {
		p.Run()
		p.SetSpeed(player.MaxSpeed)
		p.SetSpeed(player.MinSpeed)
		p.SetSpeed(player.MaxSpeed)
		Expect(sched.Pending()).To(Equal(1))

		sched.Advance(time.Duration(n) * timing.MinDelay)
		Expect(rec.shown()).To(Equal(upTo(n)))
	})

	It("clears the display and cancels playback on reset", func() {
		p.Run()
		sched.Advance(delay)
		p.Reset()

		Expect(sched.Pending()).To(BeZero())
		Expect(p.Status()).To(Equal(player.Idle))
		_, ok := p.Current()
		Expect(ok).To(BeFalse())
		Expect(rec.frames[len(rec.frames)-1].Index).To(Equal(-1))

		sched.Advance(10 * delay)
		Expect(rec.shown()).To(Equal([]int{0, 1}))
	})

	It("replays an identical sequence after reset and run", func() {
		p.Run()
		sched.Advance(time.Duration(n) * delay)
		first := rec.shown()

		p.Reset()
		rec.frames = nil
		p.Run()
		sched.Advance(time.Duration(n) * delay)
		Expect(rec.shown()).To(Equal(first))
	})

	It("seeks to a snapshot and pauses", func() {
		p.Run()
		p.Seek(4)
		cur, ok := p.Current()
		Expect(ok).To(BeTrue())
		Expect(cur.Explanation).To(Equal("step 4"))
		Expect(p.Status()).To(Equal(player.Paused))

		p.Seek(n - 1)
		Expect(p.Status()).To(Equal(player.Finished))
	})

	It("loads a new history and returns to idle", func() {
		p.Run()
		h, _ := sorting.Insertion([]float64{3, 1, 2})
		p.Load(h)
		Expect(p.Status()).To(Equal(player.Idle))
		Expect(p.Machine().Total).To(Equal(h.Len()))
		Expect(sched.Pending()).To(BeZero())
	})
})

var _ = Describe("Loop", func() {
	It("plays a history against the wall clock", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		loop := player.NewLoop()
		done := make(chan error, 1)
		go func() { done <- loop.Run(ctx) }()

		finished := make(chan struct{})
		fast := player.Timing{MinDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
		var p *player.Player
		Expect(loop.Do(ctx, func() {
			p = player.New(history(5), loop.Scheduler(),
				player.WithTiming(fast),
				player.WithSpeed(player.MaxSpeed),
				player.WithObserver(func(f player.Frame) {
					if f.Status == player.Finished {
						close(finished)
					}
				}))
			p.Run()
		})).To(Succeed())

		Eventually(finished, time.Second).Should(BeClosed())

		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})
})
