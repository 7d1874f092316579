// Package session ties one visualizer's state together: the chosen
// algorithm, the original problem, the recorded history and its player.
// It also saves and restores the UI state through a key-value store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

var (
	ErrNoProblem       = errors.New("session: no problem loaded")
	ErrWrongVisualizer = errors.New("session: algorithm belongs to another visualizer")
)

// StateStore is the persistence collaborator. kvstore.Store satisfies it.
type StateStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// State is the blob saved per visualizer. Step is -1 when nothing was shown.
type State struct {
	Algorithm string `json:"algorithm"`
	Speed     int    `json:"speed"`
	Input     string `json:"input"`
	Step      int    `json:"step"`
}

type Option func(*Session)

func WithStore(s StateStore) Option {
	return func(sess *Session) { sess.store = s }
}

func WithLogger(l *logging.Logger) Option {
	return func(sess *Session) { sess.log = l }
}

func WithPlayerOptions(opts ...player.Option) Option {
	return func(sess *Session) { sess.playerOpts = append(sess.playerOpts, opts...) }
}

type Session struct {
	registry   *experiment.Registry
	vis        experiment.Visualizer
	alg        experiment.Algorithm
	original   problem.Problem
	loaded     bool
	history    *trace.History
	result     trace.Result
	player     *player.Player
	playerOpts []player.Option
	store      StateStore
	log        *logging.Logger
}

// New opens a session on the first algorithm of vis.
func New(reg *experiment.Registry, vis experiment.Visualizer, sched player.Scheduler, opts ...Option) (*Session, error) {
	algs := reg.List(vis)
	if len(algs) == 0 {
		return nil, fmt.Errorf("%w: no algorithms for visualizer %q", experiment.ErrUnknownAlgorithm, vis)
	}
	s := &Session{registry: reg, vis: vis, alg: algs[0], log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.player = player.New(nil, sched, s.playerOpts...)
	return s, nil
}

func (s *Session) Visualizer() experiment.Visualizer { return s.vis }
func (s *Session) Algorithm() experiment.Algorithm   { return s.alg }
func (s *Session) Player() *player.Player            { return s.player }
func (s *Session) History() *trace.History           { return s.history }
func (s *Session) Result() trace.Result              { return s.result }

// Original is the problem as loaded, before any algorithm touched a copy of it.
func (s *Session) Original() (problem.Problem, bool) {
	return s.original.Clone(), s.loaded
}

// SetAlgorithm switches algorithm and resets playback. The loaded problem
// is dropped when the new algorithm takes a different kind of input.
func (s *Session) SetAlgorithm(name string) error {
	a, err := s.registry.Get(name)
	if err != nil {
		return err
	}
	if a.Visualizer != s.vis {
		return fmt.Errorf("%w: %s is a %s algorithm", ErrWrongVisualizer, name, a.Visualizer)
	}
	if a.Kind != s.alg.Kind {
		s.original = problem.Problem{}
		s.loaded = false
	}
	s.alg = a
	s.Reset()
	s.log.Debug("algorithm selected", "visualizer", s.vis, "algorithm", name)
	return nil
}

// SetInput parses text for the current algorithm. Nothing changes on a
// validation error.
func (s *Session) SetInput(text string) error {
	p, err := problem.Parse(s.alg.Kind, text)
	if err != nil {
		return err
	}
	s.load(p)
	return nil
}

// NewProblem generates a random problem of the given size.
func (s *Session) NewProblem(size int, rng *rand.Rand, opts problem.GenerateOptions) error {
	p, err := problem.Generate(s.alg.Kind, size, rng, opts)
	if err != nil {
		return err
	}
	s.load(p)
	return nil
}

func (s *Session) load(p problem.Problem) {
	s.original = p
	s.loaded = true
	s.Reset()
}

// Input renders the original problem in its parseable text form.
func (s *Session) Input() string {
	if !s.loaded {
		return ""
	}
	text, err := problem.Format(s.original)
	if err != nil {
		s.log.Warn("format input", "error", err)
		return ""
	}
	return text
}

// prepare records the history for the original problem if there is none yet.
func (s *Session) prepare() error {
	if s.history != nil {
		return nil
	}
	if !s.loaded {
		return ErrNoProblem
	}
	s.history, s.result = s.alg.Trace(s.original.Clone())
	s.player.Load(s.history)
	s.log.Debug("history recorded", "algorithm", s.alg.Name, "steps", s.history.Len())
	return nil
}

// Run records the history if needed and starts playback from the first step.
func (s *Session) Run() error {
	if err := s.prepare(); err != nil {
		return err
	}
	s.player.Run()
	return nil
}

// Step shows one more snapshot, recording the history first when idle.
func (s *Session) Step() error {
	if err := s.prepare(); err != nil {
		return err
	}
	s.player.Step()
	return nil
}

func (s *Session) Pause()             { s.player.Pause() }
func (s *Session) Resume()            { s.player.Resume() }
func (s *Session) SetSpeed(speed int) { s.player.SetSpeed(speed) }

func (s *Session) Seek(i int) error {
	if err := s.prepare(); err != nil {
		return err
	}
	s.player.Seek(i)
	return nil
}

// Reset cancels playback and forgets the history. The original problem stays.
func (s *Session) Reset() {
	s.player.Load(nil)
	s.history = nil
	s.result = nil
}

// Current returns the displayed snapshot; ok is false when the display
// shows the original input.
func (s *Session) Current() (trace.Snapshot, bool) {
	return s.player.Current()
}

// KeyPrefix namespaces saved session state in the store.
const KeyPrefix = "state/"

func (s *Session) key() string {
	return KeyPrefix + string(s.vis)
}

func (s *Session) Snapshot() State {
	m := s.player.Machine()
	return State{
		Algorithm: s.alg.Name,
		Speed:     m.Speed,
		Input:     s.Input(),
		Step:      m.Current,
	}
}

// Save writes the UI state. Failures are logged and otherwise ignored.
func (s *Session) Save(ctx context.Context) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		s.log.Warn("encode session state", "error", err)
		return
	}
	if err := s.store.Put(ctx, s.key(), data); err != nil {
		s.log.Warn("save session state", "visualizer", s.vis, "error", err)
	}
}

// Restore loads the saved UI state and reports whether anything was applied.
// A missing, unreadable or invalid state leaves the session untouched.
func (s *Session) Restore(ctx context.Context) bool {
	if s.store == nil {
		return false
	}
	data, err := s.store.Get(ctx, s.key())
	if err != nil {
		s.log.Debug("no saved session state", "visualizer", s.vis, "error", err)
		return false
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Warn("decode session state", "visualizer", s.vis, "error", err)
		return false
	}

	a, err := s.registry.Get(st.Algorithm)
	if err != nil || a.Visualizer != s.vis {
		s.log.Warn("saved state names an unusable algorithm", "algorithm", st.Algorithm)
		return false
	}
	var p problem.Problem
	if st.Input != "" {
		if p, err = problem.Parse(a.Kind, st.Input); err != nil {
			s.log.Warn("saved input no longer parses", "algorithm", st.Algorithm, "error", err)
			return false
		}
	}

	s.alg = a
	s.original, s.loaded = p, st.Input != ""
	s.Reset()
	s.player.SetSpeed(st.Speed)
	if s.loaded && st.Step >= 0 {
		if err := s.Seek(st.Step); err != nil {
			s.log.Warn("restore step", "error", err)
		}
	}
	s.log.Info("session state restored", "visualizer", s.vis, "algorithm", a.Name, "step", st.Step)
	return true
}
