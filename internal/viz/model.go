package viz

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/experiment"
	"github.com/san-kum/algoviz/internal/listing"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/session"
)

const (
	screenMenu = iota
	screenView
	screenInput
)

const speedStep = 10

// Options configures the interactive app.
type Options struct {
	Registry *experiment.Registry
	// Store persists per-visualizer state between launches; nil disables it.
	Store  session.StateStore
	Log    *logging.Logger
	Speed  int
	Timing player.Timing
	Size   int
	Seed   int64
	Values problem.Range
	// Capacity is the knapsack capacity for generated problems; 0 picks one.
	Capacity float64
	// Algorithm opens the player directly instead of the menu.
	Algorithm string
	Input     string
	// Theme names the starting palette; unknown names fall back to the first.
	Theme string
}

type Model struct {
	ctx      context.Context
	registry *experiment.Registry
	log      *logging.Logger
	sched    *teaScheduler
	sessions map[experiment.Visualizer]*session.Session
	active   *session.Session
	algs     []experiment.Algorithm

	screen   int
	cursor   int
	input    textinput.Model
	help     help.Model
	progress progress.Model

	rng     *rand.Rand
	size    int
	genOpts problem.GenerateOptions
	theme   int

	status string
	err    error
	width  int
	height int
}

// NewModel builds the app with one session per visualizer and restores
// whatever state the store holds for them.
func NewModel(ctx context.Context, opts Options) (Model, error) {
	if opts.Registry == nil {
		opts.Registry = experiment.NewRegistry()
	}
	if opts.Log == nil {
		opts.Log = logging.Nop()
	}
	if opts.Size <= 0 {
		opts.Size = 12
	}
	if opts.Speed == 0 {
		opts.Speed = player.DefaultSpeed
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	ti := textinput.New()
	ti.Placeholder = "5, 3, 8, 1"
	ti.CharLimit = 4096
	ti.Width = 60

	m := Model{
		ctx:      ctx,
		registry: opts.Registry,
		log:      opts.Log,
		sched:    newTeaScheduler(),
		sessions: make(map[experiment.Visualizer]*session.Session),
		algs:     opts.Registry.List(""),
		input:    ti,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		rng:      rand.New(rand.NewSource(seed)),
		size:     opts.Size,
		genOpts:  problem.GenerateOptions{Values: opts.Values, Capacity: opts.Capacity},
		theme:    themeIndex(opts.Theme),
		width:    100,
		height:   30,
	}

	for _, vis := range opts.Registry.Visualizers() {
		s, err := session.New(opts.Registry, vis, m.sched,
			session.WithStore(opts.Store),
			session.WithLogger(opts.Log),
			session.WithPlayerOptions(player.WithSpeed(opts.Speed), player.WithTiming(opts.Timing)),
		)
		if err != nil {
			return Model{}, err
		}
		s.Restore(ctx)
		m.sessions[vis] = s
	}

	if opts.Algorithm != "" {
		if err := m.open(opts.Algorithm); err != nil {
			return Model{}, err
		}
		if opts.Input != "" {
			if err := m.active.SetInput(opts.Input); err != nil {
				return Model{}, err
			}
		}
		for i, a := range m.algs {
			if a.Name == opts.Algorithm {
				m.cursor = i
			}
		}
	}
	return m, nil
}

// open switches to the player for the named algorithm, generating a problem
// if its session has none.
func (m *Model) open(name string) error {
	alg, err := m.registry.Get(name)
	if err != nil {
		return err
	}
	s := m.sessions[alg.Visualizer]
	if s.Algorithm().Name != name {
		if err := s.SetAlgorithm(name); err != nil {
			return err
		}
	}
	if _, ok := s.Original(); !ok {
		if err := s.NewProblem(m.size, m.rng, m.genOpts); err != nil {
			return err
		}
	}
	m.active = s
	m.screen = screenView
	m.err = nil
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.sched.drain()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(min(msg.Width-30, 60), 10)
	case tickMsg:
		m.sched.fire(msg.id)
	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			m, cmd = m.menuKey(msg)
		case screenView:
			m, cmd = m.viewKey(msg)
		case screenInput:
			m, cmd = m.inputKey(msg)
		}
	}
	return m, tea.Batch(cmd, m.sched.drain())
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, m.quit()
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.algs)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Select), key.Matches(msg, keys.Play):
		if len(m.algs) > 0 {
			m.err = m.open(m.algs[m.cursor].Name)
		}
	case key.Matches(msg, keys.Theme):
		m.cycleTheme()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) viewKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.active
	m.err = nil
	switch {
	case key.Matches(msg, keys.Quit):
		return m, m.quit()
	case key.Matches(msg, keys.Menu):
		s.Save(m.ctx)
		m.screen = screenMenu
	case key.Matches(msg, keys.Play):
		switch s.Player().Status() {
		case player.Running:
			s.Pause()
		case player.Paused:
			s.Resume()
		default:
			m.err = s.Run()
		}
	case key.Matches(msg, keys.Step):
		m.err = s.Step()
	case key.Matches(msg, keys.Back):
		m.err = s.Seek(max(s.Player().Machine().Current-1, 0))
	case key.Matches(msg, keys.Forward):
		m.err = s.Seek(s.Player().Machine().Current + 1)
	case key.Matches(msg, keys.Reset):
		s.Reset()
	case key.Matches(msg, keys.Random):
		m.err = s.NewProblem(m.size, m.rng, m.genOpts)
	case key.Matches(msg, keys.Input):
		s.Pause()
		m.input.SetValue(editText(s))
		m.input.CursorEnd()
		m.screen = screenInput
		return m, m.input.Focus()
	case key.Matches(msg, keys.Faster):
		s.SetSpeed(s.Player().Machine().Speed + speedStep)
	case key.Matches(msg, keys.Slower):
		s.SetSpeed(s.Player().Machine().Speed - speedStep)
	case key.Matches(msg, keys.Theme):
		m.cycleTheme()
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	if m.err != nil {
		m.log.Debug("action failed", "algorithm", s.Algorithm().Name, "error", m.err)
	}
	return m, nil
}

func (m Model) inputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if err := m.active.SetInput(m.input.Value()); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.input.Blur()
		m.screen = screenView
		return m, nil
	case tea.KeyEsc:
		m.err = nil
		m.input.Blur()
		m.screen = screenView
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// editText is the current input on one line; record lists are written as
// JSON flow sequences, which Parse accepts as YAML.
func editText(s *session.Session) string {
	p, ok := s.Original()
	if !ok {
		return ""
	}
	var v any
	switch p.Kind {
	case problem.KindNumbers:
		return s.Input()
	case problem.KindJobs:
		v = p.Jobs
	case problem.KindKnapsack:
		v = struct {
			Capacity float64        `json:"capacity"`
			Items    []problem.Item `json:"items"`
		}{p.Capacity, p.Items}
	case problem.KindActivities:
		v = p.Activities
	case problem.KindIntervals:
		v = p.Intervals
	}
	data, err := json.Marshal(v)
	if err != nil {
		return s.Input()
	}
	return string(data)
}

func (m *Model) cycleTheme() {
	m.theme = (m.theme + 1) % len(Themes)
	m.status = "theme: " + m.palette().Name
}

func (m Model) palette() Theme {
	return Themes[m.theme]
}

func (m Model) quit() tea.Cmd {
	for _, vis := range m.registry.Visualizers() {
		m.sessions[vis].Save(m.ctx)
	}
	return tea.Quit
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenMenu:
		body = m.menuView()
	case screenInput:
		body = m.inputView()
	default:
		body = m.playerView()
	}
	st := m.palette().Styles()
	if m.err != nil {
		body += "\n" + st.Error.Render(m.err.Error())
	}
	if m.status != "" {
		body += "\n" + st.Dim.Render(m.status)
	}
	return body + "\n\n" + m.help.View(keys)
}

func (m Model) menuView() string {
	st := m.palette().Styles()
	var b strings.Builder
	b.WriteString(st.Title("ALGOVIZ") + "\n\n")
	var last experiment.Visualizer
	for i, a := range m.algs {
		if a.Visualizer != last {
			if last != "" {
				b.WriteString("\n")
			}
			b.WriteString(st.Header.Render(strings.ToUpper(string(a.Visualizer))) + "\n")
			last = a.Visualizer
		}
		line := fmt.Sprintf("%-12s %s", a.Name, a.Title)
		if i == m.cursor {
			b.WriteString(st.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + st.Label.Render(line) + "\n")
		}
	}
	return st.Panel.Render(b.String())
}

func (m Model) inputView() string {
	a := m.active.Algorithm()
	hint := "comma separated numbers"
	if a.Kind != problem.KindNumbers {
		hint = fmt.Sprintf("YAML or JSON list of %s records", a.Kind)
	}
	st := m.palette().Styles()
	return st.Header.Render(a.Title+" input") + "\n\n" +
		m.input.View() + "\n\n" +
		st.Hint.Render(hint+" · enter to load · esc to cancel")
}

func (m Model) playerView() string {
	t := m.palette()
	st := t.Styles()
	s := m.active
	a := s.Algorithm()
	mach := s.Player().Machine()
	width := max(m.width/2, 40)

	header := st.Header.Render(strings.ToUpper(a.Title)) + "  " + st.Status(mach.Status).Render(strings.ToUpper(mach.Status.String()))

	var panel, explanation, chart string
	if snap, ok := s.Current(); ok {
		panel = RenderPayload(t, snap.Payload, width)
		explanation = snap.Explanation
		if m.height >= 40 {
			chart = RenderScoreChart(s.History(), a.Score, mach.Current, width)
		} else {
			chart = RenderScoreSparkline(t, s.History(), a.Score, mach.Current, width)
		}
	} else if p, ok := s.Original(); ok {
		panel = RenderProblem(t, p, width)
		explanation = "press space to run or n to step"
	} else {
		panel = st.Dim.Render("(no problem loaded)")
	}

	var code string
	if l, ok := listing.For(a.Name); ok {
		var lines []int
		if snap, ok := s.Current(); ok {
			lines = snap.Lines
		}
		code = RenderCode(t, l, lines)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		st.Panel.Width(width).Render(panel),
		st.Panel.Render(code),
	)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(main + "\n")
	b.WriteString(st.Body.Render(explanation) + "\n")
	b.WriteString(st.Rule(max(width, 20)) + "\n")

	if mach.Total > 0 {
		pct := float64(mach.Current+1) / float64(mach.Total)
		b.WriteString(m.progress.ViewAs(pct) + " " +
			st.Label.Render(fmt.Sprintf("step %d/%d", mach.Current+1, mach.Total)) + "\n")
	}
	b.WriteString(st.Metric("speed", fmt.Sprint(mach.Speed)) +
		st.Label.Render(fmt.Sprintf(" (%v/step)", mach.Delay())) + "\n")

	if chart != "" {
		b.WriteString("\n" + chart + "\n")
	}
	if mach.Status == player.Finished && s.Result() != nil {
		b.WriteString("\n" + st.Status(player.Finished).Render(s.Result().Summary()) + "\n")
	}
	return b.String()
}

// Run starts the interactive app and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m, err := NewModel(ctx, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
