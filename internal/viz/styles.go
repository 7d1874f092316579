package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/algoviz/internal/player"
)

// Styles is the set of lipgloss styles a Theme resolves to.
type Styles struct {
	theme Theme

	Panel    lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Body     lipgloss.Style
	Dim      lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style

	Label lipgloss.Style
	Value lipgloss.Style

	LineNo   lipgloss.Style
	Code     lipgloss.Style
	CodeLive lipgloss.Style

	status map[player.Status]lipgloss.Style
}

// Styles derives the styles for t.
func (t Theme) Styles() Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return Styles{
		theme:    t,
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Frame).Padding(1, 2),
		Selected: fg(t.TitleFrom).Bold(true).Reverse(true),
		Header: fg(t.Text).Bold(true).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(t.Frame),
		Body:     fg(t.Text),
		Dim:      fg(t.Dim),
		Hint:     fg(t.Dim).Italic(true),
		Error:    fg(t.Fail),
		Label:    fg(t.Dim),
		Value:    fg(t.Value).Bold(true),
		LineNo:   fg(t.Frame).Width(4).Align(lipgloss.Right),
		Code:     fg(t.Dim),
		CodeLive: fg(lipgloss.Color("#000000")).Background(t.Compare).Bold(true),
		status: map[player.Status]lipgloss.Style{
			player.Idle:     fg(t.Dim),
			player.Running:  fg(t.Running).Bold(true),
			player.Paused:   fg(t.Paused).Bold(true),
			player.Finished: fg(t.Finished).Bold(true),
		},
	}
}

func (s Styles) Status(st player.Status) lipgloss.Style {
	if style, ok := s.status[st]; ok {
		return style
	}
	return s.Dim
}

// Metric renders "label value".
func (s Styles) Metric(label, value string) string {
	return s.Label.Render(label+" ") + s.Value.Render(value)
}

// Title blends the theme's title colours across text, one rune at a time.
func (s Styles) Title(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, err1 := colorful.Hex(string(s.theme.TitleFrom))
	to, err2 := colorful.Hex(string(s.theme.TitleTo))
	if err1 != nil || err2 != nil {
		return s.Header.Render(text)
	}
	var b strings.Builder
	for i, r := range runes {
		f := 0.0
		if len(runes) > 1 {
			f = float64(i) / float64(len(runes)-1)
		}
		c := lipgloss.Color(from.BlendLab(to, f).Clamped().Hex())
		b.WriteString(lipgloss.NewStyle().Foreground(c).Bold(true).Render(string(r)))
	}
	return b.String()
}

// level picks the status colour for a fill fraction in [0, 1].
func (s Styles) level(f float64) lipgloss.Style {
	switch {
	case f > 0.8:
		return lipgloss.NewStyle().Foreground(s.theme.Running)
	case f > 0.4:
		return lipgloss.NewStyle().Foreground(s.theme.Paused)
	}
	return lipgloss.NewStyle().Foreground(s.theme.Fail)
}

// Meter is a fixed width fill bar.
func (s Styles) Meter(f float64, width int) string {
	filled := min(max(int(f*float64(width)), 0), width)
	return s.level(f).Render(strings.Repeat("█", filled) + strings.Repeat("░", width-filled))
}

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline samples values down to width runes, scaled between their extremes.
func (s Styles) Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return s.Dim.Render(strings.Repeat("─", max(width, 0)))
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	spread := hi - lo
	if spread == 0 {
		spread = 1
	}
	stride := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*stride < len(values); i++ {
		f := (values[i*stride] - lo) / spread
		r := sparkRunes[min(max(int(f*float64(len(sparkRunes)-1)), 0), len(sparkRunes)-1)]
		b.WriteString(s.level(f).Render(string(r)))
	}
	return b.String()
}

// Rule is a horizontal divider with a centre ornament.
func (s Styles) Rule(width int) string {
	side := max(width/2-2, 1)
	return s.Dim.Render(strings.Repeat("─", side) + " ◆ " + strings.Repeat("─", max(width-side-3, 1)))
}
