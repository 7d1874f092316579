package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/trace"
)

// Theme is a palette keyed by what a colour means on screen: the marker
// roles of an array, the status of the player and the chrome around them.
type Theme struct {
	Name string

	TitleFrom, TitleTo lipgloss.Color
	Text, Dim, Frame   lipgloss.Color
	Value              lipgloss.Color

	Compare, Swap, Pivot, Key lipgloss.Color
	Merge, Done, Span         lipgloss.Color

	Running, Paused, Finished lipgloss.Color
	Fail                      lipgloss.Color

	// Rooms colour interval partitions; room i uses Rooms[i%len(Rooms)].
	Rooms []lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:      "neon",
		TitleFrom: "#ff00ff", TitleTo: "#00ffff",
		Text: "#ffffff", Dim: "#666688", Frame: "#444466", Value: "#00ccff",
		Compare: "#ffff00", Swap: "#ff3355", Pivot: "#ff00ff", Key: "#ff8800",
		Merge: "#00ffff", Done: "#00ff88", Span: "#ccccff",
		Running: "#00ff88", Paused: "#ffaa00", Finished: "#00ccff", Fail: "#ff4444",
		Rooms: []lipgloss.Color{"#00ffff", "#ffff00", "#00ff88", "#ff00ff", "#ff8800", "#ff3355"},
	}

	ThemePhosphor = Theme{
		Name:      "phosphor",
		TitleFrom: "#00ff00", TitleTo: "#88ff88",
		Text: "#00ff00", Dim: "#006600", Frame: "#005500", Value: "#ccffcc",
		Compare: "#ffff66", Swap: "#ff5555", Pivot: "#88ff88", Key: "#ffcc00",
		Merge: "#00cc00", Done: "#ccffcc", Span: "#66cc66",
		Running: "#88ff88", Paused: "#ffff00", Finished: "#ccffcc", Fail: "#ff0000",
		Rooms: []lipgloss.Color{"#00ff00", "#88ff88", "#ccffcc", "#00aa00"},
	}

	ThemeMono = Theme{
		Name:      "mono",
		TitleFrom: "#ffffff", TitleTo: "#888888",
		Text: "#ffffff", Dim: "#888888", Frame: "#555555", Value: "#ffffff",
		Compare: "#0088ff", Swap: "#ff0000", Pivot: "#ffffff", Key: "#ffaa00",
		Merge: "#cccccc", Done: "#00ff00", Span: "#bbbbbb",
		Running: "#00ff00", Paused: "#ffaa00", Finished: "#0088ff", Fail: "#ff0000",
		Rooms: []lipgloss.Color{"#ffffff", "#0088ff", "#00ff00", "#ffaa00"},
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		TitleFrom: "#0077be", TitleTo: "#00a8cc",
		Text: "#e0f0ff", Dim: "#4488aa", Frame: "#225577", Value: "#ffd700",
		Compare: "#ffd700", Swap: "#ff4444", Pivot: "#0077be", Key: "#ffcc00",
		Merge: "#00a8cc", Done: "#00ff88", Span: "#a0d0ff",
		Running: "#00ff88", Paused: "#ffcc00", Finished: "#00a8cc", Fail: "#ff4444",
		Rooms: []lipgloss.Color{"#00a8cc", "#ffd700", "#00ff88", "#0077be", "#ff4444"},
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		TitleFrom: "#ff6b6b", TitleTo: "#feca57",
		Text: "#fff5f5", Dim: "#8b6b8c", Frame: "#5a3b5c", Value: "#feca57",
		Compare: "#ff9ff3", Swap: "#ff4757", Pivot: "#ff6b6b", Key: "#ffc048",
		Merge: "#feca57", Done: "#5fd068", Span: "#ffd8d8",
		Running: "#5fd068", Paused: "#ffc048", Finished: "#feca57", Fail: "#ff4757",
		Rooms: []lipgloss.Color{"#feca57", "#ff9ff3", "#5fd068", "#ff6b6b"},
	}

	Themes = []Theme{ThemeNeon, ThemePhosphor, ThemeMono, ThemeOcean, ThemeSunset}
)

// ThemeByName looks a theme up by name.
func ThemeByName(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

// Marker returns the style for an array index holding role m.
func (t Theme) Marker(m trace.Marker) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch m {
	case trace.MarkSwapping:
		return s.Foreground(t.Swap).Bold(true)
	case trace.MarkComparing:
		return s.Foreground(t.Compare).Bold(true)
	case trace.MarkPivot:
		return s.Foreground(t.Pivot).Bold(true)
	case trace.MarkKey:
		return s.Foreground(t.Key).Bold(true)
	case trace.MarkMerging:
		return s.Foreground(t.Merge)
	case trace.MarkSorted:
		return s.Foreground(t.Done)
	case trace.MarkRange:
		return s.Foreground(t.Span)
	}
	return s.Foreground(t.Dim)
}

func (t Theme) Room(i int) lipgloss.Style {
	if len(t.Rooms) == 0 {
		return lipgloss.NewStyle().Foreground(t.Text)
	}
	return lipgloss.NewStyle().Foreground(t.Rooms[i%len(t.Rooms)])
}
