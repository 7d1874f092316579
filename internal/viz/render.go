package viz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/listing"
	"github.com/san-kum/algoviz/internal/problem"
	"github.com/san-kum/algoviz/internal/trace"
)

// Arrays longer than this are drawn as braille bars instead of labelled cells.
const cellLimit = 24

// markerOrder resolves an index holding several roles to the one drawn.
var markerOrder = []trace.Marker{
	trace.MarkSwapping, trace.MarkComparing, trace.MarkPivot, trace.MarkKey,
	trace.MarkMerging, trace.MarkSorted, trace.MarkRange,
}

// RenderPayload draws one snapshot payload for a panel of the given width.
func RenderPayload(t Theme, p trace.Payload, width int) string {
	st := t.Styles()
	switch p := p.(type) {
	case *trace.Array:
		return renderArray(st, p, width)
	case *trace.Subarray:
		return renderSubarray(st, p)
	case *trace.Schedule:
		return renderSchedule(st, p)
	case *trace.Knapsack:
		return renderKnapsack(st, p, width)
	case *trace.Activities:
		return renderActivities(st, p, width)
	case *trace.Coloring:
		return renderColoring(st, p, width)
	}
	return st.Dim.Render(fmt.Sprintf("(no renderer for %T)", p))
}

// RenderProblem draws the untouched input shown while nothing is playing.
func RenderProblem(t Theme, p problem.Problem, width int) string {
	st := t.Styles()
	switch p.Kind {
	case problem.KindNumbers:
		return renderArray(st, &trace.Array{Values: p.Numbers}, width)
	case problem.KindJobs:
		free := slices.Repeat([]int{-1}, problem.SlotCount(p.Jobs))
		return renderSchedule(st, &trace.Schedule{Jobs: p.Jobs, Slots: free, Current: -1, TriedSlot: -1})
	case problem.KindKnapsack:
		ratios := make([]float64, len(p.Items))
		for i, it := range p.Items {
			ratios[i] = it.Ratio()
		}
		return renderKnapsack(st, &trace.Knapsack{Items: p.Items, Ratios: ratios, Current: -1, Capacity: p.Capacity, Remaining: p.Capacity}, width)
	case problem.KindActivities:
		return renderActivities(st, &trace.Activities{Activities: p.Activities, Current: -1}, width)
	case problem.KindIntervals:
		return renderColoring(st, &trace.Coloring{Intervals: p.Intervals, CurrentEvent: -1}, width)
	}
	return ""
}

func markerFor(m trace.Markers, i int) (trace.Marker, bool) {
	for _, role := range markerOrder {
		if m.Has(role, i) {
			return role, true
		}
	}
	return "", false
}

// cell right-aligns text in a fixed six column slot.
func cell(style lipgloss.Style, text string) string {
	return style.Width(6).Align(lipgloss.Right).Render(text)
}

// rowStyle colours a list row: the one under inspection, then the chosen ones.
func rowStyle(st Styles, current, chosen bool) lipgloss.Style {
	switch {
	case current:
		return st.theme.Marker(trace.MarkComparing)
	case chosen:
		return st.theme.Marker(trace.MarkSorted)
	}
	return st.Dim
}

func renderArray(st Styles, a *trace.Array, width int) string {
	if len(a.Values) == 0 {
		return st.Dim.Render("(empty)")
	}
	if len(a.Values) > cellLimit {
		c := NewCanvas(max(width-2, 10), 8)
		c.Bars(a.Values)
		return lipgloss.NewStyle().Foreground(st.theme.Merge).Render(c.String())
	}

	cells := make([]string, len(a.Values))
	for i, v := range a.Values {
		style := st.Dim
		if role, ok := markerFor(a.Markers, i); ok {
			style = st.theme.Marker(role)
		}
		cells[i] = cell(style, fmtValue(v))
	}

	var legend []string
	for _, role := range markerOrder {
		if idx, ok := a.Markers[role]; ok && len(idx) > 0 {
			legend = append(legend, st.theme.Marker(role).Render(string(role)))
		}
	}

	out := strings.Join(cells, "")
	if len(legend) > 0 {
		out += "\n\n" + strings.Join(legend, st.Dim.Render(" · "))
	}
	return out
}

func renderSubarray(st Styles, s *trace.Subarray) string {
	if len(s.Nums) == 0 {
		return st.Dim.Render("(empty)")
	}
	var cells, under []string
	for i, v := range s.Nums {
		style := st.Dim
		mark := " "
		switch {
		case i == s.Index:
			style = st.theme.Marker(trace.MarkComparing)
			mark = "^"
		case i >= s.BestStart && i <= s.BestEnd && s.Index >= 0:
			style = st.theme.Marker(trace.MarkSorted)
		case i >= s.CandidateStart && i < s.Index:
			style = st.theme.Marker(trace.MarkRange)
		}
		cells = append(cells, cell(style, fmtValue(v)))
		under = append(under, cell(lipgloss.NewStyle(), mark))
	}
	return strings.Join(cells, "") + "\n" + strings.Join(under, "") + "\n\n" +
		st.Metric("current", fmtValue(s.CurrentSum)) + "   " + st.Metric("best", fmtValue(s.MaxSum))
}

func renderSchedule(st Styles, s *trace.Schedule) string {
	var b strings.Builder
	for i, j := range s.Jobs {
		style := rowStyle(st, i == s.Current, slices.Contains(s.Slots, j.ID))
		fmt.Fprintf(&b, "%s\n", style.Render(fmt.Sprintf("job %-3d deadline %-3d profit %s", j.ID, j.Deadline, fmtValue(j.Profit))))
	}

	b.WriteString("\n")
	boxes := make([]string, 0, len(s.Slots))
	for i, id := range s.Slots {
		style := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(st.theme.Frame).Width(5).Align(lipgloss.Center)
		text := "-"
		if id >= 0 {
			text = fmt.Sprint(id)
			style = style.Foreground(st.theme.Done)
		}
		if i == s.TriedSlot {
			style = style.BorderForeground(st.theme.Compare)
		}
		boxes = append(boxes, style.Render(text))
	}
	if len(boxes) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...) + "\n")
	}
	b.WriteString(st.Metric("profit", fmtValue(s.TotalProfit)))
	return b.String()
}

func renderKnapsack(st Styles, k *trace.Knapsack, width int) string {
	var b strings.Builder
	taken := make(map[int]float64, len(k.Taken))
	for _, sel := range k.Taken {
		taken[sel.Item.ID] = sel.Fraction
	}
	for i, it := range k.Items {
		f, chosen := taken[it.ID]
		ratio := 0.0
		if i < len(k.Ratios) {
			ratio = k.Ratios[i]
		}
		line := fmt.Sprintf("item %-3d v=%-6s w=%-6s r=%-6s", it.ID, fmtValue(it.Value), fmtValue(it.Weight), fmtValue(ratio))
		if chosen {
			line += fmt.Sprintf(" %3.0f%%", f*100)
		}
		b.WriteString(rowStyle(st, i == k.Current, chosen).Render(line) + "\n")
	}
	used := 0.0
	if k.Capacity > 0 {
		used = (k.Capacity - k.Remaining) / k.Capacity
	}
	b.WriteString("\n" + st.Meter(used, max(min(width-20, 40), 10)) + " " +
		st.Label.Render(fmtValue(k.Capacity-k.Remaining)+"/"+fmtValue(k.Capacity)))
	b.WriteString("\n" + st.Metric("value", fmtValue(k.TotalValue)))
	return b.String()
}

func renderActivities(st Styles, a *trace.Activities, width int) string {
	spans := make([]span, len(a.Activities))
	for i, act := range a.Activities {
		spans[i] = span{id: act.ID, start: act.Start, end: act.Finish}
	}
	lo, hi := spanBounds(spans)
	var b strings.Builder
	for i, sp := range spans {
		style := rowStyle(st, i == a.Current, slices.Contains(a.Selected, i))
		b.WriteString(style.Render(gantt(sp, lo, hi, width)) + "\n")
	}
	b.WriteString("\n" + st.Metric("selected", fmt.Sprint(len(a.Selected))) +
		"   " + st.Metric("last finish", fmtValue(a.LastFinish)))
	return b.String()
}

func renderColoring(st Styles, c *trace.Coloring, width int) string {
	spans := make([]span, len(c.Intervals))
	for i, iv := range c.Intervals {
		spans[i] = span{id: iv.ID, start: iv.Start, end: iv.End}
	}
	current := -1
	if c.CurrentEvent >= 0 && c.CurrentEvent < len(c.Events) {
		current = c.Events[c.CurrentEvent].IntervalID
	}
	lo, hi := spanBounds(spans)
	var b strings.Builder
	for _, sp := range spans {
		style := st.Dim
		row := gantt(sp, lo, hi, width)
		if room, ok := c.Colors[sp.id]; ok {
			style = st.theme.Room(room)
			row += fmt.Sprintf(" room %d", room)
		}
		if sp.id == current {
			style = style.Bold(true).Underline(true)
		}
		b.WriteString(style.Render(row) + "\n")
	}

	rooms := make([]string, len(c.InUse))
	for i, busy := range c.InUse {
		mark := "○"
		if busy {
			mark = "●"
		}
		rooms[i] = st.theme.Room(i).Render(mark)
	}
	if len(rooms) > 0 {
		b.WriteString("\n" + strings.Join(rooms, " "))
	}
	b.WriteString("\n" + st.Metric("active", fmt.Sprint(c.Active)) +
		"   " + st.Metric("rooms", fmt.Sprint(c.MaxRooms)))
	return b.String()
}

type span struct {
	id         int
	start, end float64
}

func spanBounds(spans []span) (lo, hi float64) {
	if len(spans) == 0 {
		return 0, 1
	}
	lo, hi = spans[0].start, spans[0].end
	for _, s := range spans {
		lo = min(lo, s.start)
		hi = max(hi, s.end)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// gantt draws one interval as a bar on a timeline spanning [lo, hi].
func gantt(s span, lo, hi float64, width int) string {
	cols := max(min(width-24, 60), 10)
	scale := float64(cols) / (hi - lo)
	from := int((s.start - lo) * scale)
	to := max(int((s.end-lo)*scale), from+1)
	to = min(to, cols)
	bar := strings.Repeat(" ", from) + strings.Repeat("█", to-from) + strings.Repeat(" ", cols-to)
	return fmt.Sprintf("%3d [%5s,%5s) %s", s.id, fmtValue(s.start), fmtValue(s.end), bar)
}

// RenderCode shows the algorithm listing with the given 1-based lines highlighted.
func RenderCode(t Theme, l *listing.Listing, lines []int) string {
	st := t.Styles()
	if l == nil {
		return st.Dim.Render("(no listing)")
	}
	var b strings.Builder
	for i, text := range l.Lines {
		n := i + 1
		style := st.Code
		if slices.Contains(lines, n) {
			style = st.CodeLive
		}
		b.WriteString(st.LineNo.Render(fmt.Sprint(n)) + " " + style.Render(text) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// scoreSeries collects a payload scalar over steps 0..current.
func scoreSeries(h *trace.History, scalar string, current int) []float64 {
	if h == nil || scalar == "" || current < 1 {
		return nil
	}
	values := make([]float64, 0, current+1)
	for i := 0; i <= current && i < h.Len(); i++ {
		s, err := h.At(i)
		if err != nil || s.Payload == nil {
			continue
		}
		if v, ok := s.Payload.Scalars()[scalar]; ok {
			values = append(values, v)
		}
	}
	if len(values) < 2 {
		return nil
	}
	return values
}

// RenderScoreChart plots a payload scalar over steps 0..current.
func RenderScoreChart(h *trace.History, scalar string, current, width int) string {
	values := scoreSeries(h, scalar, current)
	if values == nil {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(5),
		asciigraph.Width(max(min(width-12, 60), 10)),
		asciigraph.Caption(scalar),
	)
}

// RenderScoreSparkline is the one-line form of RenderScoreChart for short terminals.
func RenderScoreSparkline(t Theme, h *trace.History, scalar string, current, width int) string {
	values := scoreSeries(h, scalar, current)
	if values == nil {
		return ""
	}
	st := t.Styles()
	return st.Label.Render(scalar+" ") + st.Sparkline(values, max(min(width-len(scalar)-2, len(values)), 1))
}

func fmtValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
