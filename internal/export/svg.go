package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/algoviz/internal/trace"
)

const (
	background = "#0a0a0a"
	foreground = "#d0d0d0"
	plain      = "#4a6fa5"
)

var markerColors = []struct {
	marker trace.Marker
	color  string
}{
	// earlier entries win when an index holds several roles
	{trace.MarkSwapping, "#ff5f5f"},
	{trace.MarkComparing, "#ffd75f"},
	{trace.MarkPivot, "#d787ff"},
	{trace.MarkKey, "#ff875f"},
	{trace.MarkMerging, "#5fd7ff"},
	{trace.MarkSorted, "#5fd75f"},
}

var roomColors = []string{"#5fd7ff", "#ffd75f", "#5fd75f", "#d787ff", "#ff875f", "#87afff", "#ff5f87", "#afd75f"}

// SnapshotSVG draws one snapshot with its explanation as a caption.
func SnapshotSVG(s trace.Snapshot, width, height int) string {
	var sb strings.Builder
	header(&sb, width, height)

	body := float64(height) - 40
	switch p := s.Payload.(type) {
	case *trace.Array:
		arraySVG(&sb, p, float64(width), body)
	case *trace.Subarray:
		subarraySVG(&sb, p, float64(width), body)
	case *trace.Schedule:
		scheduleSVG(&sb, p, float64(width), body)
	case *trace.Knapsack:
		knapsackSVG(&sb, p, float64(width), body)
	case *trace.Activities:
		activitiesSVG(&sb, p, float64(width), body)
	case *trace.Coloring:
		coloringSVG(&sb, p, float64(width), body)
	}

	fmt.Fprintf(&sb, `<text x="10" y="%d" fill="%s" font-family="monospace" font-size="14">[%s] %s</text>
`, height-14, foreground, s.Label, html.EscapeString(s.Explanation))
	sb.WriteString("</svg>")
	return sb.String()
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func barColor(m trace.Markers, i int) string {
	for _, mc := range markerColors {
		if m.Has(mc.marker, i) {
			return mc.color
		}
	}
	return plain
}

func bounds(values []float64) (lo, hi float64) {
	lo, hi = 0, 0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func bars(sb *strings.Builder, values []float64, width, height float64, color func(int) string) {
	if len(values) == 0 {
		return
	}
	lo, hi := bounds(values)
	scale := (height - 20) / (hi - lo)
	zero := 10 + hi*scale
	w := width / float64(len(values))

	for i, v := range values {
		top, h := zero-v*scale, v*scale
		if v < 0 {
			top, h = zero, -v*scale
		}
		fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(i)*w+1, top, math.Max(w-2, 1), h, color(i))
		fmt.Fprintf(sb, `<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="10" text-anchor="middle">%s</text>
`, float64(i)*w+w/2, zero+12, foreground, fmtNum(v))
	}
}

func arraySVG(sb *strings.Builder, p *trace.Array, width, height float64) {
	bars(sb, p.Values, width, height, func(i int) string { return barColor(p.Markers, i) })
}

func subarraySVG(sb *strings.Builder, p *trace.Subarray, width, height float64) {
	bars(sb, p.Nums, width, height, func(i int) string {
		switch {
		case i == p.Index:
			return "#ffd75f"
		case i >= p.BestStart && i <= p.BestEnd:
			return "#5fd75f"
		case i >= p.CandidateStart && i < p.Index:
			return "#5fd7ff"
		}
		return plain
	})
}

func scheduleSVG(sb *strings.Builder, p *trace.Schedule, width, height float64) {
	if len(p.Slots) == 0 {
		return
	}
	w := width / float64(len(p.Slots))
	y := height / 3
	for i, id := range p.Slots {
		fill := "#1c1c1c"
		label := "free"
		if id >= 0 {
			fill, label = "#5fd75f", fmt.Sprintf("job %d", id)
		}
		if i == p.TriedSlot {
			fill = "#ffd75f"
		}
		fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>
<text x="%.1f" y="%.1f" font-family="monospace" font-size="12" text-anchor="middle">%s</text>
`, float64(i)*w+2, y, w-4, y, fill, foreground, float64(i)*w+w/2, y*1.5+4, label)
	}
}

func knapsackSVG(sb *strings.Builder, p *trace.Knapsack, width, height float64) {
	if p.Capacity <= 0 {
		return
	}
	y, h := height/3, height/3
	fmt.Fprintf(sb, `<rect x="10" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>
`, y, width-20, h, foreground)
	x := 10.0
	for i, sel := range p.Taken {
		w := (width - 20) * sel.Weight() / p.Capacity
		fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
<text x="%.1f" y="%.1f" font-family="monospace" font-size="11" text-anchor="middle">#%d %s</text>
`, x, y, w, h, roomColors[i%len(roomColors)], x+w/2, y+h/2+4, sel.Item.ID, fmtNum(sel.Fraction))
		x += w
	}
}

type span struct {
	id         int
	start, end float64
	row        int
	fill       string
}

func timeline(sb *strings.Builder, spans []span, rows int, width, height float64) {
	if len(spans) == 0 {
		return
	}
	lo, hi := spans[0].start, spans[0].end
	for _, s := range spans {
		lo = math.Min(lo, s.start)
		hi = math.Max(hi, s.end)
	}
	if hi == lo {
		hi = lo + 1
	}
	scale := (width - 20) / (hi - lo)
	rowH := math.Min((height-20)/float64(max(rows, 1)), 28)

	for _, s := range spans {
		x := 10 + (s.start-lo)*scale
		y := 10 + float64(s.row)*rowH
		fmt.Fprintf(sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
<text x="%.1f" y="%.1f" font-family="monospace" font-size="10">%d</text>
`, x, y, math.Max((s.end-s.start)*scale, 2), rowH-4, s.fill, x+2, y+rowH/2+2, s.id)
	}
}

func activitiesSVG(sb *strings.Builder, p *trace.Activities, width, height float64) {
	selected := make(map[int]bool, len(p.Selected))
	for _, i := range p.Selected {
		selected[i] = true
	}
	spans := make([]span, len(p.Activities))
	for i, a := range p.Activities {
		fill := plain
		switch {
		case i == p.Current:
			fill = "#ffd75f"
		case selected[i]:
			fill = "#5fd75f"
		}
		spans[i] = span{id: a.ID, start: a.Start, end: a.Finish, row: i, fill: fill}
	}
	timeline(sb, spans, len(spans), width, height)
}

func coloringSVG(sb *strings.Builder, p *trace.Coloring, width, height float64) {
	rooms := len(p.InUse)
	spans := make([]span, 0, len(p.Intervals))
	for _, iv := range p.Intervals {
		// unassigned intervals sit in a row below the rooms
		sp := span{id: iv.ID, start: iv.Start, end: iv.End, row: rooms, fill: "#3a3a3a"}
		if room, ok := p.Colors[iv.ID]; ok {
			sp.row, sp.fill = room, roomColors[room%len(roomColors)]
		}
		spans = append(spans, sp)
	}
	timeline(sb, spans, rooms+1, width, height)
}

// SeriesSVG plots one scalar across steps as a polyline.
func SeriesSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func fmtNum(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*100)/100)
}
