package viz

import "strings"

const brailleBlank = 0x2800

// dotBits[y][x] is the braille bit for dot (x, y) inside one 2x4 cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dots: a canvas of
// Width x Height cells holds 2*Width x 4*Height dots, origin top left.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the dot at (x, y); dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.Grid[y/4][x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = brailleBlank
		}
	}
}

// FillColumn sets every dot of column x from y0 down to the bottom edge.
func (c *Canvas) FillColumn(x, y0 int) {
	for y := max(y0, 0); y < c.Height*4; y++ {
		c.Set(x, y)
	}
}

// Bars draws values as vertical bars on a baseline, scaled so the largest
// value reaches the top row. Negative values draw as empty columns.
func (c *Canvas) Bars(values []float64) {
	c.Clear()
	if len(values) == 0 {
		return
	}
	hi := values[0]
	for _, v := range values {
		hi = max(hi, v)
	}
	if hi <= 0 {
		hi = 1
	}
	w, h := c.Width*2, c.Height*4
	for x := 0; x < w; x++ {
		c.Set(x, h-1)
	}
	pitch := max(w/len(values), 1)
	thick := max(pitch-1, 1)
	for i, v := range values {
		top := h - 1 - int(max(v, 0)/hi*float64(h-1))
		for dx := range thick {
			c.FillColumn(i*pitch+dx, top)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
