package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

const (
	// Rows reserved above and below the play field for the HUD.
	hudTop    = 1
	hudBottom = 1
)

// Canvas maps play-field coordinates onto terminal cells. It satisfies
// game.Surface.
type Canvas struct {
	screen         *Screen
	fieldW, fieldH float64
	cols, rows     int
	sx, sy         float64
}

// NewCanvas creates a canvas for a field of the given size, fitted to the
// current screen size.
func NewCanvas(screen *Screen, fieldW, fieldH float64) *Canvas {
	c := &Canvas{screen: screen, fieldW: fieldW, fieldH: fieldH}
	c.Resize()
	return c
}

// Resize refits the canvas after the terminal changes size.
func (c *Canvas) Resize() {
	w, h := c.screen.Size()
	c.cols = max(w, 1)
	c.rows = max(h-hudTop-hudBottom, 1)
	c.sx = float64(c.cols) / c.fieldW
	c.sy = float64(c.rows) / c.fieldH
}

// Cell converts a field position to a screen cell.
func (c *Canvas) Cell(x, y float64) (int, int) {
	return int(math.Floor(x * c.sx)), int(math.Floor(y*c.sy)) + hudTop
}

func (c *Canvas) inField(col, row int) bool {
	return col >= 0 && col < c.cols && row >= hudTop && row < hudTop+c.rows
}

func (c *Canvas) FillRect(x, y, w, h float64, color string) {
	c0, r0 := c.Cell(x, y)
	c1, r1 := c.Cell(x+w, y+h)
	c1 = max(c1, c0+1)
	r1 = max(r1, r0+1)

	style := tcell.StyleDefault.Background(tcell.GetColor(color))
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if c.inField(col, row) {
				c.screen.SetCell(col, row, style, ' ')
			}
		}
	}
}

func (c *Canvas) FillCircle(x, y, radius float64, color string, alpha float64) {
	glyph := glyphFor(alpha)
	if glyph == 0 {
		return
	}
	fg := tcell.GetColor(color)

	rx, ry := radius*c.sx, radius*c.sy
	if rx < 1 && ry < 1 {
		c.plot(x, y, fg, glyph)
		return
	}
	c0, r0 := c.Cell(x-radius, y-radius)
	c1, r1 := c.Cell(x+radius, y+radius)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			// cell centre back in field units
			fx := (float64(col) + 0.5) / c.sx
			fy := (float64(row-hudTop) + 0.5) / c.sy
			if math.Hypot(fx-x, fy-y) <= radius && c.inField(col, row) {
				c.screen.SetCell(col, row, c.screen.Style(col, row).Foreground(fg), glyph)
			}
		}
	}
	c.plot(x, y, fg, glyph)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, color string) {
	fg := tcell.GetColor(color)
	ca, ra := c.Cell(x1, y1)
	cb, rb := c.Cell(x2, y2)
	steps := max(abs(cb-ca), abs(rb-ra), 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.plot(x1+(x2-x1)*t, y1+(y2-y1)*t, fg, '∙')
	}
}

func (c *Canvas) plot(x, y float64, fg tcell.Color, glyph rune) {
	col, row := c.Cell(x, y)
	if c.inField(col, row) {
		c.screen.SetCell(col, row, c.screen.Style(col, row).Foreground(fg), glyph)
	}
}

// glyphFor picks a denser glyph for more opaque circles; 0 means invisible.
func glyphFor(alpha float64) rune {
	switch {
	case alpha >= 0.7:
		return '●'
	case alpha >= 0.35:
		return '•'
	case alpha > 0.05:
		return '·'
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
