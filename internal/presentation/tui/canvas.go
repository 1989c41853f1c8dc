package tui

import (
	"math"

	charts "github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/aretw0/drake/pkg/dom"
	"github.com/charmbracelet/lipgloss"
)

type paint int

const (
	paintNone paint = iota
	paintBorder
	paintTitle
	paintItem
	paintLocked
	paintTransit
	paintMirror
)

var plainStyle = lipgloss.NewStyle()

// canvas paints the board into an ntcharts cell grid. Writes outside of it
// are clipped.
type canvas struct {
	grid   charts.Model
	styles map[paint]lipgloss.Style
}

func newCanvas(w, h int, styles map[paint]lipgloss.Style) *canvas {
	c := &canvas{grid: charts.New(w, h), styles: styles}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.set(x, y, ' ', paintNone)
		}
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	st, ok := c.styles[p]
	if !ok {
		st = plainStyle
	}
	c.grid.SetCell(charts.Point{X: x, Y: y}, charts.NewCellWithStyle(r, st))
}

// bounds converts a node rect to whole cells.
func bounds(r dom.Rect) (x, y, w, h int) {
	return int(math.Floor(r.X)), int(math.Floor(r.Y)), int(math.Round(r.W)), int(math.Round(r.H))
}

func (c *canvas) fill(r dom.Rect, p paint) {
	x0, y0, w, h := bounds(r)
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			c.set(x, y, ' ', p)
		}
	}
}

func (c *canvas) box(r dom.Rect, p paint) {
	x0, y0, w, h := bounds(r)
	if w < 2 || h < 2 {
		c.fill(r, p)
		return
	}
	x1, y1 := x0+w-1, y0+h-1
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, '─', p)
		c.set(x, y1, '─', p)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, '│', p)
		c.set(x1, y, '│', p)
	}
	c.set(x0, y0, '┌', p)
	c.set(x1, y0, '┐', p)
	c.set(x0, y1, '└', p)
	c.set(x1, y1, '┘', p)
}

// text writes s from (x, y), truncated to limit cells.
func (c *canvas) text(x, y, limit int, s string, p paint) {
	i := 0
	for _, r := range s {
		if i >= limit {
			return
		}
		c.set(x+i, y, r, p)
		i++
	}
}

func (c *canvas) render() string {
	return c.grid.View()
}
