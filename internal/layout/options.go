// Package layout rebuilds a two-dimensional text rendering from OCR output.
//
// Geometry-bearing output is quantized into horizontal bands and re-spaced
// from pixel gaps; flat text is run through a column heuristic aimed at
// receipts and small tables. Both are approximations tuned by Options.
package layout

import "math"

// Default tuning values.
const (
	DefaultBandHeight    = 10
	DefaultPixelsPerChar = 20
	DefaultCharAdvancePx = 7
	DefaultTabWidth      = 4
)

// DefaultColumnWidths is the slot table used by the plain-text heuristic.
var DefaultColumnWidths = []int{10, 10, 20, 10, 10}

// Options holds the heuristic tuning knobs. Non-positive values fall back to
// the defaults.
type Options struct {
	// BandHeight is the vertical bucket size, in pixels, used to group tokens into rows.
	BandHeight int
	// PixelsPerChar converts a horizontal pixel gap into a number of spaces.
	PixelsPerChar int
	// CharAdvancePx is the assumed fixed-width advance of one character.
	CharAdvancePx int
	// ColumnWidths are the slot widths for forced columns; the last one repeats.
	ColumnWidths []int
	// TabWidth is the number of spaces a tab expands to.
	TabWidth int
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	widths := make([]int, len(DefaultColumnWidths))
	copy(widths, DefaultColumnWidths)
	return Options{
		BandHeight:    DefaultBandHeight,
		PixelsPerChar: DefaultPixelsPerChar,
		CharAdvancePx: DefaultCharAdvancePx,
		ColumnWidths:  widths,
		TabWidth:      DefaultTabWidth,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.BandHeight <= 0 {
		o.BandHeight = d.BandHeight
	}
	if o.PixelsPerChar <= 0 {
		o.PixelsPerChar = d.PixelsPerChar
	}
	if o.CharAdvancePx <= 0 {
		o.CharAdvancePx = d.CharAdvancePx
	}
	if o.TabWidth <= 0 {
		o.TabWidth = d.TabWidth
	}
	widths := make([]int, 0, len(o.ColumnWidths))
	for _, w := range o.ColumnWidths {
		if w > 0 {
			widths = append(widths, w)
		}
	}
	if len(widths) == 0 {
		widths = d.ColumnWidths
	}
	o.ColumnWidths = widths
	return o
}

func (o Options) columnWidth(i int) int {
	if i >= len(o.ColumnWidths) {
		return o.ColumnWidths[len(o.ColumnWidths)-1]
	}
	return o.ColumnWidths[i]
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
