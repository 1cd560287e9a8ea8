package config

import "fmt"

// Layout masks the cells a placement attempt may put instructions on. Rows
// repeat as BandRows instruction rows followed by GapRows routing rows, and
// columns likewise. The cells left out stay free for movers.
type Layout struct {
	Name     string
	BandRows int
	GapRows  int
	BandCols int
	GapCols  int
}

// Allows reports whether an instruction may sit at (x, y).
func (l Layout) Allows(x, y int) bool {
	return y%(l.BandRows+l.GapRows) < l.BandRows &&
		x%(l.BandCols+l.GapCols) < l.BandCols
}

// Capacity counts the cells of a width x height grid the layout allows.
func (l Layout) Capacity(width, height int) int {
	n := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if l.Allows(x, y) {
				n++
			}
		}
	}

	return n
}

func (l Layout) validate() error {
	if l.BandRows < 1 || l.BandCols < 1 || l.GapRows < 0 || l.GapCols < 0 {
		return fmt.Errorf("layout %q: bands must be positive and gaps non-negative", l.Name)
	}

	return nil
}

// Dense allows every cell.
var Dense = Layout{Name: "dense", BandRows: 1, BandCols: 1}

// DefaultLayouts returns the layouts tried for a grid of the given width,
// from the one leaving the most routing room to Dense.
func DefaultLayouts(width int) []Layout {
	band, gap := width-1, 1
	if width < 2 {
		band, gap = width, 0
	}

	return []Layout{
		{Name: "laned", BandRows: 1, GapRows: 2, BandCols: band, GapCols: gap},
		{Name: "gridded", BandRows: 1, GapRows: 2, BandCols: 4, GapCols: 2},
		{Name: "spaced", BandRows: 1, GapRows: 1, BandCols: band, GapCols: gap},
		{Name: "compact", BandRows: 2, GapRows: 1, BandCols: band, GapCols: gap},
		Dense,
	}
}
