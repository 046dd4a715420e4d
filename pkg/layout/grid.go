package layout

import "github.com/matzehuels/bookfair/pkg/venue"

// Grid describes the hall geometry: the overall size and the inner
// rectangle whose boundary holds the middle block of stalls. Inner bounds
// are inclusive.
type Grid struct {
	Rows          int
	Cols          int
	InnerRowStart int
	InnerRowEnd   int
	InnerColStart int
	InnerColEnd   int
}

// Default is the standard bookfair hall: 6x13 with an inner rectangle on
// rows 2-3 and columns 4-8.
var Default = Grid{
	Rows:          6,
	Cols:          13,
	InnerRowStart: 2,
	InnerRowEnd:   3,
	InnerColStart: 4,
	InnerColEnd:   8,
}

// InBounds reports whether (r, c) lies inside the grid.
func (g Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Rows && c >= 0 && c < g.Cols
}

// Valid reports whether a stall may occupy (r, c): the cell is on the grid
// border or on the boundary of the inner rectangle.
func (g Grid) Valid(r, c int) bool {
	if !g.InBounds(r, c) {
		return false
	}
	border := r == 0 || r == g.Rows-1 || c == 0 || c == g.Cols-1
	innerRow := r == g.InnerRowStart || r == g.InnerRowEnd
	innerCol := c == g.InnerColStart || c == g.InnerColEnd
	innerBoundary := (innerRow && c >= g.InnerColStart && c <= g.InnerColEnd) ||
		(innerCol && r >= g.InnerRowStart && r <= g.InnerRowEnd)
	return border || innerBoundary
}

// ValidCells lists the usable cells in row-major order.
func (g Grid) ValidCells() []venue.Cell {
	var cells []venue.Cell
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.Valid(r, c) {
				cells = append(cells, venue.Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// horizontalRow reports whether stalls starting on row r should run along
// the row when both directions are open: the top and bottom walls of the
// hall and of the inner rectangle.
func (g Grid) horizontalRow(r int) bool {
	return r == 0 || r == g.Rows-1 || r == g.InnerRowStart || r == g.InnerRowEnd
}

// occupancy tracks claimed cells during a fill pass.
type occupancy struct {
	grid  Grid
	taken map[venue.Cell]bool
}

func newOccupancy(g Grid) *occupancy {
	return &occupancy{grid: g, taken: make(map[venue.Cell]bool)}
}

func (o *occupancy) free(r, c int) bool {
	return o.grid.Valid(r, c) && !o.taken[venue.Cell{Row: r, Col: c}]
}

func (o *occupancy) claim(s venue.Stall) {
	for _, cell := range s.Cells() {
		o.taken[cell] = true
	}
}
