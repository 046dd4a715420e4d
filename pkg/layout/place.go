package layout

import (
	"fmt"

	"github.com/matzehuels/bookfair/pkg/venue"
)

// PlaceholderName is the display name of filler stalls.
const PlaceholderName = "—"

// Place arranges backend stalls on g for the given hall.
//
// Each stall runs horizontally for its size's span (1, 2 or 3 cells). Valid
// cells are tried in row-major order and the cursor only moves forward: a
// stall goes to the first remaining cell where its whole span is valid and
// free. Once the cursor runs out, the rest are returned as overflow.
// Unused valid cells are then filled with reserved 1x1 placeholders named
// [PlaceholderName] with ids "empty-{hall}-{index}", where index is the
// cell's position in the valid-cell list.
func (g Grid) Place(hallID int, stalls []venue.Stall) (venue.Hall, []venue.Stall) {
	cells := g.ValidCells()
	occ := newOccupancy(g)
	hall := venue.Hall{ID: hallID, Rows: g.Rows, Cols: g.Cols}

	pos := 0
	var overflow []venue.Stall
	for i, s := range stalls {
		span := s.Size.Span()
		placed := false
		for pos < len(cells) && !placed {
			cell := cells[pos]
			pos++
			if !occ.fitsRow(cell.Row, cell.Col, span) {
				continue
			}
			s.Row, s.Col = cell.Row, cell.Col
			s.RowSpan, s.ColSpan = 1, span
			occ.claim(s)
			hall.Stalls = append(hall.Stalls, s)
			placed = true
		}
		if !placed {
			overflow = append(overflow, stalls[i:]...)
			break
		}
	}

	for i, cell := range cells {
		if !occ.free(cell.Row, cell.Col) {
			continue
		}
		hall.Stalls = append(hall.Stalls, venue.Stall{
			ID:          placeholderID(hallID, i),
			Name:        PlaceholderName,
			Row:         cell.Row,
			Col:         cell.Col,
			RowSpan:     1,
			ColSpan:     1,
			Status:      venue.StatusReserved,
			Size:        venue.SizeSmall,
			Placeholder: true,
		})
	}
	return hall, overflow
}

// Place arranges stalls on the default grid.
func Place(hallID int, stalls []venue.Stall) (venue.Hall, []venue.Stall) {
	return Default.Place(hallID, stalls)
}

func (o *occupancy) fitsRow(r, c, span int) bool {
	if c+span > o.grid.Cols {
		return false
	}
	for cc := c; cc < c+span; cc++ {
		if !o.free(r, cc) {
			return false
		}
	}
	return true
}

func placeholderID(hallID, index int) string {
	return fmt.Sprintf("empty-%d-%d", hallID, index)
}
