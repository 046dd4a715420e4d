// Package venue defines the floor-plan model shared by the layout engine,
// the reservation state and the renderers.
//
// A [Hall] is a rectangular grid of cells. Each [Stall] covers a disjoint
// rectangle of cells given by its top-left position and its spans.
package venue

// Status is the bookability of a stall.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
)

// Size is the footprint class of a stall.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// SizeForSpan maps a span of 1, 2 or 3 cells to a size. Anything above 2
// is large, anything below 2 small.
func SizeForSpan(span int) Size {
	switch {
	case span <= 1:
		return SizeSmall
	case span == 2:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// Span returns the number of cells a stall of this size covers along its
// long side.
func (s Size) Span() int {
	switch s {
	case SizeLarge:
		return 3
	case SizeMedium:
		return 2
	default:
		return 1
	}
}

// Stall is one bookable unit on a hall grid.
type Stall struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	RowSpan int      `json:"rowSpan"`
	ColSpan int      `json:"colSpan"`
	Status  Status   `json:"status"`
	Size    Size     `json:"size"`
	Genres  []string `json:"genres,omitempty"`

	// Placeholder marks filler stalls that occupy unused cells and are never
	// bookable.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Reserved reports whether the stall can no longer be booked.
func (s Stall) Reserved() bool { return s.Status == StatusReserved }

// Cell is a grid coordinate.
type Cell struct {
	Row int
	Col int
}

// Cells returns every grid cell the stall covers.
func (s Stall) Cells() []Cell {
	rs, cs := max(s.RowSpan, 1), max(s.ColSpan, 1)
	cells := make([]Cell, 0, rs*cs)
	for i := 0; i < rs; i++ {
		for j := 0; j < cs; j++ {
			cells = append(cells, Cell{Row: s.Row + i, Col: s.Col + j})
		}
	}
	return cells
}

// Covers reports whether the stall covers (row, col).
func (s Stall) Covers(row, col int) bool {
	return row >= s.Row && row < s.Row+max(s.RowSpan, 1) &&
		col >= s.Col && col < s.Col+max(s.ColSpan, 1)
}

// Hall is one contiguous floor area.
type Hall struct {
	ID     int     `json:"id"`
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Stalls []Stall `json:"stalls"`
}

// StallAt returns the stall covering (row, col).
func (h *Hall) StallAt(row, col int) (*Stall, bool) {
	for i := range h.Stalls {
		if h.Stalls[i].Covers(row, col) {
			return &h.Stalls[i], true
		}
	}
	return nil, false
}

// Find returns the stall with the given id.
func (h *Hall) Find(id string) (*Stall, bool) {
	for i := range h.Stalls {
		if h.Stalls[i].ID == id {
			return &h.Stalls[i], true
		}
	}
	return nil, false
}

// Bookable returns the stalls that are not placeholders, in layout order.
func (h *Hall) Bookable() []Stall {
	out := make([]Stall, 0, len(h.Stalls))
	for _, s := range h.Stalls {
		if !s.Placeholder {
			out = append(out, s)
		}
	}
	return out
}

// HallStats summarizes one hall.
type HallStats struct {
	ID        int `json:"id"`
	Total     int `json:"total"`
	Available int `json:"available"`
}

// Stats counts total and available stalls per hall, preserving hall order.
// Placeholders count toward the total, as they occupy floor space.
func Stats(halls []Hall) []HallStats {
	out := make([]HallStats, len(halls))
	for i, h := range halls {
		out[i] = HallStats{ID: h.ID, Total: len(h.Stalls)}
		for _, s := range h.Stalls {
			if s.Status == StatusAvailable {
				out[i].Available++
			}
		}
	}
	return out
}
