package layout

import "github.com/matzehuels/bookfair/pkg/venue"

// DefaultEventID seeds availability when no event is given.
const DefaultEventID = "default"

// reservedThreshold is the status draw above which a generated stall is
// reserved (roughly 30% of stalls).
const reservedThreshold = 0.7

// Generate builds the procedural floor plan for mapID on the default grid.
func Generate(mapID int, eventID string) []venue.Stall {
	return Default.Generate(mapID, eventID)
}

// GenerateHall wraps [Generate] in a hall.
func GenerateHall(mapID int, eventID string) venue.Hall {
	return Default.GenerateHall(mapID, eventID)
}

// GenerateHall wraps [Grid.Generate] in a hall sized to g.
func (g Grid) GenerateHall(mapID int, eventID string) venue.Hall {
	return venue.Hall{ID: mapID, Rows: g.Rows, Cols: g.Cols, Stalls: g.Generate(mapID, eventID)}
}

// Generate tiles every valid cell of g with stalls of one to three cells.
//
// Cells are visited in row-major order. At each free cell a target span is
// drawn (1 with p=0.33, otherwise 2 or 3 with equal odds), a direction is
// chosen from the open neighbours, and the span is clipped to the run of free
// valid cells in that direction. When neither neighbour is open the stall is
// a single cell.
func (g Grid) Generate(mapID int, eventID string) []venue.Stall {
	layoutRand := NewLCG(LayoutSeed(mapID))
	statusRand := NewLCG(StatusSeed(mapID, eventID))
	occ := newOccupancy(g)

	var stalls []venue.Stall
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if !occ.free(r, c) {
				continue
			}

			span := drawSpan(layoutRand)
			right := occ.free(r, c+1)
			down := occ.free(r+1, c)

			horizontal := true
			switch {
			case right && !down:
				horizontal = true
			case down && !right:
				horizontal = false
			case right && down:
				horizontal = g.horizontalRow(r)
			default:
				span = 1
			}

			size := 1
			for size < span {
				nr, nc := r, c+size
				if !horizontal {
					nr, nc = r+size, c
				}
				if !occ.free(nr, nc) {
					break
				}
				size++
			}

			n := len(stalls)
			s := venue.Stall{
				ID:      StallID(mapID, n),
				Name:    StallName(mapID, n),
				Row:     r,
				Col:     c,
				RowSpan: 1,
				ColSpan: 1,
				Status:  venue.StatusAvailable,
				Size:    venue.SizeForSpan(size),
			}
			if horizontal {
				s.ColSpan = size
			} else {
				s.RowSpan = size
			}
			if statusRand.Float64() > reservedThreshold {
				s.Status = venue.StatusReserved
			}

			occ.claim(s)
			stalls = append(stalls, s)
		}
	}
	return stalls
}

func drawSpan(rng *LCG) int {
	if rng.Float64() < 0.33 {
		return 1
	}
	if rng.Float64() < 0.5 {
		return 2
	}
	return 3
}
