package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/bookfair/pkg/venue"
)

type geometry struct {
	id                     string
	row, col, rspan, cspan int
}

func shape(stalls []venue.Stall) []geometry {
	out := make([]geometry, len(stalls))
	for i, s := range stalls {
		out[i] = geometry{s.ID, s.Row, s.Col, s.RowSpan, s.ColSpan}
	}
	return out
}

func TestGenerateGeometryDependsOnMapOnly(t *testing.T) {
	for mapID := 1; mapID <= 10; mapID++ {
		base := shape(Generate(mapID, "1"))
		for _, event := range []string{"", "default", "2", "bookfair-2025"} {
			if got := shape(Generate(mapID, event)); !reflect.DeepEqual(got, base) {
				t.Errorf("map %d: geometry differs for event %q", mapID, event)
			}
		}
	}
}

func TestGenerateRepeatable(t *testing.T) {
	a := Generate(4, "17")
	b := Generate(4, "17")
	if !reflect.DeepEqual(a, b) {
		t.Error("Generate is not repeatable for the same map and event")
	}
}

func TestGenerateTilesValidCells(t *testing.T) {
	valid := make(map[venue.Cell]bool)
	for _, c := range Default.ValidCells() {
		valid[c] = true
	}

	for mapID := 0; mapID <= 50; mapID++ {
		seen := make(map[venue.Cell]string)
		for _, s := range Generate(mapID, "x") {
			for _, cell := range s.Cells() {
				if !valid[cell] {
					t.Fatalf("map %d: stall %s covers invalid cell %v", mapID, s.ID, cell)
				}
				if other, dup := seen[cell]; dup {
					t.Fatalf("map %d: cell %v covered by %s and %s", mapID, cell, other, s.ID)
				}
				seen[cell] = s.ID
			}
		}
		if len(seen) != len(valid) {
			t.Errorf("map %d: covered %d cells, want %d", mapID, len(seen), len(valid))
		}
	}
}

func TestGenerateStallShape(t *testing.T) {
	for mapID := 1; mapID <= 20; mapID++ {
		for i, s := range Generate(mapID, "") {
			if s.RowSpan != 1 && s.ColSpan != 1 {
				t.Errorf("map %d: %s spans %dx%d, want a single row or column", mapID, s.ID, s.RowSpan, s.ColSpan)
			}
			span := max(s.RowSpan, s.ColSpan)
			if span < 1 || span > 3 {
				t.Errorf("map %d: %s span %d out of range", mapID, s.ID, span)
			}
			if s.Size != venue.SizeForSpan(span) {
				t.Errorf("map %d: %s size %s, want %s", mapID, s.ID, s.Size, venue.SizeForSpan(span))
			}
			if s.ID != StallID(mapID, i) || s.Name != StallName(mapID, i) {
				t.Errorf("map %d: stall %d named %s/%s", mapID, i, s.ID, s.Name)
			}
			if s.Status != venue.StatusAvailable && s.Status != venue.StatusReserved {
				t.Errorf("map %d: %s has status %q", mapID, s.ID, s.Status)
			}
		}
	}
}

func TestGenerateFirstStallAtOrigin(t *testing.T) {
	stalls := Generate(1, "")
	if len(stalls) == 0 {
		t.Fatal("no stalls generated")
	}
	first := stalls[0]
	if first.Row != 0 || first.Col != 0 {
		t.Errorf("first stall at (%d,%d), want (0,0)", first.Row, first.Col)
	}
	// Top wall runs horizontally.
	if first.RowSpan != 1 {
		t.Errorf("first stall RowSpan = %d, want 1", first.RowSpan)
	}
}

func TestGenerateStatusMix(t *testing.T) {
	var reserved, total int
	for mapID := 1; mapID <= 30; mapID++ {
		for _, s := range Generate(mapID, "default") {
			total++
			if s.Reserved() {
				reserved++
			}
		}
	}
	if reserved == 0 || reserved == total {
		t.Errorf("reserved %d of %d, want a mix", reserved, total)
	}
}

func TestGenerateSingleCellWhenBlocked(t *testing.T) {
	// On a 1x1 grid nothing can extend.
	g := Grid{Rows: 1, Cols: 1, InnerRowStart: 5, InnerRowEnd: 5, InnerColStart: 5, InnerColEnd: 5}
	stalls := g.Generate(9, "")
	if len(stalls) != 1 {
		t.Fatalf("len = %d, want 1", len(stalls))
	}
	if stalls[0].RowSpan != 1 || stalls[0].ColSpan != 1 || stalls[0].Size != venue.SizeSmall {
		t.Errorf("stall = %+v, want a small 1x1", stalls[0])
	}
}

func TestGenerateHall(t *testing.T) {
	h := GenerateHall(2, "5")
	if h.ID != 2 || h.Rows != Default.Rows || h.Cols != Default.Cols {
		t.Errorf("hall header = %d %dx%d", h.ID, h.Rows, h.Cols)
	}
	if !reflect.DeepEqual(h.Stalls, Generate(2, "5")) {
		t.Error("hall stalls differ from Generate")
	}
}
