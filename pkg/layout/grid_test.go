package layout

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		r, c int
		want bool
	}{
		{"top-left corner", 0, 0, true},
		{"top wall", 0, 6, true},
		{"bottom wall", 5, 7, true},
		{"left wall", 3, 0, true},
		{"right wall", 2, 12, true},
		{"inner top-left", 2, 4, true},
		{"inner top edge", 2, 6, true},
		{"inner bottom-right", 3, 8, true},
		{"walkway", 1, 1, false},
		{"walkway beside inner block", 2, 3, false},
		{"walkway right of inner block", 3, 9, false},
		{"walkway above inner block", 1, 6, false},
		{"out of bounds row", 6, 0, false},
		{"out of bounds col", 0, 13, false},
		{"negative", -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Default.Valid(tt.r, tt.c); got != tt.want {
				t.Errorf("Valid(%d, %d) = %v, want %v", tt.r, tt.c, got, tt.want)
			}
		})
	}
}

func TestValidCells(t *testing.T) {
	cells := Default.ValidCells()

	// 34 border cells + 10 on the inner rectangle.
	if len(cells) != 44 {
		t.Fatalf("len(ValidCells()) = %d, want 44", len(cells))
	}

	for i := 1; i < len(cells); i++ {
		prev, cur := cells[i-1], cells[i]
		if cur.Row < prev.Row || (cur.Row == prev.Row && cur.Col <= prev.Col) {
			t.Fatalf("cells not in row-major order at %d: %v after %v", i, cur, prev)
		}
	}
}

func TestValidCustomGrid(t *testing.T) {
	g := Grid{Rows: 3, Cols: 3, InnerRowStart: 1, InnerRowEnd: 1, InnerColStart: 1, InnerColEnd: 1}
	// Every cell of a 3x3 grid is border or the single inner cell.
	if n := len(g.ValidCells()); n != 9 {
		t.Errorf("len(ValidCells()) = %d, want 9", n)
	}
}
