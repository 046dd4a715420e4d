package layout

import "testing"

func TestStallLabel(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := StallLabel(tt.index); got != tt.want {
			t.Errorf("StallLabel(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestStallIDAndName(t *testing.T) {
	if got := StallID(3, 12); got != "3-stall-12" {
		t.Errorf("StallID(3, 12) = %q", got)
	}
	if got := StallName(3, 27); got != "3-AB" {
		t.Errorf("StallName(3, 27) = %q", got)
	}
}
