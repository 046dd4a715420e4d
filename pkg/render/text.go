package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bookfair/pkg/venue"
)

// CellWidth is the number of characters one grid column takes in text
// output.
const CellWidth = 3

var (
	colorGreen  = lipgloss.Color("35")
	colorBlue   = lipgloss.Color("75")
	colorPurple = lipgloss.Color("141")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("238")
	colorBlack  = lipgloss.Color("16")
)

var stateStyles = map[State]lipgloss.Style{
	StateAvailable:   lipgloss.NewStyle().Background(colorGreen).Foreground(colorBlack),
	StateSelected:    lipgloss.NewStyle().Background(colorBlue).Foreground(colorBlack).Bold(true),
	StateMine:        lipgloss.NewStyle().Background(colorPurple).Foreground(colorBlack),
	StateReserved:    lipgloss.NewStyle().Background(colorGray).Foreground(colorBlack),
	StatePlaceholder: lipgloss.NewStyle().Foreground(colorDim),
}

// Text renders hall as a grid, one line per row, followed by a legend.
// Stalls spanning several cells print their label in the first cell; the
// stall under the cursor is shown in reverse video.
func Text(hall venue.Hall, view View) string {
	var b strings.Builder
	for r := 0; r < hall.Rows; r++ {
		for c := 0; c < hall.Cols; {
			s, ok := hall.StallAt(r, c)
			if !ok {
				b.WriteString(strings.Repeat(" ", CellWidth))
				c++
				continue
			}
			// Width of the run of this stall's cells on this row.
			end := min(s.Col+max(s.ColSpan, 1), hall.Cols)
			width := (end - c) * CellWidth

			text := ""
			if r == s.Row && c == s.Col {
				text = Label(hall.ID, *s)
			}
			if s.Placeholder {
				text = "·"
			}
			style := stateStyles[view.StateOf(*s)]
			if view.atCursor(*s) {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(fit(text, width)))
			c = end
		}
		b.WriteByte('\n')
	}
	b.WriteString(Legend())
	return b.String()
}

// Legend returns one line explaining the text colors.
func Legend() string {
	items := []struct {
		state State
		label string
	}{
		{StateAvailable, "available"},
		{StateSelected, "selected"},
		{StateMine, "yours"},
		{StateReserved, "reserved"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = stateStyles[it.state].Render("   ") + " " + it.label
	}
	return strings.Join(parts, "  ")
}

// Summary returns "Hall {id}: {available}/{total} available".
func Summary(st venue.HallStats) string {
	return fmt.Sprintf("Hall %d: %d/%d available", st.ID, st.Available, st.Total)
}

// fit centers s in width columns, truncating it when too long.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		r = r[:width]
	}
	pad := width - len(r)
	left := pad / 2
	return strings.Repeat(" ", left) + string(r) + strings.Repeat(" ", pad-left)
}
