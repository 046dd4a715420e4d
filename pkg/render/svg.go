package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/bookfair/pkg/venue"
)

var stateFills = map[State]string{
	StateAvailable:   "#4ade80",
	StateSelected:    "#60a5fa",
	StateMine:        "#a78bfa",
	StateReserved:    "#9ca3af",
	StatePlaceholder: "#e5e7eb",
}

// SVGOption configures [SVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cell  float64
	gap   float64
	view  View
	title string
}

// WithCellSize sets the side of one grid cell in pixels (default 48).
func WithCellSize(px float64) SVGOption { return func(r *svgRenderer) { r.cell = px } }

// WithView classifies stalls for a user.
func WithView(v View) SVGOption { return func(r *svgRenderer) { r.view = v } }

// WithTitle adds a heading above the grid.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// SVG renders hall as a standalone SVG document.
func SVG(hall venue.Hall, opts ...SVGOption) []byte {
	r := svgRenderer{cell: 48, gap: 4}
	for _, opt := range opts {
		opt(&r)
	}

	top := 0.0
	if r.title != "" {
		top = r.cell * 0.75
	}
	width := float64(hall.Cols) * r.cell
	height := top + float64(hall.Rows)*r.cell

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect class="floor" x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" text-anchor="middle">%s</text>`+"\n",
			width/2, top*0.7, r.cell*0.4, html.EscapeString(r.title))
	}
	for _, s := range hall.Stalls {
		r.stall(&buf, hall.ID, s, top)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) stall(buf *bytes.Buffer, hallID int, s venue.Stall, top float64) {
	state := r.view.StateOf(s)
	x := float64(s.Col)*r.cell + r.gap/2
	y := top + float64(s.Row)*r.cell + r.gap/2
	w := float64(max(s.ColSpan, 1))*r.cell - r.gap
	h := float64(max(s.RowSpan, 1))*r.cell - r.gap

	fmt.Fprintf(buf, `  <g class="stall %s" id="stall-%s">`+"\n", state, html.EscapeString(s.ID))
	fmt.Fprintf(buf, `    <title>%s</title>`+"\n", html.EscapeString(tooltip(s, state)))
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="#374151" stroke-width="1"/>`+"\n",
		x, y, w, h, stateFills[state])
	if !s.Placeholder {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			x+w/2, y+h/2, r.cell*0.3, html.EscapeString(Label(hallID, s)))
	}
	buf.WriteString("  </g>\n")
}

func tooltip(s venue.Stall, state State) string {
	if s.Placeholder {
		return "Not available"
	}
	return fmt.Sprintf("%s (%s) - %s", s.Name, s.Size, state)
}
