package render

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/bookfair/pkg/venue"
)

// State is how a stall appears to the current user.
type State string

const (
	StateAvailable   State = "available"
	StateSelected    State = "selected"
	StateMine        State = "mine"
	StateReserved    State = "reserved"
	StatePlaceholder State = "placeholder"
)

// View classifies stalls for one user. The zero value shows plain
// availability.
type View struct {
	Cart   []string    // ids of selected stalls
	Mine   []string    // ids of the user's reserved stalls
	Cursor *venue.Cell // cell under the cursor, highlighted in text output
}

// StateOf returns the state of s under v.
func (v View) StateOf(s venue.Stall) State {
	switch {
	case s.Placeholder:
		return StatePlaceholder
	case slices.Contains(v.Mine, s.ID):
		return StateMine
	case s.Reserved():
		return StateReserved
	case slices.Contains(v.Cart, s.ID):
		return StateSelected
	default:
		return StateAvailable
	}
}

// atCursor reports whether the cursor lies on s.
func (v View) atCursor(s venue.Stall) bool {
	return v.Cursor != nil && s.Covers(v.Cursor.Row, v.Cursor.Col)
}

// Label returns the short label of a stall: generated names lose their
// "{hall}-" prefix.
func Label(hallID int, s venue.Stall) string {
	return strings.TrimPrefix(s.Name, strconv.Itoa(hallID)+"-")
}
