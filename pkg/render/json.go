package render

import (
	"encoding/json"

	"github.com/matzehuels/bookfair/pkg/venue"
)

type jsonHall struct {
	ID        int         `json:"id"`
	Rows      int         `json:"rows"`
	Cols      int         `json:"cols"`
	Total     int         `json:"total"`
	Available int         `json:"available"`
	Stalls    []jsonStall `json:"stalls"`
}

type jsonStall struct {
	venue.Stall
	State State `json:"state"`
}

// JSON renders hall and the state of each stall under view.
func JSON(hall venue.Hall, view View) ([]byte, error) {
	st := venue.Stats([]venue.Hall{hall})[0]
	out := jsonHall{
		ID:        hall.ID,
		Rows:      hall.Rows,
		Cols:      hall.Cols,
		Total:     st.Total,
		Available: st.Available,
		Stalls:    make([]jsonStall, len(hall.Stalls)),
	}
	for i, s := range hall.Stalls {
		out.Stalls[i] = jsonStall{Stall: s, State: view.StateOf(s)}
	}
	return json.MarshalIndent(out, "", "  ")
}
