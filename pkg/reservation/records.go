package reservation

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/bookfair/pkg/api"
	"github.com/matzehuels/bookfair/pkg/layout"
	"github.com/matzehuels/bookfair/pkg/venue"
)

// FromRecords groups backend stalls by hall number and places each hall on
// the default grid. Halls are ordered by number. Stalls without a numeric
// hall number or that do not fit are dropped; the second return value counts
// them.
func FromRecords(records []api.StallRecord) ([]venue.Hall, int) {
	byHall := make(map[int][]venue.Stall)
	dropped := 0
	for _, r := range records {
		hall, ok := r.Hall()
		if !ok {
			dropped++
			continue
		}
		byHall[hall] = append(byHall[hall], stallFromRecord(r))
	}

	ids := make([]int, 0, len(byHall))
	for id := range byHall {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, cmp.Compare[int])

	halls := make([]venue.Hall, 0, len(ids))
	for _, id := range ids {
		hall, overflow := layout.Place(id, byHall[id])
		halls = append(halls, hall)
		dropped += len(overflow)
	}
	return halls, dropped
}

func stallFromRecord(r api.StallRecord) venue.Stall {
	size := ParseSize(r.Size)
	status := venue.StatusReserved
	if r.Available {
		status = venue.StatusAvailable
	}
	return venue.Stall{
		ID:      r.ID.String(),
		Name:    r.StallNumber,
		RowSpan: 1,
		ColSpan: size.Span(),
		Status:  status,
		Size:    size,
	}
}

// ParseSize maps the backend's SMALL, MEDIUM and LARGE (in any case) to a
// size. Anything else is medium.
func ParseSize(s string) venue.Size {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SMALL":
		return venue.SizeSmall
	case "LARGE":
		return venue.SizeLarge
	default:
		return venue.SizeMedium
	}
}
