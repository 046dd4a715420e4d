package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/bookfair/pkg/api"
	"github.com/matzehuels/bookfair/pkg/venue"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2025-09-20", "Sep 20, 2025"},
		{"2025-09-20T10:30:00", "Sep 20, 2025"},
		{"2025-09-20T10:30:00Z", "Sep 20, 2025"},
		{"2025-09-20T10:30:00+05:30", "Sep 20, 2025"},
		{"next week", "next week"},
		{"", "—"},
	}
	for _, tt := range tests {
		if got := formatDate(tt.in); got != tt.want {
			t.Errorf("formatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAvailabilityBar(t *testing.T) {
	tests := []struct {
		st         venue.HallStats
		wantFilled int
	}{
		{venue.HallStats{Total: 10, Available: 5}, 10},
		{venue.HallStats{Total: 10, Available: 10}, 20},
		{venue.HallStats{Total: 10, Available: 0}, 0},
		{venue.HallStats{Total: 0, Available: 0}, 0},
	}
	for _, tt := range tests {
		bar := availabilityBar(tt.st, 20)
		filled := strings.Count(bar, "█")
		empty := strings.Count(bar, "░")
		if filled != tt.wantFilled || filled+empty != 20 {
			t.Errorf("availabilityBar(%+v) = %d filled, %d empty; want %d filled of 20", tt.st, filled, empty, tt.wantFilled)
		}
	}
}

func TestPrintOverviewEmpty(t *testing.T) {
	var buf bytes.Buffer
	printOverview(&buf, nil)
	if !strings.Contains(buf.String(), "No Stalls Available") {
		t.Errorf("empty overview = %q, want 'No Stalls Available'", buf.String())
	}
}

func TestPrintOverview(t *testing.T) {
	var buf bytes.Buffer
	printOverview(&buf, []venue.HallStats{
		{ID: 1, Total: 30, Available: 12},
		{ID: 2, Total: 25, Available: 0},
	})
	out := buf.String()
	for _, want := range []string{"Hall 1", "Hall 2", "12", "30", "12 of 55 stalls available in 2 halls"} {
		if !strings.Contains(out, want) {
			t.Errorf("overview missing %q:\n%s", want, out)
		}
	}
}

func TestEventStatus(t *testing.T) {
	tests := []struct {
		ev   api.Event
		want string
	}{
		{api.Event{Status: "UPCOMING", RegistrationOpen: true}, "UPCOMING, open"},
		{api.Event{Status: "COMPLETED"}, "COMPLETED, closed"},
		{api.Event{}, "—, closed"},
	}
	for _, tt := range tests {
		if got := eventStatus(tt.ev); got != tt.want {
			t.Errorf("eventStatus(%+v) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func TestMatchGenre(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"fiction", "Fiction"},
		{"  SCIENCE FICTION ", "Science Fiction"},
		{"academic/textbooks", "Academic/Textbooks"},
		{"Cookbooks", "Cookbooks"},
	}
	for _, tt := range tests {
		if got := matchGenre(tt.in); got != tt.want {
			t.Errorf("matchGenre(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrompterAsk(t *testing.T) {
	p := newPrompter(strings.NewReader("ada@example.com\n  secret  \n"))
	if got := p.ask("Email"); got != "ada@example.com" {
		t.Errorf("first answer = %q", got)
	}
	if got := p.ask("Password"); got != "secret" {
		t.Errorf("second answer = %q", got)
	}
	if got := p.ask("Extra"); got != "" {
		t.Errorf("answer at end of input = %q, want empty", got)
	}
}
