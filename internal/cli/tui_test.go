package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/bookfair/pkg/reservation"
	"github.com/matzehuels/bookfair/pkg/venue"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to m and returns the final model and the last command.
func press(t *testing.T, m reserveModel, keys ...string) (reserveModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(reserveModel)
	}
	return m, cmd
}

func newTestModel(t *testing.T, signedIn bool, r reservation.Reserver) reserveModel {
	t.Helper()
	notices := &reservation.Collector{}
	st := newTestState(t, signedIn, notices)
	return newReserveModel(context.Background(), reserveOptions{
		Title:    "Colombo Bookfair",
		State:    st,
		Reserver: r,
		Notices:  notices,
		Genres:   testCatalog,
		SignedIn: signedIn,
	})
}

func TestReserveModelStartsOnFirstStall(t *testing.T) {
	m := newTestModel(t, true, &fakeReserver{})
	s, ok := m.stallAtCursor()
	if !ok || s.ID != "101" {
		t.Fatalf("stall at cursor = %+v, %v; want 101", s, ok)
	}
}

func TestReserveModelCursorMovement(t *testing.T) {
	m := newTestModel(t, true, &fakeReserver{})

	m, _ = press(t, m, "right", "right")
	if s, _ := m.stallAtCursor(); s.ID != "103" {
		t.Errorf("after two rights cursor on %q, want 103", s.ID)
	}

	m, _ = press(t, m, "left", "left", "left")
	if m.cursor != (venue.Cell{Row: 0, Col: 0}) {
		t.Errorf("cursor = %+v, want it to stop at (0,0)", m.cursor)
	}

	m, _ = press(t, m, "up")
	if m.cursor != (venue.Cell{Row: 0, Col: 0}) {
		t.Errorf("moving off the grid should not move the cursor, got %+v", m.cursor)
	}

	m, _ = press(t, m, "down")
	if m.cursor.Row != 1 || m.cursor.Col != 0 {
		t.Errorf("cursor = %+v, want (1,0)", m.cursor)
	}
}

func TestReserveModelSelectAndConfirm(t *testing.T) {
	r := &fakeReserver{}
	m := newTestModel(t, true, r)

	m, _ = press(t, m, " ")
	if len(m.cart) != 1 || m.cart[0].ID != "101" {
		t.Fatalf("cart = %+v, want [101]", m.cart)
	}

	m, _ = press(t, m, "g")
	if m.mode != modeGenres {
		t.Fatalf("mode = %v, want genre picker", m.mode)
	}
	m, _ = press(t, m, " ", "down", " ", "esc")
	if m.mode != modeMap {
		t.Fatalf("mode = %v, want map", m.mode)
	}
	if got := m.cart[0].Genres; len(got) != 2 || got[0] != "3" || got[1] != "5" {
		t.Fatalf("genres = %v, want [3 5]", got)
	}

	m, cmd := press(t, m, "c")
	if m.mode != modeConfirming || cmd == nil {
		t.Fatalf("confirm did not start: mode %v, cmd nil %v", m.mode, cmd == nil)
	}
	// Keys are ignored while the confirm runs.
	m, _ = press(t, m, " ")

	next, _ := m.Update(cmd())
	m = next.(reserveModel)

	if len(r.reqs) != 1 || r.reqs[0].StallID != 101 || r.reqs[0].EventID != 12 {
		t.Fatalf("requests = %+v", r.reqs)
	}
	if m.result == nil || len(m.result.Reserved) != 1 {
		t.Fatalf("result = %+v", m.result)
	}
	if len(m.cart) != 0 {
		t.Errorf("cart after confirm = %+v, want empty", m.cart)
	}
	if len(m.mine) != 1 || m.mine[0] != "101" {
		t.Errorf("mine = %v, want [101]", m.mine)
	}
	if m.notice.Level != reservation.LevelSuccess || m.notice.Message != "1 stall(s) reserved successfully!" {
		t.Errorf("notice = %+v", m.notice)
	}
}

func TestReserveModelToggleOffAndBooked(t *testing.T) {
	m := newTestModel(t, true, &fakeReserver{})

	m, _ = press(t, m, " ", " ")
	if len(m.cart) != 0 {
		t.Errorf("second space should deselect, cart = %+v", m.cart)
	}

	m, _ = press(t, m, "right", "right", "right", " ")
	if s, _ := m.stallAtCursor(); s.ID != "104" {
		t.Fatalf("cursor on %q, want 104", s.ID)
	}
	if len(m.cart) != 0 {
		t.Errorf("booked stall entered the cart: %+v", m.cart)
	}
	if m.notice.Message != "This stall is already booked" {
		t.Errorf("notice = %q", m.notice.Message)
	}
}

func TestReserveModelGuards(t *testing.T) {
	m := newTestModel(t, true, &fakeReserver{})

	m, _ = press(t, m, "g")
	if m.mode != modeMap || !strings.Contains(m.notice.Message, "Select the stall first") {
		t.Errorf("g outside the cart: mode %v, notice %q", m.mode, m.notice.Message)
	}

	m, cmd := press(t, m, "c")
	if cmd != nil || m.notice.Message != "Your cart is empty" {
		t.Errorf("confirm with empty cart: cmd %v, notice %q", cmd != nil, m.notice.Message)
	}
}

func TestReserveModelSignedOut(t *testing.T) {
	m := newTestModel(t, false, &fakeReserver{})
	if !strings.Contains(m.notice.Message, "login") {
		t.Errorf("initial notice = %q, want a login hint", m.notice.Message)
	}

	m, _ = press(t, m, " ")
	if len(m.cart) != 0 {
		t.Errorf("signed-out toggle changed the cart: %+v", m.cart)
	}
	if m.notice.Level != reservation.LevelError || m.notice.Message != "Please login to reserve a stall" {
		t.Errorf("notice = %+v", m.notice)
	}
}

func TestReserveModelFailedConfirmKeepsCart(t *testing.T) {
	r := &fakeReserver{fail: map[int64]error{101: context.DeadlineExceeded}}
	m := newTestModel(t, true, r)

	m, cmd := press(t, m, " ", "g", " ", "esc", "c")
	if cmd == nil {
		t.Fatal("c should start the confirm")
	}
	next, _ := m.Update(cmd())
	m = next.(reserveModel)

	if len(m.cart) != 1 {
		t.Errorf("failed item should stay in the cart, cart = %+v", m.cart)
	}
	if m.notice.Message != "Failed to create any reservations" {
		t.Errorf("notice = %q", m.notice.Message)
	}
	if m.mode != modeMap {
		t.Errorf("mode = %v, want map after confirm", m.mode)
	}
}

func TestReserveModelView(t *testing.T) {
	m := newTestModel(t, true, &fakeReserver{})
	m, _ = press(t, m, " ")

	out := m.View()
	for _, want := range []string{"Colombo Bookfair", "Hall 1", "Cart (1)", "A1", "no genre", "2 of 3 left"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	m, _ = press(t, m, "g")
	if out := m.View(); !strings.Contains(out, "Fiction") || !strings.Contains(out, "Poetry") {
		t.Errorf("genre picker missing genres:\n%s", out)
	}
}

func TestReserveModelQuit(t *testing.T) {
	m := newTestModel(t, true, &fakeReserver{})
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
