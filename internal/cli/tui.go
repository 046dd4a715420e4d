package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bookfair/pkg/api"
	"github.com/matzehuels/bookfair/pkg/render"
	"github.com/matzehuels/bookfair/pkg/reservation"
	"github.com/matzehuels/bookfair/pkg/venue"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	cartBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			MarginLeft(2)
)

// =============================================================================
// reserveModel - Interactive floor plan
// =============================================================================

// reserveOptions configures the floor-plan model.
type reserveOptions struct {
	Title    string
	State    *reservation.State
	Reserver reservation.Reserver
	Notices  *reservation.Collector
	Genres   []api.Genre
	SignedIn bool
}

type reserveMode int

const (
	modeMap reserveMode = iota
	modeGenres
	modeConfirming
)

// confirmedMsg carries the outcome of an asynchronous confirm.
type confirmedMsg struct {
	result *reservation.Result
	err    error
}

// reserveModel is the bubbletea model of the reserve command. It renders
// from a snapshot of the state so the view never waits on a running
// confirm.
type reserveModel struct {
	ctx      context.Context
	title    string
	st       *reservation.State
	reserver reservation.Reserver
	notices  *reservation.Collector
	genres   []api.Genre
	signedIn bool

	// snapshot
	halls []venue.Hall
	cart  []venue.Stall
	mine  []string

	hallIdx     int
	cursor      venue.Cell
	mode        reserveMode
	genreStall  string
	genreCursor int
	notice      reservation.Notice
	result      *reservation.Result
}

// newReserveModel creates the model with the cursor on the first stall of
// the first hall.
func newReserveModel(ctx context.Context, opts reserveOptions) reserveModel {
	m := reserveModel{
		ctx:      ctx,
		title:    opts.Title,
		st:       opts.State,
		reserver: opts.Reserver,
		notices:  opts.Notices,
		genres:   opts.Genres,
		signedIn: opts.SignedIn,
	}
	if m.notices == nil {
		m.notices = &reservation.Collector{}
	}
	m.sync()
	m.home()
	if !m.signedIn {
		m.notice = reservation.Notice{Level: reservation.LevelInfo, Message: "Browsing only. Run '" + appName + " login' to reserve stalls."}
	}
	return m
}

// sync refreshes the snapshot from the state.
func (m *reserveModel) sync() {
	m.halls = m.st.Halls()
	m.cart = m.st.Cart()
	m.mine = m.st.Mine()
	if m.hallIdx >= len(m.halls) {
		m.hallIdx = 0
	}
}

// selectHall switches to hall id, if present.
func (m *reserveModel) selectHall(id int) {
	for i, h := range m.halls {
		if h.ID == id {
			m.hallIdx = i
			m.home()
			return
		}
	}
}

// home moves the cursor to the first stall of the current hall.
func (m *reserveModel) home() {
	m.cursor = venue.Cell{}
	if h, ok := m.hall(); ok && len(h.Stalls) > 0 {
		m.cursor = venue.Cell{Row: h.Stalls[0].Row, Col: h.Stalls[0].Col}
	}
}

func (m reserveModel) hall() (venue.Hall, bool) {
	if m.hallIdx < 0 || m.hallIdx >= len(m.halls) {
		return venue.Hall{}, false
	}
	return m.halls[m.hallIdx], true
}

// stallAtCursor returns the stall under the cursor.
func (m reserveModel) stallAtCursor() (venue.Stall, bool) {
	h, ok := m.hall()
	if !ok {
		return venue.Stall{}, false
	}
	s, ok := h.StallAt(m.cursor.Row, m.cursor.Col)
	if !ok {
		return venue.Stall{}, false
	}
	return *s, true
}

// step moves the cursor by (dr, dc) until it lands on a different stall, and
// stays put when there is none in that direction.
func (m *reserveModel) step(dr, dc int) {
	h, ok := m.hall()
	if !ok {
		return
	}
	from, _ := h.StallAt(m.cursor.Row, m.cursor.Col)
	r, c := m.cursor.Row+dr, m.cursor.Col+dc
	for r >= 0 && r < h.Rows && c >= 0 && c < h.Cols {
		if s, ok := h.StallAt(r, c); ok && (from == nil || s.ID != from.ID) {
			m.cursor = venue.Cell{Row: r, Col: c}
			return
		}
		r, c = r+dr, c+dc
	}
}

func (m reserveModel) Init() tea.Cmd {
	return nil
}

func (m reserveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case confirmedMsg:
		m.mode = modeMap
		m.result = msg.result
		m.notice = m.notices.Last()
		m.sync()
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeConfirming:
			return m, nil
		case modeGenres:
			return m.updateGenres(msg)
		}
		return m.updateMap(msg)
	}
	return m, nil
}

func (m reserveModel) updateMap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.step(-1, 0)
	case "down", "j":
		m.step(1, 0)
	case "left", "h":
		m.step(0, -1)
	case "right", "l":
		m.step(0, 1)
	case "tab":
		if len(m.halls) > 0 {
			m.hallIdx = (m.hallIdx + 1) % len(m.halls)
			m.home()
		}
	case "shift+tab":
		if len(m.halls) > 0 {
			m.hallIdx = (m.hallIdx - 1 + len(m.halls)) % len(m.halls)
			m.home()
		}
	case " ", "enter":
		s, ok := m.stallAtCursor()
		if !ok || s.Placeholder {
			return m, nil
		}
		action, err := m.st.Toggle(s)
		m.sync()
		switch {
		case err != nil:
			m.notice = m.notices.Last()
		case action == reservation.Added:
			m.notice = reservation.Notice{Level: reservation.LevelInfo,
				Message: fmt.Sprintf("Selected %s. Press g to choose its genres.", s.Name)}
		default:
			m.notice = reservation.Notice{Level: reservation.LevelInfo, Message: "Removed " + s.Name}
		}
	case "g":
		s, ok := m.stallAtCursor()
		if !ok || !m.st.InCart(s.ID) {
			m.notice = reservation.Notice{Level: reservation.LevelInfo, Message: "Select the stall first to choose its genres"}
			return m, nil
		}
		if len(m.genres) == 0 {
			m.notice = reservation.Notice{Level: reservation.LevelError, Message: "No genres available"}
			return m, nil
		}
		m.mode = modeGenres
		m.genreStall = s.ID
		m.genreCursor = 0
	case "c":
		if len(m.cart) == 0 {
			m.notice = reservation.Notice{Level: reservation.LevelError, Message: "Your cart is empty"}
			return m, nil
		}
		m.mode = modeConfirming
		m.notice = reservation.Notice{Level: reservation.LevelInfo, Message: "Reserving stalls..."}
		return m, confirmCmd(m.ctx, m.st, m.reserver)
	}
	return m, nil
}

func (m reserveModel) updateGenres(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "g", "enter", "q":
		m.mode = modeMap
	case "up", "k":
		if m.genreCursor > 0 {
			m.genreCursor--
		}
	case "down", "j":
		if m.genreCursor < len(m.genres)-1 {
			m.genreCursor++
		}
	case " ":
		id := m.genres[m.genreCursor].ID.String()
		checked := !slices.Contains(m.cartGenres(m.genreStall), id)
		m.st.SetGenre(m.genreStall, id, checked)
		m.sync()
	}
	return m, nil
}

// cartGenres returns the genre ids of cart item stallID.
func (m reserveModel) cartGenres(stallID string) []string {
	for _, s := range m.cart {
		if s.ID == stallID {
			return s.Genres
		}
	}
	return nil
}

func confirmCmd(ctx context.Context, st *reservation.State, r reservation.Reserver) tea.Cmd {
	return func() tea.Msg {
		res, err := st.Confirm(ctx, r)
		return confirmedMsg{result: res, err: err}
	}
}

// =============================================================================
// View
// =============================================================================

func (m reserveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.hallTabs())
	b.WriteString("\n\n")

	h, ok := m.hall()
	if !ok {
		b.WriteString(listDimStyle.Render("No Stalls Available"))
		b.WriteString("\n")
		return b.String()
	}

	view := render.View{Cart: stallIDs(m.cart), Mine: m.mine, Cursor: &m.cursor}
	left := render.Text(h, view)
	right := m.cartPanel()
	if m.mode == modeGenres {
		right = m.genrePanel()
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, cartBoxStyle.Render(right)))
	b.WriteString("\n\n")

	if s, ok := m.stallAtCursor(); ok && !s.Placeholder {
		b.WriteString(listNormalStyle.Render(fmt.Sprintf("%s  %s  %s", s.Name, s.Size, view.StateOf(s))))
		b.WriteString("\n")
	}
	b.WriteString(m.noticeLine())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.help()))
	return b.String()
}

func (m reserveModel) hallTabs() string {
	tabs := make([]string, len(m.halls))
	stats := venue.Stats(m.halls)
	for i, st := range stats {
		label := fmt.Sprintf(" Hall %d (%d/%d) ", st.ID, st.Available, st.Total)
		if i == m.hallIdx {
			tabs[i] = listSelectedStyle.Reverse(true).Render(label)
		} else {
			tabs[i] = listDimStyle.Render(label)
		}
	}
	return strings.Join(tabs, " ")
}

func (m reserveModel) cartPanel() string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(fmt.Sprintf("Cart (%d)", len(m.cart))))
	b.WriteString("\n")
	if len(m.cart) == 0 {
		b.WriteString(listDimStyle.Render("Select a stall with space"))
		b.WriteString("\n")
	}
	for _, s := range m.cart {
		b.WriteString(listNormalStyle.Render(fmt.Sprintf("%s (%s)", s.Name, s.Size)))
		b.WriteString("\n")
		if len(s.Genres) == 0 {
			b.WriteString(StyleWarning.Render("  no genre"))
		} else {
			b.WriteString(listDimStyle.Render("  " + genreNames(s.Genres, m.genres)))
		}
		b.WriteString("\n")
	}
	if m.signedIn {
		remaining := max(reservation.MaxReservations-len(m.mine)-len(m.cart), 0)
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d of %d left", remaining, reservation.MaxReservations)))
	}
	return b.String()
}

func (m reserveModel) genrePanel() string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render("Genres"))
	b.WriteString("\n")
	selected := m.cartGenres(m.genreStall)
	for i, g := range m.genres {
		box := "[ ]"
		if slices.Contains(selected, g.ID.String()) {
			box = "[x]"
		}
		line := box + " " + g.Name
		if i == m.genreCursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m reserveModel) noticeLine() string {
	switch m.notice.Level {
	case reservation.LevelSuccess:
		return styleIconSuccess.Render(iconSuccess) + " " + m.notice.Message
	case reservation.LevelError:
		return styleIconError.Render(iconError) + " " + m.notice.Message
	}
	if m.notice.Message == "" {
		return ""
	}
	return styleIconInfo.Render(iconInfo) + " " + m.notice.Message
}

func (m reserveModel) help() string {
	switch m.mode {
	case modeGenres:
		return "↑/↓ navigate  space toggle  esc done"
	case modeConfirming:
		return "reserving..."
	}
	return "arrows move  space select  g genres  tab hall  c confirm  q quit"
}

func stallIDs(stalls []venue.Stall) []string {
	ids := make([]string, len(stalls))
	for i, s := range stalls {
		ids[i] = s.ID
	}
	return ids
}
