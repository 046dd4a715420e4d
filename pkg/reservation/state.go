package reservation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bookfair/pkg/api"
	"github.com/matzehuels/bookfair/pkg/broker"
	"github.com/matzehuels/bookfair/pkg/cache"
	bferrors "github.com/matzehuels/bookfair/pkg/errors"
	"github.com/matzehuels/bookfair/pkg/observability"
	"github.com/matzehuels/bookfair/pkg/venue"
)

// MaxReservations is the number of stalls one user may hold per event,
// confirmed and in-cart together.
const MaxReservations = 3

// Reserver books a single stall on the backend. [*api.Client] implements it.
type Reserver interface {
	CreateReservation(ctx context.Context, req api.ReservationRequest) (*api.Reservation, error)
}

// Lister lists the signed-in user's reservations on the backend.
// [*api.Client] implements it.
type Lister interface {
	MyReservations(ctx context.Context) ([]api.Reservation, error)
}

// Publisher announces confirmed reservations. [*broker.Publisher]
// implements it.
type Publisher interface {
	Publish(ctx context.Context, e broker.ReservationConfirmed) error
}

// Options configures a [State].
type Options struct {
	EventID string
	User    *api.User // nil when signed out
	Token   string
	Halls   []venue.Hall

	Store     cache.Cache // nil disables the reservations mirror
	Keyer     cache.Keyer
	Notifier  Notifier
	Lister    Lister    // optional
	Publisher Publisher // optional
	Logger    *log.Logger
}

// State is the cart state machine of one event. It is safe for concurrent
// use.
type State struct {
	mu      sync.Mutex
	eventID string
	user    *api.User
	token   string
	halls   []venue.Hall
	cart    []venue.Stall
	mine    []string

	confirming bool

	store     cache.Cache
	keys      cache.Keyer
	notifier  Notifier
	lister    Lister
	publisher Publisher
	logger    *log.Logger
}

// New creates a state with an empty cart. Call [State.Load] to restore the
// user's reservations.
func New(opts Options) *State {
	s := &State{
		eventID:   opts.EventID,
		user:      opts.User,
		token:     opts.Token,
		halls:     cloneHalls(opts.Halls),
		store:     opts.Store,
		keys:      opts.Keyer,
		notifier:  opts.Notifier,
		lister:    opts.Lister,
		publisher: opts.Publisher,
		logger:    opts.Logger,
	}
	if s.store == nil {
		s.store = cache.NewNullCache()
	}
	if s.keys == nil {
		s.keys = cache.NewDefaultKeyer()
	}
	if s.notifier == nil {
		s.notifier = discard{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// EventID returns the event the state belongs to.
func (s *State) EventID() string { return s.eventID }

// =============================================================================
// Loading
// =============================================================================

// Load restores the user's reserved stall ids from the store. A missing or
// unreadable entry yields no reservations. Signed-out states load nothing.
//
// With a [Lister] the backend's reservations for the event are merged in and
// the mirror is refreshed. A failed listing falls back to the mirror alone.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	s.mine = nil
	user := s.user
	if user == nil {
		s.mu.Unlock()
		return nil
	}
	key := s.mirrorKey()
	s.mu.Unlock()

	var ids []string
	_, err := cache.GetJSON(ctx, s.store, key, &ids)
	switch {
	case errors.Is(err, cache.ErrCorrupt):
		s.logger.Warn("discarding unreadable reservations mirror", "key", key, "err", err)
		ids = nil
	case err != nil:
		return fmt.Errorf("load reservations: %w", err)
	}

	if s.lister != nil {
		remote, err := s.listMine(ctx)
		if err != nil {
			s.logger.Warn("could not list reservations", "event", s.eventID, "err", err)
		} else if merged := mergeIDs(slices.Clone(ids), remote); len(merged) != len(ids) {
			ids = merged
			if err := cache.SetJSON(ctx, s.store, key, ids, 0); err != nil {
				s.logger.Warn("could not save reservations mirror", "err", err)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == user {
		s.mine = mergeIDs(ids, s.mine)
	}
	return nil
}

// listMine returns the stall ids of the user's active reservations for the
// event.
func (s *State) listMine(ctx context.Context) ([]string, error) {
	all, err := s.lister.MyReservations(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, r := range all {
		if strconv.FormatInt(r.EventID, 10) != s.eventID || strings.EqualFold(r.Status, "CANCELLED") {
			continue
		}
		ids = append(ids, strconv.FormatInt(r.StallID, 10))
	}
	return ids, nil
}

// SetUser switches the signed-in user and clears the cart. Pass nil to sign
// out. Call [State.Load] afterwards to restore the new user's reservations.
func (s *State) SetUser(user *api.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.token = user, token
	s.cart = nil
	s.mine = nil
}

// SetHalls replaces the floor plan, keeping cart items that still exist.
func (s *State) SetHalls(halls []venue.Hall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.halls = cloneHalls(halls)
	s.cart = slices.DeleteFunc(s.cart, func(c venue.Stall) bool {
		_, _, ok := s.find(c.ID)
		return !ok
	})
}

func (s *State) mirrorKey() string {
	return s.keys.ReservationsKey(s.user.ID.String(), s.eventID)
}

// =============================================================================
// Cart
// =============================================================================

// Action is what a toggle did.
type Action int

const (
	Rejected Action = iota
	Added
	Removed
)

func (a Action) String() string {
	switch a {
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "rejected"
	}
}

// Toggle adds stall to the cart, or removes it when it is already there.
//
// Signed-out users, reserved stalls and a full cart are rejected with a
// notice and a coded error. A stall the user reserved themselves yields an
// informational notice and [bferrors.ErrCodeAlreadyReserved].
func (s *State) Toggle(stall venue.Stall) (Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return Rejected, s.reject(LevelError, bferrors.ErrCodeUnauthorized, "Please login to reserve a stall")
	}

	if current, _, ok := s.find(stall.ID); ok {
		stall.Status = current.Status
	}
	if stall.Reserved() {
		if slices.Contains(s.mine, stall.ID) {
			return Rejected, s.reject(LevelInfo, bferrors.ErrCodeAlreadyReserved, "You have already reserved this stall")
		}
		return Rejected, s.reject(LevelError, bferrors.ErrCodeStallReserved, "This stall is already booked")
	}

	if i := s.cartIndex(stall.ID); i >= 0 {
		s.cart = slices.Delete(s.cart, i, i+1)
		return Removed, nil
	}

	if len(s.mine)+len(s.cart) >= MaxReservations {
		return Rejected, s.reject(LevelError, bferrors.ErrCodeCartLimit,
			"Maximum reservation limit of %d stalls reached", MaxReservations)
	}

	stall.Genres = nil
	s.cart = append(s.cart, stall)
	return Added, nil
}

// ToggleAt toggles the stall covering (row, col) in hall hallID.
func (s *State) ToggleAt(hallID, row, col int) (Action, error) {
	s.mu.Lock()
	var stall venue.Stall
	found := false
	if h := s.hall(hallID); h != nil {
		if st, ok := h.StallAt(row, col); ok {
			stall, found = *st, true
		}
	}
	s.mu.Unlock()
	if !found {
		return Rejected, bferrors.New(bferrors.ErrCodeNotFound, "no stall at (%d, %d) in hall %d", row, col, hallID)
	}
	return s.Toggle(stall)
}

// Remove drops stallID from the cart. Removing a stall that is not in the
// cart does nothing.
func (s *State) Remove(stallID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.cartIndex(stallID); i >= 0 {
		s.cart = slices.Delete(s.cart, i, i+1)
	}
}

// SetGenre checks or unchecks genreID on a cart item. It reports whether
// stallID is in the cart.
func (s *State) SetGenre(stallID, genreID string, checked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.cartIndex(stallID)
	if i < 0 {
		return false
	}
	item := &s.cart[i]
	has := slices.Contains(item.Genres, genreID)
	switch {
	case checked && !has:
		item.Genres = append(item.Genres, genreID)
	case !checked && has:
		item.Genres = slices.DeleteFunc(item.Genres, func(g string) bool { return g == genreID })
	}
	return true
}

// =============================================================================
// Reads
// =============================================================================

// Cart returns a copy of the cart in insertion order.
func (s *State) Cart() []venue.Stall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStalls(s.cart)
}

// Mine returns the ids of the stalls the user reserved for this event.
func (s *State) Mine() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.mine)
}

// InCart reports whether stallID is selected.
func (s *State) InCart(stallID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartIndex(stallID) >= 0
}

// Remaining returns how many more stalls the user may select.
func (s *State) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return max(MaxReservations-len(s.mine)-len(s.cart), 0)
}

// Halls returns a copy of the floor plan.
func (s *State) Halls() []venue.Hall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneHalls(s.halls)
}

// Hall returns a copy of hall id.
func (s *State) Hall(id int) (venue.Hall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.hall(id)
	if h == nil {
		return venue.Hall{}, false
	}
	return cloneHalls([]venue.Hall{*h})[0], true
}

// HallStats counts total and available stalls per hall.
func (s *State) HallStats() []venue.HallStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return venue.Stats(s.halls)
}

// =============================================================================
// Confirm
// =============================================================================

// Failure is a cart item the backend did not reserve.
type Failure struct {
	Stall   venue.Stall
	Message string
	Err     error
}

// Result is the outcome of [State.Confirm].
type Result struct {
	Reserved []api.Reservation
	Failed   []Failure
}

// Confirm submits every cart item to r, one request per stall, in cart
// order.
//
// Nothing is sent when the cart is empty, when any item has no genre, or
// when there is no token. Reserved items leave the cart, are marked reserved
// in the floor plan and are added to the mirror; failed items stay in the
// cart. The returned error is non-nil only when nothing was reserved.
//
// The state is not locked while requests are in flight, so readers and
// cart edits proceed during a confirmation. Only one confirmation runs at a
// time; a second call fails with a conflict.
func (s *State) Confirm(ctx context.Context, r Reserver) (*Result, error) {
	items, user, key, err := s.beginConfirm()
	if err != nil {
		return nil, err
	}
	defer func() {
		s.mu.Lock()
		s.confirming = false
		s.mu.Unlock()
	}()

	hooks := observability.Reservation()
	hooks.OnConfirmStart(ctx, s.eventID, len(items))
	start := time.Now()

	res := &Result{}
	var reserved []venue.Stall
	for _, item := range items {
		itemStart := time.Now()
		rsv, err := s.submit(ctx, r, item)
		hooks.OnReserve(ctx, s.eventID, item.ID, time.Since(itemStart), err)
		if err != nil {
			msg := api.BackendMessage(err)
			if msg == "" {
				msg = fmt.Sprintf("Failed to reserve stall %s", item.Name)
			}
			s.notifier.Notify(Notice{Level: LevelError, Message: msg})
			res.Failed = append(res.Failed, Failure{Stall: item, Message: msg, Err: err})
			continue
		}
		res.Reserved = append(res.Reserved, *rsv)
		reserved = append(reserved, item)
	}
	hooks.OnConfirmComplete(ctx, s.eventID, len(res.Reserved), len(res.Failed), time.Since(start))

	if len(res.Reserved) == 0 {
		return res, s.reject(LevelError, bferrors.ErrCodeReservation, "Failed to create any reservations")
	}

	events := s.apply(ctx, user, key, reserved, res.Reserved)
	for _, e := range events {
		if err := s.publisher.Publish(ctx, e); err != nil {
			s.logger.Warn("could not publish confirmation", "stall", e.StallID, "err", err)
		}
	}
	s.notifier.Notify(Notice{Level: LevelSuccess, Message: fmt.Sprintf("%d stall(s) reserved successfully!", len(res.Reserved))})
	return res, nil
}

// beginConfirm checks that the cart can be confirmed and snapshots it.
func (s *State) beginConfirm() ([]venue.Stall, *api.User, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.confirming {
		return nil, nil, "", s.reject(LevelError, bferrors.ErrCodeConflict, "A confirmation is already in progress")
	}
	if len(s.cart) == 0 {
		return nil, nil, "", s.reject(LevelError, bferrors.ErrCodeCartEmpty, "Your cart is empty")
	}
	for _, item := range s.cart {
		if len(item.Genres) == 0 {
			return nil, nil, "", s.reject(LevelError, bferrors.ErrCodeGenreRequired, "Please select at least one genre for all stalls")
		}
	}
	if s.user == nil || s.token == "" {
		return nil, nil, "", s.reject(LevelError, bferrors.ErrCodeUnauthorized, "Please login to make a reservation")
	}
	s.confirming = true
	return cloneStalls(s.cart), s.user, s.mirrorKey(), nil
}

// apply records reserved items: it drops them from the cart, marks them in
// the floor plan and saves the mirror. It returns the confirmation events to
// publish, or none when there is no publisher.
func (s *State) apply(ctx context.Context, user *api.User, key string, items []venue.Stall, rsvs []api.Reservation) []broker.ReservationConfirmed {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
		s.markReserved(item)
	}
	s.cart = slices.DeleteFunc(s.cart, func(c venue.Stall) bool { return slices.Contains(ids, c.ID) })

	// The user may have signed out or switched while requests were in
	// flight; their mirror still records what the backend accepted.
	var mine []string
	if s.user == user {
		s.mine = mergeIDs(s.mine, ids)
		mine = s.mine
	} else {
		var prev []string
		if _, err := cache.GetJSON(ctx, s.store, key, &prev); err != nil && !errors.Is(err, cache.ErrCorrupt) {
			s.logger.Warn("could not read reservations mirror", "key", key, "err", err)
		}
		mine = mergeIDs(prev, ids)
	}
	if err := cache.SetJSON(ctx, s.store, key, mine, 0); err != nil {
		s.logger.Warn("could not save reservations mirror", "err", err)
	}

	if s.publisher == nil {
		return nil
	}
	events := make([]broker.ReservationConfirmed, 0, len(items))
	for i, item := range items {
		events = append(events, s.confirmation(user, item, &rsvs[i]))
	}
	return events
}

func (s *State) submit(ctx context.Context, r Reserver, item venue.Stall) (*api.Reservation, error) {
	eventID, err := strconv.ParseInt(s.eventID, 10, 64)
	if err != nil {
		return nil, bferrors.New(bferrors.ErrCodeInvalidInput, "event id %q is not numeric", s.eventID)
	}
	stallID, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		return nil, bferrors.New(bferrors.ErrCodeInvalidInput, "stall id %q is not numeric", item.ID)
	}
	genreIDs := make([]int64, 0, len(item.Genres))
	for _, g := range item.Genres {
		id, err := strconv.ParseInt(g, 10, 64)
		if err != nil {
			return nil, bferrors.New(bferrors.ErrCodeInvalidInput, "genre id %q is not numeric", g)
		}
		genreIDs = append(genreIDs, id)
	}
	rsv, err := r.CreateReservation(ctx, api.ReservationRequest{EventID: eventID, StallID: stallID, GenreIDs: genreIDs})
	if err != nil {
		return nil, err
	}
	if rsv == nil {
		rsv = &api.Reservation{EventID: eventID, StallID: stallID}
	}
	return rsv, nil
}

func (s *State) markReserved(item venue.Stall) {
	st, _, ok := s.find(item.ID)
	if !ok {
		return
	}
	st.Status = venue.StatusReserved
	st.Genres = slices.Clone(item.Genres)
}

func (s *State) confirmation(user *api.User, item venue.Stall, rsv *api.Reservation) broker.ReservationConfirmed {
	hallID := 0
	if _, h, ok := s.find(item.ID); ok {
		hallID = h.ID
	}
	return broker.ReservationConfirmed{
		ReservationID:   rsv.ID,
		ReservationCode: rsv.ReservationCode,
		UserID:          user.ID.String(),
		EventID:         s.eventID,
		StallID:         item.ID,
		StallName:       item.Name,
		Hall:            hallID,
		Genres:          slices.Clone(item.Genres),
		ConfirmedAt:     time.Now().UTC(),
	}
}

// =============================================================================
// Helpers (callers hold mu)
// =============================================================================

func (s *State) reject(level Level, code bferrors.Code, format string, args ...any) error {
	err := bferrors.New(code, format, args...)
	s.notifier.Notify(Notice{Level: level, Message: err.Message})
	return err
}

func (s *State) cartIndex(stallID string) int {
	return slices.IndexFunc(s.cart, func(c venue.Stall) bool { return c.ID == stallID })
}

func (s *State) hall(id int) *venue.Hall {
	for i := range s.halls {
		if s.halls[i].ID == id {
			return &s.halls[i]
		}
	}
	return nil
}

func (s *State) find(stallID string) (*venue.Stall, *venue.Hall, bool) {
	for i := range s.halls {
		if st, ok := s.halls[i].Find(stallID); ok {
			return st, &s.halls[i], true
		}
	}
	return nil, nil, false
}

func cloneStalls(stalls []venue.Stall) []venue.Stall {
	out := make([]venue.Stall, len(stalls))
	for i, st := range stalls {
		st.Genres = slices.Clone(st.Genres)
		out[i] = st
	}
	return out
}

// mergeIDs appends the ids in add that ids does not hold yet.
func mergeIDs(ids, add []string) []string {
	for _, id := range add {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func cloneHalls(halls []venue.Hall) []venue.Hall {
	out := make([]venue.Hall, len(halls))
	for i, h := range halls {
		h.Stalls = slices.Clone(h.Stalls)
		for j := range h.Stalls {
			h.Stalls[j].Genres = slices.Clone(h.Stalls[j].Genres)
		}
		out[i] = h
	}
	return out
}
