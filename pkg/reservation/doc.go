// Package reservation holds the cart state of one event: the halls and their
// stalls, the stalls the user has selected, and the stalls the user already
// reserved.
//
// A stall moves available → selected (in the cart) → reserved. Removing it
// from the cart moves it back to available; a stall reserved by someone else
// is read-only. A user holds at most [MaxReservations] stalls per event,
// counting confirmed reservations and cart items together.
//
// [State.Confirm] submits every cart item individually. Items that fail
// stay in the cart so the user can retry them; items that succeed are
// marked reserved and mirrored to the injected key-value store under
// user_reservations_{user}_{event}.
//
// User-facing outcomes are reported twice: as a [Notice] to the configured
// [Notifier] (the text shown to the user) and as a coded error from
// [github.com/matzehuels/bookfair/pkg/errors] for programmatic handling.
package reservation
