// Package observability provides hooks for metrics, tracing, and logging.
//
// Library packages report what they do through small hook interfaces; the
// application decides what to do with the events. By default every hook is
// a no-op, so the libraries carry no dependency on a metrics or tracing
// backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    observability.SetReservationHooks(&myReservationHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Reservation().OnConfirmStart(ctx, eventID, len(cart))
//	// ... submit stalls ...
//	observability.Reservation().OnConfirmComplete(ctx, eventID, reserved, failed, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Reservation Hooks
// =============================================================================

// ReservationHooks receives events from cart checkout.
type ReservationHooks interface {
	// OnConfirmStart records the start of a checkout with the given cart size.
	OnConfirmStart(ctx context.Context, eventID string, items int)

	// OnReserve records the outcome of a single stall submission.
	OnReserve(ctx context.Context, eventID, stallID string, duration time.Duration, err error)

	// OnConfirmComplete records the aggregate outcome of a checkout.
	OnConfirmComplete(ctx context.Context, eventID string, reserved, failed int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from response caching.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, namespace string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, namespace string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, namespace string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopReservationHooks is a no-op implementation of ReservationHooks.
type NoopReservationHooks struct{}

func (NoopReservationHooks) OnConfirmStart(context.Context, string, int)                         {}
func (NoopReservationHooks) OnReserve(context.Context, string, string, time.Duration, error)     {}
func (NoopReservationHooks) OnConfirmComplete(context.Context, string, int, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	reservationHooks ReservationHooks = NoopReservationHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	httpHooks        HTTPHooks        = NoopHTTPHooks{}
	hooksMu          sync.RWMutex
)

// SetReservationHooks registers custom checkout hooks.
// This should be called once at application startup.
func SetReservationHooks(h ReservationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		reservationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Reservation returns the registered checkout hooks.
func Reservation() ReservationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return reservationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	reservationHooks = NoopReservationHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
