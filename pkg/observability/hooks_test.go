package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Reservation hooks
	r := NoopReservationHooks{}
	r.OnConfirmStart(ctx, "42", 3)
	r.OnReserve(ctx, "42", "1-stall-1", time.Second, nil)
	r.OnReserve(ctx, "42", "1-stall-2", time.Second, errors.New("taken"))
	r.OnConfirmComplete(ctx, "42", 2, 1, time.Second)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "events")
	c.OnCacheMiss(ctx, "genres")
	c.OnCacheSet(ctx, "events", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "localhost:8080", "/api/events")
	h.OnResponse(ctx, "GET", "localhost:8080", "/api/events", 200, time.Second)
	h.OnError(ctx, "GET", "localhost:8080", "/api/events", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Reservation().(NoopReservationHooks); !ok {
		t.Error("Reservation() should return NoopReservationHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customReservation := &testReservationHooks{}
	SetReservationHooks(customReservation)
	if Reservation() != customReservation {
		t.Error("SetReservationHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Reservation().(NoopReservationHooks); !ok {
		t.Error("Reset() should restore NoopReservationHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testReservationHooks{}
	SetReservationHooks(custom)

	// Setting nil should be ignored
	SetReservationHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Reservation() != custom {
		t.Error("SetReservationHooks(nil) should be ignored")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testReservationHooks struct{ NoopReservationHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
