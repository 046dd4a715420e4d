package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bookfair/pkg/observability"
)

func TestLogHooksWriteAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)
	ctx := context.Background()

	var (
		rh observability.ReservationHooks = &reservationLogHooks{logger: logger}
		ch observability.CacheHooks       = &cacheLogHooks{logger: logger}
		hh observability.HTTPHooks        = &httpLogHooks{logger: logger}
	)
	rh.OnConfirmStart(ctx, "12", 2)
	rh.OnReserve(ctx, "12", "101", time.Millisecond, nil)
	rh.OnReserve(ctx, "12", "102", time.Millisecond, errors.New("conflict"))
	rh.OnConfirmComplete(ctx, "12", 1, 1, time.Second)
	ch.OnCacheHit(ctx, "events")
	ch.OnCacheMiss(ctx, "genres")
	ch.OnCacheSet(ctx, "genres", 42)
	hh.OnRequest(ctx, "GET", "localhost", "/api/events")
	hh.OnResponse(ctx, "GET", "localhost", "/api/events", 200, time.Millisecond)
	hh.OnError(ctx, "POST", "localhost", "/api/reservations", errors.New("refused"))

	out := buf.String()
	for _, want := range []string{
		"confirm started", "reserved", "reserve failed", "confirm finished",
		"cache hit", "cache miss", "cache set", "request", "response", "request failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := &cacheLogHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnCacheHit(context.Background(), "events")
	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug only, got %q", buf.String())
	}
}
