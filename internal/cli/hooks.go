package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// reservationLogHooks logs confirm progress at debug level.
type reservationLogHooks struct {
	logger *log.Logger
}

func (h *reservationLogHooks) OnConfirmStart(_ context.Context, eventID string, items int) {
	h.logger.Debug("confirm started", "event", eventID, "items", items)
}

func (h *reservationLogHooks) OnReserve(_ context.Context, eventID, stallID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("reserve failed", "event", eventID, "stall", stallID, "took", d.Round(time.Millisecond), "error", err)
		return
	}
	h.logger.Debug("reserved", "event", eventID, "stall", stallID, "took", d.Round(time.Millisecond))
}

func (h *reservationLogHooks) OnConfirmComplete(_ context.Context, eventID string, reserved, failed int, d time.Duration) {
	h.logger.Debug("confirm finished", "event", eventID, "reserved", reserved, "failed", failed, "took", d.Round(time.Millisecond))
}

// cacheLogHooks logs response-cache activity at debug level.
type cacheLogHooks struct {
	logger *log.Logger
}

func (h *cacheLogHooks) OnCacheHit(_ context.Context, namespace string) {
	h.logger.Debug("cache hit", "ns", namespace)
}

func (h *cacheLogHooks) OnCacheMiss(_ context.Context, namespace string) {
	h.logger.Debug("cache miss", "ns", namespace)
}

func (h *cacheLogHooks) OnCacheSet(_ context.Context, namespace string, size int) {
	h.logger.Debug("cache set", "ns", namespace, "bytes", size)
}

// httpLogHooks logs backend requests at debug level.
type httpLogHooks struct {
	logger *log.Logger
}

func (h *httpLogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *httpLogHooks) OnResponse(_ context.Context, method, _, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *httpLogHooks) OnError(_ context.Context, method, _, path string, err error) {
	h.logger.Debug("request failed", "method", method, "path", path, "error", err)
}
