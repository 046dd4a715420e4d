// Package api is the client for the bookfair reservation backend.
//
// All endpoints live under /api on a single base URL. Responses may come
// wrapped in an envelope
//
//	{"success": true, "data": ..., "message": "..."}
//
// or as bare JSON; list endpoints additionally accept a single object. The
// client normalizes all three shapes.
//
// Authenticated calls send the bearer token set with [WithToken] or
// [Client.SetToken]. Read-mostly endpoints (events, genres) go through the
// injected [cache.Cache] with a TTL; stall availability and reservations are
// always fetched live.
//
// Every request carries a fresh X-Request-ID so backend logs can be matched
// to client logs.
package api
