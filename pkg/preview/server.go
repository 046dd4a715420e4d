// Package preview serves generated floor plans over HTTP.
//
// The server needs no backend: every map is produced on request by the
// layout generator from the map id and an optional event id, so the same
// URL always returns the same plan.
//
//	GET /healthz                       liveness and build version
//	GET /maps/{mapID}.svg?event={id}   SVG document
//	GET /maps/{mapID}.json?event={id}  stall list with states
//	GET /maps/{mapID}?event={id}       plain-text grid
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bookfair/pkg/buildinfo"
	"github.com/matzehuels/bookfair/pkg/layout"
	"github.com/matzehuels/bookfair/pkg/render"
)

// MaxMapID bounds the map ids the server generates.
const MaxMapID = 9999

// Options configures a [Server].
type Options struct {
	Grid     layout.Grid // zero value means layout.Default
	CellSize float64     // SVG cell size in pixels; 0 means the renderer default
	Logger   *log.Logger
}

// Server is the preview HTTP server.
type Server struct {
	router chi.Router
	grid   layout.Grid
	cell   float64
	logger *log.Logger
}

// New creates a server with its routes mounted.
func New(opts Options) *Server {
	s := &Server{grid: opts.Grid, cell: opts.CellSize, logger: opts.Logger}
	if s.grid == (layout.Grid{}) {
		s.grid = layout.Default
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/maps/{file}", s.handleMap)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("preview server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	mapID, format, err := parseMapFile(chi.URLParam(r, "file"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	event := r.URL.Query().Get("event")
	hall := s.grid.GenerateHall(mapID, event)

	switch format {
	case "svg":
		var opts []render.SVGOption
		if s.cell > 0 {
			opts = append(opts, render.WithCellSize(s.cell))
		}
		opts = append(opts, render.WithTitle("Hall "+strconv.Itoa(mapID)))
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(render.SVG(hall, opts...))
	case "json":
		data, err := render.JSON(hall, render.View{})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(render.Text(hall, render.View{}) + "\n"))
	}
}

// parseMapFile splits "12.svg" into (12, "svg"). A bare id or ".txt" means
// text.
func parseMapFile(file string) (int, string, error) {
	name, ext, _ := strings.Cut(file, ".")
	switch ext {
	case "", "txt":
		ext = "text"
	case "svg", "json":
	default:
		return 0, "", errors.New("unsupported format: " + ext)
	}
	id, err := strconv.Atoi(name)
	if err != nil || id < 0 || id > MaxMapID {
		return 0, "", errors.New("invalid map id: " + name)
	}
	return id, ext, nil
}

// =============================================================================
// Middleware and helpers
// =============================================================================

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError uses the same envelope as the reservation backend.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}
