package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/gridfile"
	"github.com/go-chi/chi/v5"
)

// maxGridBody bounds uploaded maze text.
const maxGridBody = 4 << 20

// Service is the maze API the handlers drive.
type Service interface {
	Create(ctx context.Context, name string, width, height int) (*domain.Grid, error)
	Get(ctx context.Context, name string) (*domain.Grid, error)
	Put(ctx context.Context, name string, grid *domain.Grid) error
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
	Edit(ctx context.Context, name string, fn func(*domain.Grid) error) (*domain.Grid, error)
	Solve(ctx context.Context, name string, mode domain.Mode, opts wayfinder.SolveOptions) (*domain.Result, error)
	SolveGrid(ctx context.Context, grid *domain.Grid, mode domain.Mode) (*domain.Result, error)
}

// Server holds the handlers of the maze API.
type Server struct {
	Service Service
	Streams *StreamManager

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates the HTTP handler for the maze service.
func NewHandler(svc Service, opts ...Option) http.Handler {
	s := &Server{
		Service: svc,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/modes", s.GetModes)
	r.Post("/solve", s.SolveGrid)

	r.Route("/mazes", func(r chi.Router) {
		r.Get("/", s.ListMazes)
		r.Post("/", s.CreateMaze)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.GetMaze)
			r.Put("/", s.PutMaze)
			r.Delete("/", s.DeleteMaze)
			r.Post("/cells", s.EditCell)
			r.Post("/clear", s.ClearMaze)
			r.Post("/solve", s.SolveMaze)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(wayfinder.Version),
	})
}

// GetModes handles GET /modes.
func (s *Server) GetModes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.ModeNames())
}

// ListMazes handles GET /mazes.
func (s *Server) ListMazes(w http.ResponseWriter, r *http.Request) {
	names, err := s.Service.List(r.Context())
	if err != nil {
		s.writeError(w, "ListMazes", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, names)
}

// CreateMaze handles POST /mazes.
func (s *Server) CreateMaze(w http.ResponseWriter, r *http.Request) {
	var body CreateMazeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeStatus(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("CreateMaze: Invalid request body", "err", err)
		return
	}

	g, err := s.Service.Create(r.Context(), body.Name, body.Width, body.Height)
	if err != nil {
		s.writeError(w, "CreateMaze", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, mapMaze(body.Name, g))
}

// GetMaze handles GET /mazes/{name}.
func (s *Server) GetMaze(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := s.Service.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, "GetMaze", err)
		return
	}
	if wantsText(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_ = gridfile.Encode(w, g)
		return
	}
	s.writeJSON(w, http.StatusOK, mapMaze(name, g))
}

// PutMaze handles PUT /mazes/{name} with a text/plain grid body.
func (s *Server) PutMaze(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := gridfile.Parse(http.MaxBytesReader(w, r.Body, maxGridBody))
	if err != nil {
		s.writeError(w, "PutMaze", err)
		return
	}
	if err := s.Service.Put(r.Context(), name, g); err != nil {
		s.writeError(w, "PutMaze", err)
		return
	}
	s.publish(name, "maze.updated", g, nil)
	s.writeJSON(w, http.StatusOK, mapMaze(name, g))
}

// DeleteMaze handles DELETE /mazes/{name}.
func (s *Server) DeleteMaze(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Service.Delete(r.Context(), name); err != nil {
		s.writeError(w, "DeleteMaze", err)
		return
	}
	s.publish(name, "maze.deleted", nil, nil)
	w.WriteHeader(http.StatusNoContent)
}

// EditCell handles POST /mazes/{name}/cells.
func (s *Server) EditCell(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var body CellRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeStatus(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("EditCell: Invalid request body", "err", err)
		return
	}

	op, ok := cellOps[strings.ToLower(body.Op)]
	if !ok {
		s.writeStatus(w, http.StatusBadRequest, fmt.Sprintf("unknown op %q", body.Op))
		return
	}

	var applied bool
	g, err := s.Service.Edit(r.Context(), name, func(g *domain.Grid) error {
		applied = op(g, body.X, body.Y)
		return nil
	})
	if err != nil {
		s.writeError(w, "EditCell", err)
		return
	}
	if applied {
		s.publish(name, "maze.updated", g, nil)
	}
	s.writeJSON(w, http.StatusOK, CellResponse{Applied: applied, Maze: mapMaze(name, g)})
}

var cellOps = map[string]func(g *domain.Grid, x, y int) bool{
	"wall":        (*domain.Grid).SetWall,
	"start":       (*domain.Grid).SetStart,
	"destination": (*domain.Grid).SetDestination,
	"dest":        (*domain.Grid).SetDestination,
	"clear":       (*domain.Grid).ClearCell,
	"erase":       (*domain.Grid).ClearCell,
}

// ClearMaze handles POST /mazes/{name}/clear. With ?explored=true only search
// results are removed.
func (s *Server) ClearMaze(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	exploredOnly, err := boolQuery(r, "explored")
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := s.Service.Edit(r.Context(), name, func(g *domain.Grid) error {
		if exploredOnly {
			g.ClearExplored()
		} else {
			g.Clear()
		}
		return nil
	})
	if err != nil {
		s.writeError(w, "ClearMaze", err)
		return
	}
	s.publish(name, "maze.updated", g, nil)
	s.writeJSON(w, http.StatusOK, mapMaze(name, g))
}

// SolveMaze handles POST /mazes/{name}/solve?mode=A*&persist=true.
func (s *Server) SolveMaze(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	mode, err := modeQuery(r)
	if err != nil {
		s.writeError(w, "SolveMaze", err)
		return
	}
	persist, err := boolQuery(r, "persist")
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.Service.Solve(r.Context(), name, mode, wayfinder.SolveOptions{Persist: persist})
	if err != nil {
		s.writeError(w, "SolveMaze", err)
		return
	}

	resp := mapResult(res)
	s.publish(name, "maze.solved", nil, &resp)
	s.writeJSON(w, http.StatusOK, resp)
}

// SolveGrid handles POST /solve with an inline grid.
func (s *Server) SolveGrid(w http.ResponseWriter, r *http.Request) {
	var body SolveGridRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGridBody)).Decode(&body); err != nil {
		s.writeStatus(w, http.StatusBadRequest, "invalid request body")
		s.logger.Warn("SolveGrid: Invalid request body", "err", err)
		return
	}

	mode := domain.BFS
	if body.Mode != "" {
		var err error
		if mode, err = domain.ParseMode(body.Mode); err != nil {
			s.writeError(w, "SolveGrid", err)
			return
		}
	}

	g, err := gridfile.Unmarshal([]byte(body.Grid))
	if err != nil {
		s.writeError(w, "SolveGrid", err)
		return
	}

	res, err := s.Service.SolveGrid(r.Context(), g, mode)
	if err != nil {
		s.writeError(w, "SolveGrid", err)
		return
	}
	s.writeJSON(w, http.StatusOK, mapResult(res))
}

// SubscribeEvents handles GET /mazes/{name}/events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeStatus(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	name := chi.URLParam(r, "name")
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(name)
	defer cancel()
	s.logger.Info("SSE: Subscribing to maze updates", "maze", name)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE client disconnected", "maze", name)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) publish(name, kind string, g *domain.Grid, solve *SolveResponse) {
	if s.Streams.Subscribers(name) == 0 {
		return
	}
	ev := Event{Type: kind, Maze: name, Solve: solve}
	if g != nil {
		ev.Rows = gridfile.EncodeRows(g)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("Failed to encode event", "maze", name, "err", err)
		return
	}
	s.Streams.Broadcast(name, string(data))
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var syntax *gridfile.SyntaxError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrMazeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMazeExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReadOnly):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnknownMode),
		errors.Is(err, domain.ErrInvalidDimensions),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, gridfile.ErrEmpty),
		errors.As(err, &syntax):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrMissingStart),
		errors.Is(err, domain.ErrMissingDestination),
		errors.Is(err, domain.ErrSearchLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Debug(op+" rejected", "status", status, "err", err)
	}
	s.writeStatus(w, status, err.Error())
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func modeQuery(r *http.Request) (domain.Mode, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return domain.BFS, nil
	}
	return domain.ParseMode(raw)
}

func boolQuery(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func wantsText(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Accept"), "text/plain")
}
