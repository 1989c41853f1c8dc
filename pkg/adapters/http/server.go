// Package http exposes a drake over HTTP: remote hosts post pointer samples
// and control calls, read the layout and follow events over SSE.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/drake"
	"github.com/aretw0/drake/internal/dto"
	"github.com/aretw0/drake/pkg/board"
	"github.com/aretw0/drake/pkg/domain"
	"github.com/aretw0/drake/pkg/persistence"
	"github.com/aretw0/drake/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serializes access to one board and its drake.
type Server struct {
	Streams *StreamManager

	board    *board.Board
	drake    *drake.Drake
	store    ports.LayoutStore
	locker   ports.DistributedLocker
	layouts  *persistence.Manager
	gatherer prometheus.Gatherer
	logger   *slog.Logger

	mu      sync.Mutex
	pending []dto.Event
	dirty   bool
}

// Option configures a Server.
type Option func(*Server)

// WithStore persists the layout after every session that changed it.
func WithStore(store ports.LayoutStore) Option {
	return func(s *Server) { s.store = store }
}

// WithLocker guards layout writes with a distributed lock.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Server) { s.locker = locker }
}

// WithGatherer serves the gathered metrics on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer wires a server to d, which must operate on b's document.
func NewServer(b *board.Board, d *drake.Drake, opts ...Option) *Server {
	s := &Server{board: b, drake: d, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	if s.store != nil {
		s.layouts = persistence.NewManager(s.store,
			persistence.WithLocker(s.locker),
			persistence.WithLogger(s.logger),
		)
	}
	for _, t := range domain.EventTypes {
		d.On(t, s.record)
	}
	return s
}

// record runs inside drake calls, which only happen with s.mu held.
func (s *Server) record(e domain.Event) error {
	ev := dto.FromEvent(e)
	s.pending = append(s.pending, ev)
	switch e.Type {
	case domain.EventDrop, domain.EventRemove:
		s.dirty = true
	case domain.EventCancel:
		s.dirty = s.dirty || e.Moved
	}
	if payload, err := json.Marshal(ev); err == nil {
		s.Streams.Broadcast(string(payload))
	}
	return nil
}

// Restore applies the stored layout, if any, to the board.
func (s *Server) Restore(ctx context.Context) error {
	if s.layouts == nil {
		return nil
	}
	layout, err := s.layouts.Load(ctx, s.board.Name)
	if errors.Is(err, domain.ErrLayoutNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore layout: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Apply(layout)
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.getHealth)
	r.Get("/board", s.getBoard)
	r.Post("/pointer", s.postPointer)
	r.Post("/control/{action}", s.postControl)
	r.Get("/events", s.subscribeEvents)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BoardResponse is the body of GET /board.
type BoardResponse struct {
	Layout  *domain.Layout `json:"layout"`
	Phase   string         `json:"phase"`
	Session string         `json:"session_id,omitempty"`
	Item    string         `json:"item,omitempty"`
}

// StepResponse reports what a pointer or control call did.
type StepResponse struct {
	Phase    string      `json:"phase"`
	Events   []dto.Event `json:"events"`
	Accepted *bool       `json:"accepted,omitempty"`
	Errors   string      `json:"errors,omitempty"`
}

// ControlRequest is the body of POST /control/{action}.
type ControlRequest struct {
	Item    string `json:"item,omitempty"`
	Target  string `json:"target,omitempty"`
	Sibling string `json:"sibling,omitempty"`
	Revert  *bool  `json:"revert,omitempty"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"board":   s.board.Name,
		"version": strings.TrimSpace(drake.Version),
	})
}

func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := BoardResponse{
		Layout: s.board.Snapshot(),
		Phase:  string(s.drake.Phase()),
	}
	if sess, ok := s.drake.Session(); ok {
		resp.Session = sess.ID
		resp.Item = sess.Item.ID
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) postPointer(w http.ResponseWriter, r *http.Request) {
	var body dto.Pointer
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("pointer: invalid request body", "error", err)
		return
	}
	var call func(domain.PointerEvent) error
	switch body.Type {
	case "down":
		call = s.drake.PointerDown
	case "move":
		call = s.drake.PointerMove
	case "up":
		call = s.drake.PointerUp
	default:
		http.Error(w, fmt.Sprintf("Unknown pointer type %q", body.Type), http.StatusBadRequest)
		return
	}
	s.step(w, r, func() (*bool, error) {
		return nil, call(body.PointerEvent())
	})
}

func (s *Server) postControl(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	var body ControlRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			s.logger.Warn("control: invalid request body", "action", action, "error", err)
			return
		}
	}

	var call func() (*bool, error)
	switch action {
	case "start":
		call = func() (*bool, error) {
			item := s.board.Node(body.Item)
			if item == nil {
				return nil, fmt.Errorf("%w: %q", domain.ErrUnknownNode, body.Item)
			}
			return nil, s.drake.Start(item)
		}
	case "moveto":
		call = func() (*bool, error) {
			target := s.board.Container(body.Target)
			if target == nil {
				return nil, fmt.Errorf("%w: container %q", domain.ErrUnknownNode, body.Target)
			}
			sibling := s.board.Node(body.Sibling)
			if body.Sibling != "" && sibling == nil {
				return nil, fmt.Errorf("%w: %q", domain.ErrUnknownNode, body.Sibling)
			}
			ok, err := s.drake.MoveTo(target, sibling)
			return &ok, err
		}
	case "end":
		call = func() (*bool, error) { return nil, s.drake.End() }
	case "cancel":
		call = func() (*bool, error) {
			if body.Revert != nil {
				return nil, s.drake.CancelWithRevert(*body.Revert)
			}
			return nil, s.drake.Cancel()
		}
	case "remove":
		call = func() (*bool, error) { return nil, s.drake.Remove() }
	default:
		http.Error(w, fmt.Sprintf("Unknown action %q", action), http.StatusNotFound)
		return
	}
	s.step(w, r, call)
}

// step runs call against the drake and answers with the events it emitted.
// Listener errors do not fail the request; they are reported alongside.
func (s *Server) step(w http.ResponseWriter, r *http.Request, call func() (*bool, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = s.pending[:0]
	accepted, err := call()
	if errors.Is(err, domain.ErrUnknownNode) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	resp := StepResponse{
		Phase:    string(s.drake.Phase()),
		Events:   slices.Clone(s.pending),
		Accepted: accepted,
	}
	if resp.Events == nil {
		resp.Events = []dto.Event{}
	}
	if err != nil {
		resp.Errors = err.Error()
		s.logger.Warn("listener failed", "error", err)
	}

	if s.dirty {
		s.dirty = false
		if err := s.persist(r.Context()); err != nil {
			s.logger.Error("persist layout failed", "board", s.board.Name, "error", err)
			http.Error(w, fmt.Sprintf("Persist error: %v", err), http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) persist(ctx context.Context) error {
	if s.layouts == nil {
		return nil
	}
	return s.layouts.Save(ctx, s.board.Name, s.board.Snapshot())
}

// subscribeEvents streams events as SSE. The optional types query parameter
// is a comma separated list of event types to keep.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	var keep []string
	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			keep = append(keep, strings.TrimSpace(t))
		}
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev dto.Event
			if err := json.Unmarshal([]byte(msg), &ev); err != nil {
				continue
			}
			if len(keep) > 0 && !slices.Contains(keep, ev.Type) {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, msg)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
