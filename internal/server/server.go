// Package server exposes one resume editor over a small JSON HTTP API.
//
// Every request is one editor event. The editor serializes events, so
// concurrent requests are applied one after another and each move is
// resolved against the latest committed sequence. Moves the resolver
// rejects are expected while a client drags; they answer 200 with
// applied=false instead of an error status.
//
//	GET    /healthz
//	GET    /palette
//	GET    /suggestions
//	GET    /templates
//	GET    /layout
//	GET    /document
//	GET    /sections
//	POST   /sections              {"type": "skills"}
//	GET    /sections/{id}
//	PATCH  /sections/{id}         {"title": "...", "content": "..."}
//	DELETE /sections/{id}
//	PUT    /sections/{id}/select
//	DELETE /selection
//	PUT    /template              {"template": "two-column"}
//	PUT    /styles                {"fontSize": "16px", "theme": "green"}
//	POST   /moves                 {"from": {"region": "left", "index": 1}, "to": {...}}
//	GET    /export.{format}       ?content=1&refresh=1&scale=2
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/resumake/pkg/cache"
	"github.com/matzehuels/resumake/pkg/editor"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/pipeline"
)

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 20

// CommitFunc is called with a snapshot after every successful change.
type CommitFunc func(ctx context.Context, doc pkgio.Document) error

// Server serves the HTTP API for one editor.
type Server struct {
	editor *editor.Editor
	runner *pipeline.Runner
	logger *log.Logger
	commit CommitFunc
	router chi.Router

	commitMu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunner sets the export pipeline. Without one, exports render
// uncached.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) { s.runner = r }
}

// WithCommit registers fn to persist the document after each change. A
// failing commit is logged; the change itself stays applied.
func WithCommit(fn CommitFunc) Option {
	return func(s *Server) { s.commit = fn }
}

// New creates a server for e.
func New(e *editor.Editor, opts ...Option) *Server {
	s := &Server{
		editor: e,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(cache.NewNullCache(), nil, s.logger)
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/palette", s.handlePalette)
	r.Get("/suggestions", s.handleSuggestions)
	r.Get("/templates", s.handleTemplates)
	r.Get("/layout", s.handleLayout)
	r.Get("/document", s.handleDocument)

	r.Route("/sections", func(r chi.Router) {
		r.Get("/", s.handleListSections)
		r.Post("/", s.handleAddSection)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSection)
			r.Patch("/", s.handleUpdateSection)
			r.Delete("/", s.handleRemoveSection)
			r.Put("/select", s.handleSelect)
		})
	})
	r.Delete("/selection", s.handleClearSelection)

	r.Put("/template", s.handleSetTemplate)
	r.Put("/styles", s.handleSetStyles)
	r.Post("/moves", s.handleMove)
	r.Get("/export.{format}", s.handleExport)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, notFound(r.URL.Path))
	})
	return r
}

// committed persists the current document after a change.
func (s *Server) committed(ctx context.Context) {
	if s.commit == nil {
		return
	}
	s.commitMu.Lock()
	defer s.commitMu.Unlock()
	if err := s.commit(ctx, s.editor.Document()); err != nil {
		s.logger.Error("commit failed", "err", err)
	}
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
