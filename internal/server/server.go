// Package server exposes the structural core over HTTP for the host
// application: page CRUD against a pluggable store, whole-tree validation,
// statistics, and the move/duplicate mutations. It is a thin JSON shim; all
// semantics live in the rules and hierarchy packages.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/xxld0125/low-code-ai-sub004/pkg/component"
	"github.com/xxld0125/low-code-ai-sub004/pkg/hierarchy"
	"github.com/xxld0125/low-code-ai-sub004/pkg/store"
)

// Server wires the hierarchy manager and a page store into an HTTP handler.
type Server struct {
	mgr    *hierarchy.Manager
	pages  store.Store
	logger *log.Logger
}

// New creates a server. A nil manager selects the default rule table and a
// nil store selects the in-memory backend.
func New(mgr *hierarchy.Manager, pages store.Store, logger *log.Logger) *Server {
	if mgr == nil {
		mgr = hierarchy.NewManager(nil)
	}
	if pages == nil {
		pages = store.NewMemory()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{mgr: mgr, pages: pages, logger: logger}
}

// Handler returns the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/pages", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Post("/validate", s.handleValidate)
			r.Get("/stats", s.handleStats)
			r.Post("/move", s.handleMove)
			r.Post("/duplicate", s.handleDuplicate)
		})
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.pages.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": names})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	var doc component.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	doc.Name = chi.URLParam(r, "name")
	if _, err := doc.ToMap(); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if err := s.pages.Put(r.Context(), doc); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Debug("page stored", "name", doc.Name, "components", len(doc.Components))
	writeJSON(w, http.StatusOK, map[string]string{"name": doc.Name})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	comp, err := doc.ToMap()
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, s.mgr.Engine().EvaluateTree(comp, doc.RootID))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	comp, err := doc.ToMap()
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, s.mgr.Statistics(comp))
}

// moveRequest is the body of POST /pages/{name}/move.
type moveRequest struct {
	ComponentID string `json:"componentId"`
	NewParentID string `json:"newParentId"`
	NewIndex    int    `json:"newIndex"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	comp, err := doc.ToMap()
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}

	res := s.mgr.Move(req.ComponentID, req.NewParentID, req.NewIndex, comp)
	if !res.Success {
		writeJSON(w, http.StatusConflict, res)
		return
	}
	if err := s.persist(r, doc, res.Updated); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// duplicateRequest is the body of POST /pages/{name}/duplicate.
type duplicateRequest struct {
	ComponentID string `json:"componentId"`
}

func (s *Server) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadPage(w, r)
	if !ok {
		return
	}
	var req duplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	comp, err := doc.ToMap()
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}

	res := s.mgr.Duplicate(req.ComponentID, comp)
	if !res.Success {
		writeJSON(w, http.StatusConflict, res)
		return
	}
	if err := s.persist(r, doc, res.Updated); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// loadPage fetches the page named in the URL, writing the error response on
// failure.
func (s *Server) loadPage(w http.ResponseWriter, r *http.Request) (component.Document, bool) {
	name := chi.URLParam(r, "name")
	doc, err := s.pages.Get(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, http.StatusNotFound, err)
		return component.Document{}, false
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return component.Document{}, false
	}
	return doc, true
}

// persist writes an updated snapshot back under the document's name.
func (s *Server) persist(r *http.Request, doc component.Document, updated component.Map) error {
	return s.pages.Put(r.Context(), component.FromMap(doc.Name, doc.RootID, updated))
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
