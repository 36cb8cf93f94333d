package preview

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/sidenav/internal/history"
	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// registerAPI mounts the JSON endpoints under /api/sidebars.
func (s *Server) registerAPI(r chi.Router) {
	r.Route("/api/sidebars", func(r chi.Router) {
		r.Get("/", s.handleNames)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleSidebar)
			r.Get("/validate", s.handleValidate)
			r.Get("/breadcrumbs", s.handleBreadcrumbs)
		})
	})
}

func (s *Server) handleNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sidebars": s.File().Names()})
}

// lookup resolves the {name} parameter, writing a 404 when unknown.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*sidebar.Sidebar, bool) {
	name := chi.URLParam(r, "name")
	sb, ok := s.File().Sidebar(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown sidebar " + name})
		return nil, false
	}
	return sb, true
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	sb, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sidebar.ItemsJSON(sb.Items))
}

// validateResponse is the JSON body of the validate endpoint.
type validateResponse struct {
	Sidebar  string            `json:"sidebar"`
	Valid    bool              `json:"valid"`
	Resolved bool              `json:"resolved"`
	Errors   int               `json:"errors"`
	Warnings int               `json:"warnings"`
	Counts   sidebar.Counts    `json:"counts"`
	Findings []history.Finding `json:"findings"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	sb, ok := s.lookup(w, r)
	if !ok {
		return
	}
	opts := s.cfg.Validate
	if s.cfg.Content != nil {
		opts.Resolver = s.cfg.Content
	}
	report := sidebar.Validate(sb.Items, opts)
	run := history.NewRun("preview", sb.Name, opts.Strict, opts.Resolver != nil, report)

	resp := validateResponse{
		Sidebar:  sb.Name,
		Valid:    run.Errors == 0,
		Resolved: run.Resolved,
		Errors:   run.Errors,
		Warnings: run.Warnings,
		Counts:   run.Counts,
		Findings: run.Findings,
	}
	if resp.Findings == nil {
		resp.Findings = []history.Finding{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	sb, ok := s.lookup(w, r)
	if !ok {
		return
	}
	doc := r.URL.Query().Get("doc")
	if doc == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "doc query parameter is required"})
		return
	}
	paths, err := sidebar.Breadcrumbs(sb.Items, doc)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(paths) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document " + doc + " is not in sidebar " + sb.Name})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doc": doc, "paths": paths})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
