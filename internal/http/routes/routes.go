// Package routes exposes the addon's HTTP surface: the manifest and the
// catalog endpoints. The layer is deliberately thin — request parsing
// and JSON writing only; all aggregation lives in the catalog package.
package routes

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"

	"github.com/cinedesi/addon/catalog"
)

// Manifest describes the addon to clients.
type Manifest struct {
	ID          string            `json:"id"`
	Version     string            `json:"version"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Resources   []string          `json:"resources"`
	Types       []string          `json:"types"`
	Catalogs    []ManifestCatalog `json:"catalogs"`
	IDPrefixes  []string          `json:"idPrefixes"`
}

// ManifestCatalog is one catalog entry in the manifest.
type ManifestCatalog struct {
	Type  string       `json:"type"`
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Extra []ExtraField `json:"extra"`
}

// ExtraField declares a supported extra parameter (skip, search).
type ExtraField struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired,omitempty"`
}

type Server struct {
	Router   *chi.Mux
	Engine   *catalog.Engine
	Registry *catalog.Registry
	Manifest Manifest
}

type ServerOptions struct {
	Engine   *catalog.Engine
	Registry *catalog.Registry
	Name     string
	Version  string
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	// Addon clients are third-party players loading us cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))

	s := &Server{
		Router:   r,
		Engine:   opts.Engine,
		Registry: opts.Registry,
		Manifest: buildManifest(opts),
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/manifest.json", s.handleManifest)
	r.Get("/catalog/{type}/{id}.json", s.handleCatalog)
	r.Get("/catalog/{type}/{id}/{extra}.json", s.handleCatalog)

	return s
}

func buildManifest(opts ServerOptions) Manifest {
	m := Manifest{
		ID:          "com.cinedesi.catalog",
		Version:     opts.Version,
		Name:        opts.Name,
		Description: "Regional movie and series catalogs aggregated from TMDB",
		Resources:   []string{"catalog"},
		Types:       []string{"movie", "series"},
		IDPrefixes:  []string{"tt"},
	}
	for _, def := range opts.Registry.List() {
		m.Catalogs = append(m.Catalogs, ManifestCatalog{
			Type: catalog.MetaType(def.Kind),
			ID:   def.ID,
			Name: def.Name,
			Extra: []ExtraField{
				{Name: "skip"},
				{Name: "search"},
			},
		})
	}
	return m
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, s.Manifest)
}

// catalogResponse is the wire shape of a catalog page.
type catalogResponse struct {
	Metas []catalog.Meta `json:"metas"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	kind, ok := catalog.KindFor(chi.URLParam(r, "type"))
	if !ok {
		writeJSON(w, r, catalogResponse{Metas: []catalog.Meta{}})
		return
	}
	def, ok := s.Registry.Get(kind, chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, r, catalogResponse{Metas: []catalog.Meta{}})
		return
	}

	req := parseExtra(chi.URLParam(r, "extra"))
	metas := s.Engine.Catalog(r.Context(), def, req)
	writeJSON(w, r, catalogResponse{Metas: metas})
}

// parseExtra decodes the extra path segment ("skip=40", or
// "search=term&skip=20"). Malformed values degrade to the defaults.
func parseExtra(extra string) catalog.Request {
	var req catalog.Request
	if extra == "" {
		return req
	}
	vals, err := url.ParseQuery(extra)
	if err != nil {
		return req
	}
	req.Search = vals.Get("search")
	if skip, err := strconv.Atoi(vals.Get("skip")); err == nil && skip > 0 {
		req.Offset = skip
	}
	return req
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("write response failed")
	}
}
