// Package api exposes loaded documents over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/FrodeRanders/dicom-tools/model"
)

// Server is the HTTP API server for browsing and querying documents.
type Server struct {
	router chi.Router
	docs   []*model.Document
	byName map[string]*model.Document
	logger *zap.Logger
}

// NewServer creates and configures the HTTP server over the given
// documents. The document list order is preserved in listings.
func NewServer(docs []*model.Document, logger *zap.Logger) *Server {
	s := &Server{
		docs:   docs,
		byName: make(map[string]*model.Document, len(docs)),
		logger: logger,
	}
	for _, doc := range docs {
		if _, ok := s.byName[doc.Name()]; !ok {
			s.byName[doc.Name()] = doc
		}
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Get("/api/documents", s.handleListDocuments)
	r.Get("/api/documents/{name}", s.handleGetDocument)
	r.Post("/api/query", s.handleQuery)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) document(name string) (*model.Document, bool) {
	doc, ok := s.byName[name]
	return doc, ok
}
