package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FrodeRanders/dicom-tools/model"
	"github.com/FrodeRanders/dicom-tools/xpath"
)

type documentInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	SourcePath string `json:"source_path,omitempty"`
}

// handleListDocuments lists the loaded documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	infos := make([]documentInfo, 0, len(s.docs))
	for _, doc := range s.docs {
		infos = append(infos, documentInfo{
			Name:       doc.Name(),
			Type:       doc.Type(),
			SourcePath: doc.SourcePath(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": infos})
}

// handleGetDocument renders one document as text. The recurse query
// parameter ("false" to disable) controls whether nested sequence
// items are included.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, ok := s.document(name)
	if !ok {
		jsonError(w, "no such document: "+name, http.StatusNotFound)
		return
	}

	recurse := r.URL.Query().Get("recurse") != "false"

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(doc.Root().AsText(recurse)))
}

type queryRequest struct {
	Document   string `json:"document"`
	Expression string `json:"expression"`
}

type queryMatch struct {
	Node  string `json:"node"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// handleQuery evaluates a path expression against a document and
// returns the matching nodes.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Expression == "" {
		jsonError(w, "expression is required", http.StatusBadRequest)
		return
	}

	doc, ok := s.document(req.Document)
	if !ok {
		jsonError(w, "no such document: "+req.Document, http.StatusNotFound)
		return
	}

	expr, err := xpath.Compile(req.Expression)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	nodes := expr.SelectNodes(doc.Root())
	matches := make([]queryMatch, 0, len(nodes))
	for _, node := range nodes {
		switch n := node.(type) {
		case *model.Attribute:
			matches = append(matches, queryMatch{
				Node:  "attribute",
				Name:  n.Name(),
				Value: n.Text,
			})
		case *model.Element:
			matches = append(matches, queryMatch{
				Node: "element",
				Name: n.Name,
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"expression": req.Expression,
		"matches":    matches,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
