// Package notiontest provides an in-memory Notion API for tests.
package notiontest

import (
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/maxaizer/job-saver/internal/clients/notion"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Server struct {
	*httptest.Server

	Token      string
	DatabaseID string

	mu       sync.Mutex
	pages    []notion.Page
	requests atomic.Int64
}

// NewServer starts a fake that accepts only token and serves a single database.
func NewServer(token, databaseID string) *Server {
	s := &Server{Token: token, DatabaseID: databaseID}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Requests counts every request that reached the fake, authorized or not.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

func (s *Server) Pages() []notion.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notion.Page(nil), s.pages...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	if r.Header.Get("Authorization") != "Bearer "+s.Token {
		writeError(w, http.StatusUnauthorized, notion.CodeUnauthorized, "API token is invalid.")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v1")
	switch {
	case r.Method == http.MethodPost && path == "/pages":
		s.createPage(w, r)
	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/pages/"):
		s.updatePage(w, r, strings.TrimPrefix(path, "/pages/"))
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/databases/") && strings.HasSuffix(path, "/query"):
		s.queryDatabase(w, strings.TrimSuffix(strings.TrimPrefix(path, "/databases/"), "/query"))
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/databases/"):
		s.retrieveDatabase(w, strings.TrimPrefix(path, "/databases/"))
	default:
		writeError(w, http.StatusBadRequest, "invalid_request_url", "Invalid request URL.")
	}
}

func (s *Server) knowsDatabase(id string) bool {
	return strings.ReplaceAll(id, "-", "") == strings.ReplaceAll(s.DatabaseID, "-", "")
}

func (s *Server) createPage(w http.ResponseWriter, r *http.Request) {
	var request notion.CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if !s.knowsDatabase(request.Parent.DatabaseID) {
		writeNotFound(w, request.Parent.DatabaseID)
		return
	}

	page := notion.Page{
		Object:      "page",
		ID:          uuid.NewString(),
		CreatedTime: time.Now().UTC(),
		Properties:  request.Properties,
	}

	s.mu.Lock()
	s.pages = append(s.pages, page)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, page)
}

func (s *Server) updatePage(w http.ResponseWriter, r *http.Request, id string) {
	var request struct {
		Properties map[string]notion.PropertyValue `json:"properties"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pages {
		if s.pages[i].ID != id {
			continue
		}
		if s.pages[i].Properties == nil {
			s.pages[i].Properties = map[string]notion.PropertyValue{}
		}
		for name, value := range request.Properties {
			s.pages[i].Properties[name] = value
		}
		writeJSON(w, http.StatusOK, s.pages[i])
		return
	}
	writeError(w, http.StatusNotFound, notion.CodeObjectNotFound, fmt.Sprintf("Could not find page with ID: %s.", id))
}

func (s *Server) queryDatabase(w http.ResponseWriter, id string) {
	if !s.knowsDatabase(id) {
		writeNotFound(w, id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"object":      "list",
		"results":     s.Pages(),
		"has_more":    false,
		"next_cursor": nil,
	})
}

func (s *Server) retrieveDatabase(w http.ResponseWriter, id string) {
	if !s.knowsDatabase(id) {
		writeNotFound(w, id)
		return
	}
	writeJSON(w, http.StatusOK, notion.Database{Object: "database", ID: s.DatabaseID})
}

func writeNotFound(w http.ResponseWriter, id string) {
	writeError(w, http.StatusNotFound, notion.CodeObjectNotFound,
		fmt.Sprintf("Could not find database with ID: %s. Make sure the relevant pages and databases are shared with your integration.", id))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{"object": "error", "status": status, "code": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
