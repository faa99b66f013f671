// Package sampleapp serves the lab's demo workload: a small HTTP service
// that reads and writes the lab's blob container using whatever credential
// the environment provides. Inside the cluster that credential comes from
// workload identity, which is the point of the exercise.
package sampleapp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imamik/akslab/internal/blob"
)

// now is replaceable in tests for deterministic blob names.
var now = time.Now

// Server is the sample application.
type Server struct {
	store          blob.Store
	storageAccount string
	container      string
	router         *mux.Router
}

// NewServer wires the routes for the given store.
func NewServer(store blob.Store, storageAccount, container string) *Server {
	s := &Server{
		store:          store,
		storageAccount: storageAccount,
		container:      container,
		router:         mux.NewRouter(),
	}

	s.router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/list", s.handleList).Methods(http.MethodGet)
	s.router.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, homePage, s.storageAccount, s.container)
	httpRequestsTotal.WithLabelValues("/", "200").Inc()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	err := s.store.Ping(r.Context())
	observeStorage("ping", err)
	if err != nil {
		log.Printf("health check failed: %v", err)
		s.writeJSON(w, "/health", http.StatusInternalServerError, map[string]any{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": now().UTC().Format(time.RFC3339),
		})
		return
	}

	s.writeJSON(w, "/health", http.StatusOK, map[string]any{
		"status":          "healthy",
		"storage_account": s.storageAccount,
		"container":       s.container,
		"authentication":  "workload_identity",
		"timestamp":       now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.List(r.Context())
	observeStorage("list", err)
	if err != nil {
		log.Printf("failed to list blobs: %v", err)
		s.writeJSON(w, "/list", http.StatusInternalServerError, map[string]any{
			"error":     err.Error(),
			"timestamp": now().UTC().Format(time.RFC3339),
		})
		return
	}

	if items == nil {
		items = []blob.Item{}
	}
	log.Printf("listed %d blobs from container %s", len(items), s.container)
	s.writeJSON(w, "/list", http.StatusOK, map[string]any{
		"container":  s.container,
		"blob_count": len(items),
		"blobs":      items,
		"timestamp":  now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	timestamp := now().UTC().Format(time.RFC3339)
	blobName := fmt.Sprintf("test-file-%s.txt", timestamp)
	content := fmt.Sprintf("Test file created at %s\nThis file was uploaded using workload identity!\n", timestamp)

	err := s.store.Upload(r.Context(), blobName, []byte(content))
	observeStorage("upload", err)
	if err != nil {
		log.Printf("failed to upload blob: %v", err)
		s.writeJSON(w, "/upload", http.StatusInternalServerError, map[string]any{
			"status":    "error",
			"error":     err.Error(),
			"timestamp": timestamp,
		})
		return
	}

	log.Printf("uploaded blob %s", blobName)
	s.writeJSON(w, "/upload", http.StatusOK, map[string]any{
		"status":    "success",
		"blob_name": blobName,
		"container": s.container,
		"size":      len(content),
		"message":   "File uploaded successfully using managed identity",
		"timestamp": timestamp,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, endpoint string, code int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
	httpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

const homePage = `<!DOCTYPE html>
<html>
<head><title>AKS Storage Lab - Sample App</title></head>
<body>
  <h1>AKS Storage Lab - Sample Application</h1>
  <ul>
    <li><strong>Storage Account:</strong> %s</li>
    <li><strong>Container:</strong> %s</li>
    <li><strong>Authentication:</strong> Workload Identity (Managed Identity)</li>
  </ul>
  <h2>Endpoints</h2>
  <ul>
    <li><code>GET /health</code> - health check</li>
    <li><code>GET /list</code> - list blobs in the container</li>
    <li><code>POST /upload</code> - upload a test file</li>
    <li><code>GET /metrics</code> - Prometheus metrics</li>
  </ul>
</body>
</html>
`
