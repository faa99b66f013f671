package sampleapp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akslab/internal/blob"
)

// fakeStore is an in-memory blob.Store.
type fakeStore struct {
	items   []blob.Item
	uploads map[string][]byte
	pingErr error
	listErr error
	upErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: make(map[string][]byte)}
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) List(context.Context) ([]blob.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeStore) Upload(_ context.Context, name string, content []byte) error {
	if f.upErr != nil {
		return f.upErr
	}
	f.uploads[name] = content
	return nil
}

func get(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec, decode(t, rec)
}

func post(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec, decode(t, rec)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return body
}

func TestHomePage(t *testing.T) {
	s := NewServer(newFakeStore(), "akslabstore", "data")

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "akslabstore")
	assert.Contains(t, rec.Body.String(), "Workload Identity")
}

func TestHealthHealthy(t *testing.T) {
	s := NewServer(newFakeStore(), "akslabstore", "data")

	rec, body := get(t, s, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "akslabstore", body["storage_account"])
	assert.Equal(t, "workload_identity", body["authentication"])
}

func TestHealthUnhealthy(t *testing.T) {
	store := newFakeStore()
	store.pingErr = errors.New("403 AuthorizationPermissionMismatch")
	s := NewServer(store, "akslabstore", "data")

	rec, body := get(t, s, "/health")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Contains(t, body["error"], "AuthorizationPermissionMismatch")
}

func TestListBlobs(t *testing.T) {
	store := newFakeStore()
	store.items = []blob.Item{
		{Name: "a.txt", Size: 12, LastModified: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "b.txt", Size: 34},
	}
	s := NewServer(store, "akslabstore", "data")

	rec, body := get(t, s, "/list")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data", body["container"])
	assert.EqualValues(t, 2, body["blob_count"])
	blobs, ok := body["blobs"].([]any)
	require.True(t, ok)
	require.Len(t, blobs, 2)
	first := blobs[0].(map[string]any)
	assert.Equal(t, "a.txt", first["name"])
}

func TestListEmptyContainer(t *testing.T) {
	s := NewServer(newFakeStore(), "akslabstore", "data")

	rec, body := get(t, s, "/list")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["blob_count"])
	assert.NotNil(t, body["blobs"])
}

func TestListError(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("container not found")
	s := NewServer(store, "akslabstore", "data")

	rec, body := get(t, s, "/list")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, body["error"], "container not found")
}

func TestUpload(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	defer func() { now = orig }()

	store := newFakeStore()
	s := NewServer(store, "akslabstore", "data")

	rec, body := post(t, s, "/upload")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "test-file-2025-06-01T12:00:00Z.txt", body["blob_name"])

	content, ok := store.uploads["test-file-2025-06-01T12:00:00Z.txt"]
	require.True(t, ok)
	assert.Contains(t, string(content), "workload identity")
}

func TestUploadError(t *testing.T) {
	store := newFakeStore()
	store.upErr = errors.New("write denied")
	s := NewServer(store, "akslabstore", "data")

	rec, body := post(t, s, "/upload")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestUploadRejectsGet(t *testing.T) {
	s := NewServer(newFakeStore(), "akslabstore", "data")

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/upload", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsExposed(t *testing.T) {
	s := NewServer(newFakeStore(), "akslabstore", "data")

	// Generate some traffic first.
	_, _ = get(t, s, "/health")

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sampleapp_http_requests_total")
}
