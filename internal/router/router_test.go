package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"book-store-api/internal/db"
	"book-store-api/internal/handlers"
	"book-store-api/internal/router"
	"book-store-api/internal/store/badgerstore"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()

	bdb, err := db.OpenBadger(db.InMemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bdb.Close() })

	s := badgerstore.NewBookStore(bdb, "books")
	logger := zap.NewNop()
	return router.New(handlers.NewBookHandler(s, nil, logger), handlers.NewRootHandler(s, logger), logger)
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func TestRouter_BookLifecycle(t *testing.T) {
	h := newServer(t)

	w, created := do(t, h, http.MethodPost, "/book", `{"title":"Dune","author":"Herbert","publishYear":1965}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Dune", created["title"])
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, got := do(t, h, http.MethodGet, "/book/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, got["book"])

	w, updated := do(t, h, http.MethodPut, "/book/"+id, `{"title":"Dune","author":"Herbert","publishYear":1966}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book updated successfully", updated["message"])
	book := updated["book"].(map[string]any)
	assert.EqualValues(t, 1966, book["publishYear"])
	assert.Equal(t, id, book["id"])

	w, got = do(t, h, http.MethodGet, "/book/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1966, got["book"].(map[string]any)["publishYear"])

	w, list := do(t, h, http.MethodGet, "/book", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, list["count"])
	assert.Len(t, list["data"], 1)
}

func TestRouter_MissingFieldsPersistNothing(t *testing.T) {
	h := newServer(t)

	w, body := do(t, h, http.MethodPost, "/book", `{"title":"Dune","author":"Herbert"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Send all required fields: title, author, publishYear", body["message"])

	_, list := do(t, h, http.MethodGet, "/book", "")
	assert.EqualValues(t, 0, list["count"])
	assert.Equal(t, []any{}, list["data"])
}

func TestRouter_NotFoundAndErrors(t *testing.T) {
	h := newServer(t)

	w, body := do(t, h, http.MethodGet, "/book/65a1f0c2e4b0a1b2c3d4e5f6", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Book not found", body["message"])

	w, _ = do(t, h, http.MethodPut, "/book/65a1f0c2e4b0a1b2c3d4e5f6", `{"title":"Dune","author":"Herbert","publishYear":1966}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, list := do(t, h, http.MethodGet, "/book", "")
	assert.EqualValues(t, 0, list["count"])

	w, body = do(t, h, http.MethodGet, "/book/not-an-id", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, body["message"], "not-an-id")

	w, body = do(t, h, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", body["message"])

	w, body = do(t, h, http.MethodDelete, "/book/65a1f0c2e4b0a1b2c3d4e5f6", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method not allowed", body["message"])
}

func TestRouter_RootAndHealth(t *testing.T) {
	h := newServer(t)

	w, _ := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to MERN stack tutorial", w.Body.String())

	w, _ = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouter_StoreErrorMessageIsUnchanged(t *testing.T) {
	bdb, err := db.OpenBadger(db.InMemoryPath)
	require.NoError(t, err)

	s := badgerstore.NewBookStore(bdb, "books")
	logger := zap.NewNop()
	h := router.New(handlers.NewBookHandler(s, nil, logger), handlers.NewRootHandler(s, logger), logger)

	w, created := do(t, h, http.MethodPost, "/book", `{"title":"Dune","author":"Herbert","publishYear":1965}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := created["id"].(string)

	require.NoError(t, bdb.Close())
	want := badger.ErrDBClosed.Error()

	w, body := do(t, h, http.MethodGet, "/book", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, want, body["message"])

	w, body = do(t, h, http.MethodPost, "/book", `{"title":"Dune","author":"Herbert","publishYear":1965}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, want, body["message"])

	w, body = do(t, h, http.MethodGet, "/book/"+id, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, want, body["message"])

	w, body = do(t, h, http.MethodPut, "/book/"+id, `{"title":"Dune","author":"Herbert","publishYear":1966}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, want, body["message"])
}
