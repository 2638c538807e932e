package recorder

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqsink/reqsink/pkg/collection"
	"github.com/reqsink/reqsink/pkg/snapshot"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func loadCollection(t *testing.T, path string) *collection.Collection {
	t.Helper()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	doc := &collection.Collection{}
	require.NoError(t, json.Unmarshal(contents, doc))
	return doc
}

func TestCollectionRecorder(t *testing.T) {
	assert := assert2.New(t)

	t.Run("records before handler and passes request through", func(t *testing.T) {
		dir := t.TempDir()
		var sawBody string

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			sawBody = string(body)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("created"))
		})

		wrapped := Collection(WithName("shop"), WithDir(dir))(handler)

		req := httptest.NewRequest("POST", "http://localhost:8000/users", strings.NewReader(`{"name":"John"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		// response untouched
		assert.Equal(http.StatusCreated, rec.Code)
		assert.Equal("created", rec.Body.String())
		// handler still saw the body
		assert.Equal(`{"name":"John"}`, sawBody)

		doc := loadCollection(t, filepath.Join(dir, "shop.json"))
		assert.Len(doc.Item, 1)
		assert.Equal("POST /users", doc.Item[0].Name)
	})

	t.Run("artifact survives handler panic", func(t *testing.T) {
		dir := t.TempDir()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
		wrapped := Collection(WithName("shop"), WithDir(dir))(handler)

		req := httptest.NewRequest("GET", "http://localhost/items/1", nil)
		assert.PanicsWithValue("boom", func() {
			wrapped.ServeHTTP(httptest.NewRecorder(), req)
		})

		doc := loadCollection(t, filepath.Join(dir, "shop.json"))
		assert.Len(doc.Item, 1)
	})

	t.Run("storage failure does not affect response", func(t *testing.T) {
		base := t.TempDir()
		blocker := filepath.Join(base, "blocked")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		wrapped := Collection(WithName("shop"), WithDir(blocker))(handler)

		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "http://localhost/x", nil))

		assert.Equal(http.StatusOK, rec.Code)
		assert.Equal("ok", rec.Body.String())
	})

	t.Run("records into history when configured", func(t *testing.T) {
		dir := t.TempDir()
		history := &fakeHistory{}

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		wrapped := Collection(WithName("shop"), WithDir(dir), WithHistory(history))(handler)

		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "http://localhost/items", nil))

		require.Len(t, history.seen, 1)
		assert.Equal("GET", history.seen[0].Method)
	})
}

func TestScriptRecorder(t *testing.T) {
	assert := assert2.New(t)

	t.Run("records block and propagates response", func(t *testing.T) {
		dir := t.TempDir()

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		wrapped := Script(WithName("shop"), WithDir(dir))(handler)

		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, httptest.NewRequest("DELETE", "http://localhost/items/1", nil))

		assert.Equal(http.StatusNoContent, rec.Code)

		contents, err := os.ReadFile(filepath.Join(dir, "shop.sh"))
		require.NoError(t, err)
		assert.Contains(string(contents), "-X DELETE")
	})

	t.Run("group mode accumulates blocks across requests", func(t *testing.T) {
		dir := t.TempDir()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		wrapped := Script(WithName("shop"), WithDir(dir), WithGroupMode(true))(handler)

		for i := 0; i < 3; i++ {
			wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "http://localhost/items", nil))
		}

		contents, err := os.ReadFile(filepath.Join(dir, "shop.sh"))
		require.NoError(t, err)
		assert.Equal(3, strings.Count(string(contents), "\ncurl"))
	})

	t.Run("non-group mode keeps one block", func(t *testing.T) {
		dir := t.TempDir()
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		wrapped := Script(WithName("shop"), WithDir(dir), WithGroupMode(false))(handler)

		for i := 0; i < 3; i++ {
			wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "http://localhost/items", nil))
		}

		contents, err := os.ReadFile(filepath.Join(dir, "shop.sh"))
		require.NoError(t, err)
		assert.Equal(1, strings.Count(string(contents), "\ncurl"))
	})
}

func TestStackedRecorders(t *testing.T) {
	assert := assert2.New(t)

	collectionDir := t.TempDir()
	scriptDir := t.TempDir()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	})

	wrapped := Collection(WithName("shop"), WithDir(collectionDir))(
		Script(WithName("shop"), WithDir(scriptDir))(handler),
	)

	req := httptest.NewRequest("POST", "http://localhost/users", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	// each recorder wrote its own artifact, handler still got the body
	assert.Equal(`{"a":1}`, rec.Body.String())

	_, err := os.Stat(filepath.Join(collectionDir, "shop.json"))
	assert.NoError(err)
	_, err = os.Stat(filepath.Join(scriptDir, "shop.sh"))
	assert.NoError(err)
}

func TestHandlerName(t *testing.T) {
	assert := assert2.New(t)

	t.Run("derived from function name", func(t *testing.T) {
		name := handlerName(http.HandlerFunc(namedHandler))
		assert.Equal("namedhandler", name)
	})

	t.Run("struct handler uses type name", func(t *testing.T) {
		name := handlerName(&typedHandler{})
		assert.Equal("typedhandler", name)
	})

	t.Run("nil handler falls back", func(t *testing.T) {
		assert.Equal(fallbackName, handlerName(nil))
	})
}

func namedHandler(w http.ResponseWriter, r *http.Request) {}

type typedHandler struct{}

func (h *typedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

type fakeHistory struct {
	seen []*snapshot.Snapshot
}

func (f *fakeHistory) Set(_ context.Context, snap *snapshot.Snapshot) {
	f.seen = append(f.seen, snap)
}

func (f *fakeHistory) Get(_ context.Context, _, _ string) (*snapshot.Snapshot, bool) {
	return nil, false
}

func (f *fakeHistory) Data(_ context.Context) map[string]*snapshot.Snapshot {
	return nil
}

func (f *fakeHistory) Clear(_ context.Context) {}
