package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rcc-backend/internal/syncstore/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	data       map[string]string
	configured bool
}

func (f *fakeStore) Configured() bool { return f.configured }

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) (bool, error) {
	f.data[key] = value
	return true, nil
}

func newSyncRouter(store usecase.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSyncHandler(usecase.NewSyncUsecase(store))
	sync := r.Group("/api/sync")
	sync.Use(CORSMiddleware())
	{
		sync.GET("", h.GetValue)
		sync.POST("", h.SetValue)
		sync.OPTIONS("", func(c *gin.Context) {})
	}
	return r
}

func TestGetValue(t *testing.T) {
	store := &fakeStore{configured: true, data: map[string]string{
		"rcc:overview-order": `["bookings","enquiries","stocks","accounts","weather"]`,
	}}
	r := newSyncRouter(store)

	t.Run("stored value", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sync?key=overview-order", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"value":["bookings","enquiries","stocks","accounts","weather"]}`, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("absent key is null not error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sync?key=stock-symbols", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"value":null}`, w.Body.String())
	})

	t.Run("missing key param", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sync", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("disallowed key", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sync?key=jwt-secret", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetValueNotConfigured(t *testing.T) {
	r := newSyncRouter(&fakeStore{configured: false})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sync?key=overview-order", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"error":"KV not configured"}`, w.Body.String())
}

func TestSetValue(t *testing.T) {
	store := &fakeStore{configured: true, data: map[string]string{}}
	r := newSyncRouter(store)

	t.Run("object value", func(t *testing.T) {
		body := `{"key":"credit-card-balances","value":{"fluid":1234.5,"fluid-updated":"2026-01-10"}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		assert.JSONEq(t, `{"fluid":1234.5,"fluid-updated":"2026-01-10"}`, store.data["rcc:credit-card-balances"])
	})

	t.Run("disallowed key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{"key":"nope","value":1}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`not json`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPreflight(t *testing.T) {
	r := newSyncRouter(&fakeStore{configured: true, data: map[string]string{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/sync", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}
