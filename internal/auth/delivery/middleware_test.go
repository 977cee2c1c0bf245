package delivery

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	authdto "rcc-backend/internal/auth/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuth struct {
	enabled    bool
	validToken string
}

func (f *fakeAuth) Enabled() bool { return f.enabled }

func (f *fakeAuth) Login(*authdto.LoginRequest) (*authdto.TokenResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeAuth) ValidateToken(token string) error {
	if token == f.validToken {
		return nil
	}
	return errors.New("invalid or expired token")
}

func newGuardedRouter(auth *fakeAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/data", AuthMiddleware(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestMiddlewareDisabledPassesThrough(t *testing.T) {
	r := newGuardedRouter(&fakeAuth{enabled: false})
	assert.Equal(t, http.StatusOK, get(r, "").Code)
}

func TestMiddlewareEnforcesToken(t *testing.T) {
	r := newGuardedRouter(&fakeAuth{enabled: true, validToken: "good"})

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "good").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Basic good").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer bad").Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer good").Code)
}
