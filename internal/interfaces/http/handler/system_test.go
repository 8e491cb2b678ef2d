package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping() error { return p.err }

func newSystemRouter(db Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewSystemHandler(db).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		r := newSystemRouter(stubPinger{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"ok"`)
	})

	t.Run("still 200 when the database is down", func(t *testing.T) {
		r := newSystemRouter(stubPinger{err: errors.New("connection refused")})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"unreachable"`)
	})
}

func TestSystemHandler_Ready(t *testing.T) {
	t.Run("ready when the database answers", func(t *testing.T) {
		r := newSystemRouter(stubPinger{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("503 while the database is unreachable", func(t *testing.T) {
		r := newSystemRouter(stubPinger{err: errors.New("connection refused")})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestSystemHandler_Info(t *testing.T) {
	r := newSystemRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/info", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goVersion")
}
