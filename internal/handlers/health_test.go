package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func setupHealthTest(ping pingerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHealthHandler(ping).RegisterRoutes(router)
	return router
}

func doHealthGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := setupHealthTest(nil)

	w := doHealthGet(router, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), "pluglr-auth-api")
}

func TestReadiness_DatabaseUp(t *testing.T) {
	router := setupHealthTest(func(ctx context.Context) error { return nil })

	w := doHealthGet(router, "/ready")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}

func TestReadiness_DatabaseDown(t *testing.T) {
	router := setupHealthTest(func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	w := doHealthGet(router, "/ready")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"not ready"`)
	assert.Contains(t, w.Body.String(), `"database":"unreachable"`)
}
