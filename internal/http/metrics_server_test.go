package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/users/internal/metrics"
)

func TestNewMetricsServer(t *testing.T) {
	t.Run("ServesMetricsEndpoint", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		provider, err := metrics.NewProvider("users_test")
		require.NoError(t, err)
		t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

		server := NewMetricsServer("127.0.0.1", 0, testLogger(), provider)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		recorder := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("NoProviderNoEndpoint", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		server := NewMetricsServer("127.0.0.1", 0, testLogger(), nil)

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		recorder := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestMetricsServer_Shutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	server := NewMetricsServer("127.0.0.1", 0, testLogger(), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(ctx))
}
