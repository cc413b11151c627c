package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/property_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSwaggerRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("served outside production", func(t *testing.T) {
		r := gin.New()
		setupSwaggerRoutes(r, &config.Config{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var doc struct {
			Paths map[string]map[string]any `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
		assert.Contains(t, doc.Paths, "/api/v1/organizations/{organization_id}/pending/{pending_id}/confirm")
		assert.Contains(t, doc.Paths["/api/v1/organizations/{organization_id}/recurring/expand"], "post")
	})

	t.Run("hidden in production", func(t *testing.T) {
		r := gin.New()
		setupSwaggerRoutes(r, &config.Config{IsProduction: true})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig(&config.Config{}).AllowAllOrigins)

	c := corsConfig(&config.Config{CORSAllowedOrigins: []string{"https://app.example"}})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example"}, c.AllowOrigins)
}
