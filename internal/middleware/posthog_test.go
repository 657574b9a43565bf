package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/juud-8/ContractorPro02-sub000/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteEventName(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/v1/invoices", "invoices_post"},
		{http.MethodGet, "/api/v1/invoices", "invoices_get"},
		{http.MethodPost, "/api/v1/invoices/:id/payments", "invoices_payments_post"},
		{http.MethodPost, "/api/v1/quotes/:id/convert", "quotes_convert_post"},
		{http.MethodDelete, "/api/v1/customers/:id", "customers_delete"},
		{http.MethodPatch, "/api/v1/settings", "settings_patch"},
		{http.MethodGet, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, middleware.RouteEventName(tt.method, tt.path))
		})
	}
}

func TestRouteProperties(t *testing.T) {
	props := middleware.RouteProperties("/api/v1/quotes/:id/status", gin.Params{{Key: "id", Value: "42"}})
	assert.Equal(t, "quote", props["resource"])
	assert.Equal(t, int64(42), props["resource_id"])

	props = middleware.RouteProperties("/api/v1/invoices/:id", gin.Params{{Key: "id", Value: "abc"}})
	assert.Equal(t, "invoice", props["resource"])
	assert.NotContains(t, props, "resource_id")

	props = middleware.RouteProperties("/health", nil)
	assert.Empty(t, props)
}

func TestPosthogMiddleware_DisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ClientIdentityMiddleware(), middleware.PosthogMiddleware(nil))

	called := false
	r.GET("/api/v1/invoices/:id", func(c *gin.Context) {
		called = true
		clientID, ok := middleware.GetClientIDFromContext(c)
		require.True(t, ok)
		assert.Equal(t, "acme-erp", clientID)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/7", nil)
	req.Header.Set(middleware.ClientIDHeader, "acme-erp")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, w.Code)
}
