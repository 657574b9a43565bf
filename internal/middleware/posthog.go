package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils"
)

// apiPrefix is trimmed from route templates before they become event names.
const apiPrefix = "/api/v1/"

// pathPrefixesToSkip are routes that are not client activity. Gateway callbacks carry
// no caller identity of their own.
var pathPrefixesToSkip = []string{
	"/health",
	"/swagger/",
	"/webhooks/",
}

// resourceKinds maps the first route segment to the ledger resource it addresses.
var resourceKinds = map[string]string{
	"invoices":    "invoice",
	"quotes":      "quote",
	"customers":   "customer",
	"settings":    "settings",
	"maintenance": "maintenance",
}

func skipTracking(path string) bool {
	for _, prefix := range pathPrefixesToSkip {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RouteEventName turns a route template into an analytics event name.
// Parameters are dropped and the method is appended, so
// "POST /api/v1/invoices/:id/payments" becomes "invoices_payments_post".
// Unmatched routes yield "".
func RouteEventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(fullPath, apiPrefix), "/")

	parts := make([]string, 0, 4)
	for _, segment := range strings.Split(trimmed, "/") {
		if segment == "" || strings.HasPrefix(segment, ":") || strings.HasPrefix(segment, "*") {
			continue
		}
		parts = append(parts, segment)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "_") + "_" + strings.ToLower(method)
}

// RouteProperties describes the ledger resource a request touched: its kind, from the
// route template, and its numeric id when the route has one.
func RouteProperties(fullPath string, params gin.Params) map[string]any {
	props := make(map[string]any)

	trimmed := strings.TrimPrefix(fullPath, apiPrefix)
	first, _, _ := strings.Cut(trimmed, "/")
	if kind, ok := resourceKinds[first]; ok {
		props["resource"] = kind
	}
	if raw, ok := params.Get("id"); ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			props["resource_id"] = id
		}
	}
	return props
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful ledger
// requests with PostHog, keyed by the caller's client id.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || skipTracking(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		// failed requests are visible in logs, not analytics
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		clientID, exists := GetClientIDFromContext(c)
		if !exists {
			return
		}

		eventName := RouteEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := RouteProperties(c.FullPath(), c.Params)
		props["status_code"] = c.Writer.Status()

		posthogClient.Enqueue(clientID, eventName, props)
	}
}

// PosthogEvent sends a business event, such as a payment being recorded, from a handler.
// The route's resource properties are merged under the caller's.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	clientID, exists := GetClientIDFromContext(c)
	if !exists {
		return
	}

	props := RouteProperties(c.FullPath(), c.Params)
	for k, v := range properties {
		props[k] = v
	}
	props["method"] = c.Request.Method

	posthogClient.Enqueue(clientID, eventName, props)
}
