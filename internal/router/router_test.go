package router

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisteredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := NewRouter()

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "mark notification read is a POST", method: http.MethodPost, path: "/api/notifications/:id/read"},
		{name: "mark all read", method: http.MethodPost, path: "/api/notifications/read-all"},
		{name: "timer start", method: http.MethodPost, path: "/api/timer/start"},
		{name: "timer stop", method: http.MethodPost, path: "/api/timer/stop"},
		{name: "timer reset", method: http.MethodPost, path: "/api/timer/reset"},
		{name: "timer state", method: http.MethodGet, path: "/api/timer"},
		{name: "preferences read", method: http.MethodGet, path: "/api/notification-preferences"},
		{name: "preferences replace", method: http.MethodPut, path: "/api/notification-preferences"},
		{name: "invoice send", method: http.MethodPost, path: "/api/invoices/:id/send"},
		{name: "invoice pay", method: http.MethodPost, path: "/api/invoices/:id/pay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, registered[tt.method+" "+tt.path], tt.method+" "+tt.path)
		})
	}

	// The read verb moved from PATCH to POST; the old route must be gone.
	assert.False(t, registered[http.MethodPatch+" /api/notifications/:id/read"])
}
