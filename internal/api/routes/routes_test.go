// server/internal/api/routes/routes_test.go
package routes

import (
	"testing"

	"greenscape-api-server/config"
	"greenscape-api-server/internal/auth"
	"greenscape-api-server/internal/notify"
	"greenscape-api-server/internal/socket"
	"greenscape-api-server/internal/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestDriverRoutesMountedOnBothTrees(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := SetupRouter(
		config.Config{},
		nil,
		auth.NewManager("test-secret", "24h"),
		nil,
		socket.NewHub(),
		notify.Noop{},
		whatsapp.NewClient(config.TwilioConfig{}),
	)

	registered := make(map[string]bool)
	for _, route := range router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /drivers",
		"GET /api/drivers",
		"POST /drivers",
		"POST /api/drivers",
		"GET /drivers/available",
		"GET /api/drivers/available",
		"GET /drivers/:id/deliveries",
		"GET /api/drivers/:id/deliveries",
		"GET /drivers/:id/accidents",
		"GET /api/drivers/:id/accidents",
		"PUT /drivers/:id",
		"PUT /api/drivers/:id",
		"DELETE /drivers/:id",
		"DELETE /api/drivers/:id",
	} {
		require.True(t, registered[want], "missing route %s", want)
	}
}
