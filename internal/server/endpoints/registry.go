package endpoints

import (
	"github.com/mwieland/lectern/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// SocketPath is the websocket endpoint advertised in the reading view.
	SocketPath string
	// SwaggerSpecPath overrides the OpenAPI spec file location.
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	socketPath := cfg.SocketPath
	if socketPath == "" {
		socketPath = "/ws/reader"
	}

	return []api.Endpoint{
		// System endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Reading view and session
		&ReadEndpoint{SocketPath: socketPath},
		&SessionEndpoint{},

		// Content endpoints
		&ListSectionsEndpoint{},
		&GetSectionEndpoint{},

		// Reader tuning
		&ReaderConfigEndpoint{},

		// OpenAPI spec
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}
