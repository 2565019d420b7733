package backend

import (
	"context"
	"log/slog"

	"unione/config"
	"unione/internal/domain/constants"
	"unione/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ClientParams holds dependencies for BackendClient, injected by Fx
type ClientParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBackendClient creates a BackendClient based on configuration. When the
// hosted backend is not configured the portal stays up on the in-memory
// client; callers see configuration errors only on operations that need
// durable state.
func NewBackendClient(params ClientParams) (service.BackendClient, error) {
	cfg := params.Config.Backend
	logger := params.Logger

	var client service.BackendClient
	var err error

	switch {
	case cfg == nil || cfg.Provider == "":
		logger.Warn("Backend not configured, using in-memory client")

		client, err = NewMemoryClient(nil, logger)

	case cfg.Provider == constants.BackendProviderMemory:
		logger.Info("Using in-memory backend client")

		client, err = NewMemoryClient(cfg.Memory, logger)

	case cfg.Provider == constants.BackendProviderFirebase:
		if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
			logger.Warn("Firebase backend missing project configuration, using in-memory client")

			client, err = NewMemoryClient(nil, logger)

			break
		}
		logger.Info("Using Firebase backend client",
			slog.String("project_id", cfg.Firebase.ProjectID),
		)

		client, err = NewFirebaseClient(params.Ctx, cfg.Firebase, logger)

	default:
		return nil, errors.Errorf("unknown backend provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	// Register lifecycle hook to close the client on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing BackendClient")

			return client.Close()
		},
	})

	return client, nil
}

// Module provides the backend FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBackendClient),
)
