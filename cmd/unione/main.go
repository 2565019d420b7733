package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"unione/config"
	"unione/internal/delivery"
	"unione/internal/delivery/http"
	"unione/internal/delivery/http/middleware"
	"unione/internal/delivery/http/router/handler"
	"unione/internal/domain/service"
	"unione/internal/infra/backend"
	logs "unione/internal/infra/log"
	"unione/internal/infra/pubsub"
	"unione/internal/infra/qrcode"
	"unione/internal/usecase"
	"unione/internal/usecase/impl"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	// Local development keys live in .env; absence is fine in deployment.
	_ = godotenv.Load()

	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			backend.NewBackendClient,
			pubsub.NewEventPublisher,
			newIDCardService,
		),
	)
}

// newIDCardService creates an ID card service with dependency injection
func newIDCardService(cfg *config.Config) service.IDCardService {
	if cfg.IDCard == nil {
		// Use default values if not configured
		return qrcode.NewIDCardService(256, "M")
	}

	return qrcode.NewIDCardService(cfg.IDCard.Size, cfg.IDCard.ErrorCorrectionLevel)
}

// newAssistantService creates the scripted assistant with its configured delay
func newAssistantService(cfg *config.Config, logger *slog.Logger) usecase.AssistantUsecase {
	delay := time.Second
	if cfg.Assistant != nil {
		delay = cfg.Assistant.ResponseDelay
	}

	return impl.NewAssistantService(delay, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionProvider,
			impl.NewAnnouncementService,
			impl.NewArchiveService,
			impl.NewNotesService,
			newAssistantService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewAnnouncementHandler,
			handler.NewArchiveHandler,
			handler.NewNotesHandler,
			handler.NewAssistantHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
