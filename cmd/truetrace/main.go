package main

import (
	"context"
	"log/slog"
	"os"

	"truetrace/config"
	"truetrace/internal/delivery"
	"truetrace/internal/delivery/http"
	"truetrace/internal/delivery/http/middleware"
	"truetrace/internal/delivery/http/router/handler"
	"truetrace/internal/domain/repository"
	"truetrace/internal/domain/service"
	logs "truetrace/internal/infra/log"
	"truetrace/internal/infra/persistence/memory"
	"truetrace/internal/infra/persistence/postgres"
	"truetrace/internal/infra/qrcode"
	"truetrace/internal/infra/registry"
	"truetrace/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
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
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newRecordRepository,
		),
	)
}

// newRecordRepository selects the provenance store backend. Postgres when
// configured, in-memory otherwise.
func newRecordRepository(db *gorm.DB) repository.RecordRepository {
	if db != nil {
		return postgres.NewRecordRepository(db)
	}

	return memory.NewRecordRepository()
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newCommitmentRegistry,
			newQRCodeService,
		),
	)
}

// newCommitmentRegistry selects the registry backend from config.
func newCommitmentRegistry(cfg *config.Config, db *gorm.DB) (service.CommitmentRegistry, error) {
	switch cfg.Registry.Backend {
	case config.RegistryBackendMemory:
		return registry.NewMemoryRegistry(), nil
	case config.RegistryBackendPostgres:
		if db == nil {
			return nil, errors.New("registry backend is postgres but no postgres connection is configured")
		}

		return registry.NewPostgresRegistry(db), nil
	default:
		return nil, errors.Errorf("unknown registry backend %q", cfg.Registry.Backend)
	}
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewProvenanceService,
			impl.NewVerificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewRequestIDMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProvenanceHandler,
			handler.NewVerifyHandler,
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
