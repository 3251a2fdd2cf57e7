package main

import (
	"context"

	"github.com/lshigami/storeaudit/config"
	"github.com/lshigami/storeaudit/database"
	_ "github.com/lshigami/storeaudit/docs"
	adminctrl "github.com/lshigami/storeaudit/internal/controller/admin"
	auditorctrl "github.com/lshigami/storeaudit/internal/controller/auditor"
	"github.com/lshigami/storeaudit/internal/logger"
	"github.com/lshigami/storeaudit/internal/metrics"
	"github.com/lshigami/storeaudit/internal/model"
	"github.com/lshigami/storeaudit/internal/repository"
	"github.com/lshigami/storeaudit/internal/server"
	"github.com/lshigami/storeaudit/internal/service"
	"github.com/lshigami/storeaudit/internal/storage"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Store Audit API
// @version 1.0
// @description Store audit workflow: template catalog, audit drafts, batched saves and submission with PDF report export.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			storage.NewS3Store,
			metrics.NewRegistry,
			metrics.NewRecorder,
			server.NewGinEngine,
		),

		fx.Provide(
			repository.NewTemplateRepository,
			repository.NewAuditRepository,
			repository.NewAnswerRepository,
			repository.NewAuditFileRepository,
		),

		fx.Provide(
			service.NewCatalogService,
			service.NewAuditSessionService,
			service.NewAnswerSynchronizer,
			service.NewExportClient,
			service.NewReportNarrator,
			service.NewSubmissionService,
			service.NewWorkspaceService,
			service.NewAdminTemplateService,
		),

		fx.Provide(
			auditorctrl.NewTemplateController,
			auditorctrl.NewAuditController,
			adminctrl.NewAdminTemplateController,
		),

		fx.Invoke(ApplyLogLevel),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(server.RegisterRoutes),
		fx.Invoke(server.StartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	if err := app.Stop(context.Background()); err != nil {
		log.Error().Err(err).Msg("Application stop failed")
	}
}

func ApplyLogLevel(cfg *config.Config) {
	logger.SetLevel(cfg.LogLevel)
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Store{},
		&model.Template{},
		&model.Section{},
		&model.Question{},
		&model.Audit{},
		&model.Answer{},
		&model.AuditFile{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
