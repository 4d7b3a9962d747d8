package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // Registers the pgx driver
	"github.com/studyloop/studyloop-api/internal/api"
	"github.com/studyloop/studyloop-api/internal/config"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/platform/postgres"
	"github.com/studyloop/studyloop-api/internal/platform/sqlite"
	"github.com/studyloop/studyloop-api/internal/service"
	"github.com/studyloop/studyloop-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	studyService    service.StudyService
	reviewService   service.ReviewService
	settingsService service.SettingsService
	reportService   service.ReportService
	disciplineStore store.DisciplineStore
}

// newApplication opens the configured database, applies migrations where
// needed and wires the store and service layers.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, stores, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	defaults := schedule.NewParams(
		cfg.Schedule.FirstInterval,
		cfg.Schedule.SecondInterval,
		cfg.Schedule.ThirdInterval,
	)

	studyService, err := service.NewStudyService(
		db, stores.studies, stores.reviews, stores.settings, defaults, cfg.Schedule.Auto, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}
	reviewService, err := service.NewReviewService(db, stores.reviews, nil, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}
	settingsService, err := service.NewSettingsService(stores.settings, defaults, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings service: %w", err)
	}
	reportService, err := service.NewReportService(
		stores.studies, stores.reviews, stores.disciplines, nil, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	return &application{
		config:          cfg,
		logger:          log,
		db:              db,
		studyService:    studyService,
		reviewService:   reviewService,
		settingsService: settingsService,
		reportService:   reportService,
		disciplineStore: stores.disciplines,
	}, nil
}

// storeSet groups one backend's store implementations.
type storeSet struct {
	studies     store.StudyStore
	reviews     store.ReviewStore
	settings    store.SettingsStore
	disciplines store.DisciplineStore
}

// openDatabase connects to the configured backend. Postgres runs the
// embedded migrations; SQLite applies its schema on open.
func openDatabase(cfg *config.Config, log *slog.Logger) (*sql.DB, *storeSet, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres database: %w", err)
		}
		if err := postgres.MigrateUp(db, log); err != nil {
			return nil, nil, err
		}
		return db, &storeSet{
			studies:     postgres.NewPostgresStudyStore(db, log),
			reviews:     postgres.NewPostgresReviewStore(db, log),
			settings:    postgres.NewPostgresSettingsStore(db, log),
			disciplines: postgres.NewPostgresDisciplineStore(db, log),
		}, nil

	case "sqlite":
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, &storeSet{
			studies:     sqlite.NewSQLiteStudyStore(db),
			reviews:     sqlite.NewSQLiteReviewStore(db),
			settings:    sqlite.NewSQLiteSettingsStore(db),
			disciplines: sqlite.NewSQLiteDisciplineStore(db),
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// setupRouter builds the HTTP routing tree from the application's services.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Studies:     app.studyService,
		Reviews:     app.reviewService,
		Settings:    app.settingsService,
		Reports:     app.reportService,
		Disciplines: app.disciplineStore,
		DB:          app.db,
		Logger:      app.logger,
	})
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
