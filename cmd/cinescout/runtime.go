package main

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/cinescout/internal/app"
	"github.com/amaumene/cinescout/internal/config"
	"github.com/amaumene/cinescout/internal/controllers"
	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/render"
	"github.com/amaumene/cinescout/internal/services/backend"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/amaumene/cinescout/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// runtime holds the wired application shared by the commands
type runtime struct {
	cfg       *config.Config
	logger    *logrus.Logger
	db        *models.Database
	registry  *prometheus.Registry
	tracer    *sdktrace.TracerProvider
	store     *state.Store
	ctrl      app.Controllers
	app       *app.App
	oauth     chan models.OAuthMessage
	projector render.Projector
}

// newRuntime wires the database, backend client, controllers and dispatcher
func newRuntime(cfg *config.Config, logger *logrus.Logger) (*runtime, error) {
	// 1. Initialize database
	db, err := models.NewDatabase(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.WithField("path", cfg.DatabaseFile).Debug("Database initialized")

	// 2. Metrics and tracing
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tracer := utils.NewTracerProvider(logger)

	// 3. Restore state
	filters := state.FilterSet{}
	if prefs, err := db.LoadPreferences(); err != nil {
		logger.WithError(err).Warn("Failed to load filter preferences, using defaults")
	} else {
		filters = state.FilterSetFromPreferences(prefs)
	}
	if filters.Language == "" {
		filters.Language = cfg.DefaultLanguage
	}
	store := state.NewStore(state.New(filters))

	// 4. Initialize backend client
	client, err := backend.NewClient(cfg, db, backend.NewMetrics(registry), logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize backend client: %w", err)
	}
	logger.WithField("url", cfg.APIBaseURL).Debug("Backend client initialized")

	// 5. Initialize controllers
	watchlist := controllers.NewWatchlistController(store, client, logger)
	ctrl := app.Controllers{
		Session:   controllers.NewSessionController(store, client, logger),
		Filters:   controllers.NewFilterController(store, client, db, logger),
		Discovery: controllers.NewDiscoveryController(store, client, logger),
		Modal:     controllers.NewModalController(store, client, watchlist, logger),
		Watchlist: watchlist,
	}

	// 6. Initialize dispatcher
	oauth := make(chan models.OAuthMessage, 1)
	dispatcher := app.New(store, ctrl, utils.OpenBrowser, oauth, logger)

	return &runtime{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		registry:  registry,
		tracer:    tracer,
		store:     store,
		ctrl:      ctrl,
		app:       dispatcher,
		oauth:     oauth,
		projector: render.NewProjector(cfg.ImageBaseURL, cfg.VideoEmbedURL),
	}, nil
}

// Close flushes spans and releases the database
func (r *runtime) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.tracer.Shutdown(ctx); err != nil {
		r.logger.WithError(err).Warn("Failed to shut down tracer")
	}
	if err := r.db.Close(); err != nil {
		r.logger.WithError(err).Warn("Failed to close database")
	}
}
