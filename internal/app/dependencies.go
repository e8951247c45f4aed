package app

import (
	"database/sql"

	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/ankigrid/ankigrid/internal/event_bus"
	"github.com/ankigrid/ankigrid/internal/utils"
	"github.com/ankigrid/ankigrid/pkg/anki"
	"github.com/ankigrid/ankigrid/pkg/refresh"
	"github.com/ankigrid/ankigrid/pkg/review"
	"github.com/ankigrid/ankigrid/pkg/theme"
	"github.com/ankigrid/ankigrid/pkg/widget"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	AnkiClient  anki.Client
	AnkiHandler *anki.Handler

	ReviewRepo    review.Repository
	ReviewService *review.ServiceImpl
	ReviewHandler *review.Handler

	ThemeResolver *theme.Resolver

	WidgetRepo    widget.Repository
	WidgetService *widget.ServiceImpl
	WidgetHandler *widget.Handler

	RefreshScheduler *refresh.Scheduler
	RefreshHandler   *refresh.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.AnkiClient = anki.NewClient(cfg.Anki)
	deps.AnkiHandler = anki.NewHandler(deps.AnkiClient)

	deps.ReviewRepo = review.NewRepository(db)
	deps.ReviewService = review.NewService(deps.AnkiClient, deps.ReviewRepo, deps.Clock, deps.EventBus)
	deps.ReviewHandler = review.NewHandler(deps.ReviewService, cfg.Widget)

	deps.ThemeResolver = theme.NewResolver(cfg.Theme)

	deps.WidgetRepo = widget.NewRepository(db)
	deps.WidgetService = widget.NewService(deps.WidgetRepo, cfg.Widget)
	deps.WidgetHandler = widget.NewHandler(deps.WidgetService, deps.ReviewService, deps.ThemeResolver, cfg.Widget)

	deps.RefreshScheduler = refresh.NewScheduler(deps.WidgetService, deps.ReviewService, deps.EventBus, cfg)
	deps.RefreshHandler = refresh.NewHandler(deps.RefreshScheduler)

	return deps
}
