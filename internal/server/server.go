package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cognigraph/console/internal/health"
	"github.com/cognigraph/console/internal/progress"
	"github.com/cognigraph/console/internal/render"
	mid "github.com/cognigraph/console/internal/server/middleware"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/internal/util"
	"github.com/cognigraph/console/internal/views"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

const listPageSize = 20

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	renderer, err := render.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to parse templates", "err", err)
	}
	e.Renderer = renderer

	store := state.NewStore()
	client := api.NewClient(api.ClientParams{
		BaseURL: util.GetEnvString("UPSTREAM_URL", "http://localhost:8000"),
		Tokens:  store,
		Timeout: time.Duration(util.GetEnvNumeric("UPSTREAM_TIMEOUT_MS", 30000)) * time.Millisecond,
	})

	coordinator := views.NewCoordinator(views.CoordinatorParams{Initial: views.ViewFiles})
	RegisterRefreshers(coordinator, store, client)

	poller := progress.NewPoller(progress.PollerParams{
		Fetcher:  client,
		Sink:     &buildSink{store: store, views: coordinator},
		Interval: time.Duration(util.GetEnvNumeric("BUILD_POLL_INTERVAL_MS", 3000)) * time.Millisecond,
	})

	collector := health.NewCollector(health.CollectorParams{Upstream: client})

	app := &mid.App{
		Store:    store,
		API:      client,
		Poller:   poller,
		Views:    coordinator,
		Health:   collector,
		Markdown: render.NewMarkdown(),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1G"))
	e.Static("/static", "static")

	RegisterRoutes(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting console", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

// RegisterRefreshers wires each view's data load. List fetches are retried
// once on transient failure; they are idempotent GETs.
func RegisterRefreshers(coordinator *views.Coordinator, store *state.Store, client *api.Client) {
	coordinator.Register(views.ViewFiles, func(ctx context.Context) error {
		seq := store.BeginFetch()
		files, err := util.RetryWithContext(ctx, 2, func(ctx context.Context) ([]api.FileInfo, error) {
			return client.ListFiles(ctx)
		})
		if err != nil {
			return err
		}
		store.ApplyFiles(seq, files)
		return nil
	})

	coordinator.Register(views.ViewGraphs, func(ctx context.Context) error {
		seq := store.BeginFetch()
		resp, err := util.RetryWithContext(ctx, 2, func(ctx context.Context) (api.KGListResponse, error) {
			return client.ListKGs(ctx, 1, listPageSize)
		})
		if err != nil {
			return err
		}
		store.ApplyGraphs(seq, resp)
		return nil
	})
}
