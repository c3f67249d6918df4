package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/health"
	"github.com/cognigraph/console/internal/progress"
	"github.com/cognigraph/console/internal/render"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/internal/views"
	"github.com/cognigraph/console/pkg/api"
)

// App bundles the collaborators every handler needs.
type App struct {
	Store    *state.Store
	API      *api.Client
	Poller   *progress.Poller
	Views    *views.Coordinator
	Health   *health.Collector
	Markdown *render.Markdown
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}

// RequireAuth sends unauthenticated page requests to the login form.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		app := c.(*AppContext).App
		if app.Store.Token() == "" {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}
