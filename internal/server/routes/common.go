package routes

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/render"
	"github.com/cognigraph/console/internal/server/middleware"
	"github.com/cognigraph/console/internal/session"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/internal/views"
	"github.com/cognigraph/console/pkg/api"
)

func app(c echo.Context) *middleware.App {
	return c.(*middleware.AppContext).App
}

// renderPage executes the page template for view with the shared envelope:
// the logged-in user, drained notices and the active build bar.
func renderPage(c echo.Context, view views.View, title string, data any) error {
	a := app(c)
	page := render.PageData{
		Title:   title,
		Active:  view,
		Notices: a.Store.DrainNotices(),
		Data:    data,
	}
	if user, ok := a.Store.User(); ok {
		page.User = &user
	}
	if build, ok := a.Store.Build(); ok {
		vm := render.Progress(build)
		page.Build = &vm
	}
	return c.Render(http.StatusOK, string(view), page)
}

// failNotice queues one error notice for err. Platform errors carry their
// own message; anything else gets the fallback.
func failNotice(store *state.Store, err error, fallback string) {
	if apiErr, ok := err.(*api.Error); ok && apiErr.Message != "" {
		store.PushNotice(state.NoticeError, apiErr.Message)
		return
	}
	store.PushNotice(state.NoticeError, fallback)
}

// turnVM is a transcript entry with its answer already rendered.
type turnVM struct {
	Question   string
	AnswerHTML template.HTML
	Thought    string
	Confidence string
}

func transcript(a *middleware.App, kind session.Kind, withConfidence bool) []turnVM {
	turns := a.Store.Turns(kind)
	out := make([]turnVM, 0, len(turns))
	for _, turn := range turns {
		vm := turnVM{
			Question:   turn.Question,
			AnswerHTML: a.Markdown.Render(turn.Answer),
			Thought:    turn.Thought,
		}
		if withConfidence && turn.Confidence > 0 {
			vm.Confidence = render.Confidence(turn.Confidence)
		}
		out = append(out, vm)
	}
	return out
}
