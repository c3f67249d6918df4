package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/render"
	"github.com/cognigraph/console/internal/session"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/internal/views"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

const (
	paginationWidth = 5
	listPageSize    = 20
)

// GetRootHandler sends the browser to whichever view is active.
func GetRootHandler(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/"+string(app(c).Views.Current()))
}

func GetFilesPageHandler(c echo.Context) error {
	a := app(c)
	if !a.Views.SwitchTo(c.Request().Context(), views.ViewFiles) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return renderPage(c, views.ViewFiles, "Files", map[string]any{
		"Files": a.Store.Files(),
	})
}

func GetGraphsPageHandler(c echo.Context) error {
	type graphsParams struct {
		Page int `query:"page"`
	}

	params := new(graphsParams)
	if err := c.Bind(params); err != nil {
		params.Page = 1
	}

	a := app(c)
	ctx := c.Request().Context()
	if !a.Views.SwitchTo(ctx, views.ViewGraphs) {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	// The switch refreshed page one; an explicit page request supersedes it.
	if params.Page > 1 {
		seq := a.Store.BeginFetch()
		resp, err := a.API.ListKGs(ctx, params.Page, listPageSize)
		if err != nil {
			failNotice(a.Store, err, "Failed to load knowledge graphs")
		} else {
			a.Store.ApplyGraphs(seq, resp)
		}
	}

	return renderGraphsPage(c, nil, nil)
}

func renderGraphsPage(c echo.Context, graph *render.GraphVM, query *kgQueryVM) error {
	a := app(c)
	graphs, page := a.Store.Graphs()
	return renderPage(c, views.ViewGraphs, "Knowledge Graphs", map[string]any{
		"Graphs": graphs,
		"Pages":  render.Pagination(page, paginationWidth),
		"Graph":  graph,
		"Query":  query,
	})
}

func GetChatPageHandler(c echo.Context) error {
	a := app(c)
	if !a.Views.SwitchTo(c.Request().Context(), views.ViewChat) {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	kgID := a.Store.SelectedKG()
	kgName := kgID
	graphs, _ := a.Store.Graphs()
	for _, g := range graphs {
		if g.KGID == kgID {
			kgName = g.KGName
			break
		}
	}

	if kgID != "" && len(a.Store.Turns(session.KindQA)) == 0 {
		backfillChatHistory(c, kgID)
	}

	return renderPage(c, views.ViewChat, "QA Chat", map[string]any{
		"KGID":   kgID,
		"KGName": kgName,
		"Turns":  transcript(a, session.KindQA, true),
	})
}

// backfillChatHistory seeds an empty transcript from the platform's stored
// history, so an earlier conversation survives a console restart.
func backfillChatHistory(c echo.Context, kgID string) {
	a := app(c)
	sessionID, _ := a.Store.SessionID(session.KindQA)
	history, err := a.API.QAHistory(c.Request().Context(), kgID, sessionID, 1, listPageSize)
	if err != nil {
		logger.Warn("chat history fetch failed", "kgId", kgID, "err", err)
		return
	}
	for _, item := range history.History {
		a.Store.AppendTurn(session.KindQA, state.Turn{
			Question:   item.Query.Question,
			Answer:     item.Answer.Answer,
			Confidence: item.Answer.Confidence,
		})
	}
}

func GetAgentPageHandler(c echo.Context) error {
	a := app(c)
	ctx := c.Request().Context()
	if !a.Views.SwitchTo(ctx, views.ViewAgent) {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	var tools []map[string]any
	if resp, err := a.API.AgentTools(ctx); err != nil {
		logger.Warn("agent tool listing failed", "err", err)
	} else {
		tools = resp.Tools
	}

	return renderPage(c, views.ViewAgent, "Agent", map[string]any{
		"Tools": tools,
		"Turns": transcript(a, session.KindAgent, false),
	})
}

func GetDatabasePageHandler(c echo.Context) error {
	a := app(c)
	if !a.Views.SwitchTo(c.Request().Context(), views.ViewDatabase) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return renderDatabasePage(c, nil)
}

func renderDatabasePage(c echo.Context, result *render.SQLTableVM) error {
	a := app(c)
	return renderPage(c, views.ViewDatabase, "NL2SQL", map[string]any{
		"Connections": a.Store.Connections(),
		"Result":      result,
	})
}

func GetConvertPageHandler(c echo.Context) error {
	a := app(c)
	ctx := c.Request().Context()
	if !a.Views.SwitchTo(ctx, views.ViewConvert) {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	var convertHealth *api.ConvertHealth
	if resp, err := a.API.ConvertHealth(ctx); err != nil {
		logger.Warn("convert service probe failed", "err", err)
	} else {
		convertHealth = &resp
	}

	return renderConvertPage(c, convertHealth, nil)
}

func renderConvertPage(c echo.Context, convertHealth *api.ConvertHealth, result *api.ConvertResponse) error {
	return renderPage(c, views.ViewConvert, "Dataset Conversion", map[string]any{
		"Health": convertHealth,
		"Result": result,
	})
}

func GetHealthPageHandler(c echo.Context) error {
	a := app(c)
	ctx := c.Request().Context()
	if !a.Views.SwitchTo(ctx, views.ViewHealth) {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	report := a.Health.Collect(ctx)
	return renderPage(c, views.ViewHealth, "Health", map[string]any{
		"Widgets":        report.Widgets,
		"MonitorEnabled": report.MonitorEnabled,
	})
}
