package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/session"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

func AskAgentHandler(c echo.Context) error {
	type askBody struct {
		Query string `form:"query" validate:"required"`
	}

	data := new(askBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/agent")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Type a question first")
		return c.Redirect(http.StatusSeeOther, "/agent")
	}

	a := app(c)
	issued := session.GetOrCreate(a.Store, session.KindAgent)

	resp, err := a.API.AgentQuery(c.Request().Context(), api.AgentQueryRequest{
		Query:     data.Query,
		SessionID: issued,
	})
	if err != nil {
		logger.Error("agent query failed", "err", err)
		failNotice(a.Store, err, "The agent could not answer")
		return c.Redirect(http.StatusSeeOther, "/agent")
	}

	a.Store.AdoptSession(session.KindAgent, issued, resp.SessionID)
	a.Store.AppendTurn(session.KindAgent, state.Turn{
		Question: data.Query,
		Answer:   resp.Response,
		Thought:  resp.ThoughtProcess,
	})
	return c.Redirect(http.StatusSeeOther, "/agent")
}

// ClearAgentHandler clears the server-side agent memory and the local
// transcript together.
func ClearAgentHandler(c echo.Context) error {
	a := app(c)

	if id, ok := a.Store.SessionID(session.KindAgent); ok {
		if err := a.API.ClearAgentMemory(c.Request().Context(), id); err != nil {
			logger.Warn("agent memory clear failed", "err", err)
		}
	}

	session.Clear(a.Store, session.KindAgent)
	a.Store.ClearTurns(session.KindAgent)
	a.Store.PushNotice(state.NoticeInfo, "Agent memory cleared")
	return c.Redirect(http.StatusSeeOther, "/agent")
}
