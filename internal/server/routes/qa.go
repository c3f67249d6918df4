package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/session"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

const qaTopK = 5

// AskQAHandler sends one chat turn to the platform. The session id current
// at issue time is remembered so a server-assigned replacement is only
// adopted if nothing invalidated the conversation while the call ran.
func AskQAHandler(c echo.Context) error {
	type askBody struct {
		Question string `form:"question" validate:"required"`
	}

	data := new(askBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/chat")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Type a question first")
		return c.Redirect(http.StatusSeeOther, "/chat")
	}

	a := app(c)
	kgID := a.Store.SelectedKG()
	if kgID == "" {
		a.Store.PushNotice(state.NoticeError, "Select a knowledge graph first")
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}

	issued := session.GetOrCreate(a.Store, session.KindQA)

	answer, err := a.API.Chat(c.Request().Context(), api.QAQuery{
		KGID:       kgID,
		Question:   data.Question,
		TopK:       qaTopK,
		UseContext: true,
		SessionID:  issued,
	})
	if err != nil {
		logger.Error("qa chat failed", "kgId", kgID, "err", err)
		failNotice(a.Store, err, "The question could not be answered")
		return c.Redirect(http.StatusSeeOther, "/chat")
	}

	a.Store.AdoptSession(session.KindQA, issued, answer.SessionID)
	a.Store.AppendTurn(session.KindQA, state.Turn{
		Question:   data.Question,
		Answer:     answer.Answer,
		Confidence: answer.Confidence,
	})
	return c.Redirect(http.StatusSeeOther, "/chat")
}

// ClearQAHandler drops the conversation; the next question starts a fresh
// session id.
func ClearQAHandler(c echo.Context) error {
	a := app(c)
	session.Clear(a.Store, session.KindQA)
	a.Store.ClearTurns(session.KindQA)
	a.Store.PushNotice(state.NoticeInfo, "Chat history cleared")
	return c.Redirect(http.StatusSeeOther, "/chat")
}
