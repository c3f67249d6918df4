package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/render"
	"github.com/cognigraph/console/internal/session"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

func GetLoginPageHandler(c echo.Context) error {
	a := app(c)
	if a.Store.Token() != "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Render(http.StatusOK, "login", render.PageData{
		Title:   "Sign in",
		Notices: a.Store.DrainNotices(),
	})
}

func PostLoginHandler(c echo.Context) error {
	type loginBody struct {
		Username string `form:"username" validate:"required"`
		Password string `form:"password" validate:"required"`
	}

	data := new(loginBody)
	if err := c.Bind(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Invalid login form")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Username and password are required")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	a := app(c)
	ctx := c.Request().Context()
	token, err := a.API.Login(ctx, data.Username, data.Password)
	if err != nil {
		logger.Warn("login rejected", "username", data.Username, "err", err)
		failNotice(a.Store, err, "Sign-in failed")
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	// Store the token first so the profile fetch goes out authenticated.
	a.Store.SetAuth(token.AccessToken, api.User{Username: data.Username})
	if me, err := a.API.Me(ctx); err == nil {
		a.Store.SetAuth(token.AccessToken, me)
	} else {
		logger.Warn("profile fetch failed", "err", err)
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

func PostLogoutHandler(c echo.Context) error {
	a := app(c)
	a.Store.ClearAuth()
	a.Store.ClearSession(session.KindQA)
	a.Store.ClearSession(session.KindAgent)
	a.Store.ClearTurns(session.KindQA)
	a.Store.ClearTurns(session.KindAgent)
	return c.Redirect(http.StatusSeeOther, "/login")
}
