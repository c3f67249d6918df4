package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/render"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

// ConnectDatabaseHandler registers an NL2SQL target. The credentials go
// straight upstream; only the returned handle is kept.
func ConnectDatabaseHandler(c echo.Context) error {
	type connectBody struct {
		DBType   string `form:"db_type" validate:"required"`
		Host     string `form:"host" validate:"required"`
		Database string `form:"database" validate:"required"`
		User     string `form:"user" validate:"required"`
		Password string `form:"password"`
	}

	data := new(connectBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/database")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Fill in the connection details")
		return c.Redirect(http.StatusSeeOther, "/database")
	}

	a := app(c)
	resp, err := a.API.SQLConnect(c.Request().Context(), api.SQLConnectRequest{
		DBType:   data.DBType,
		Host:     data.Host,
		Database: data.Database,
		User:     data.User,
		Password: data.Password,
	})
	if err != nil {
		logger.Error("database connect failed", "host", data.Host, "err", err)
		failNotice(a.Store, err, "Connection failed")
		return c.Redirect(http.StatusSeeOther, "/database")
	}

	a.Store.PutConnection(state.DBConnection{
		ConnectionID: resp.ConnectionID,
		Driver:       data.DBType,
		Host:         data.Host,
		Database:     data.Database,
	})
	a.Store.PushNotice(state.NoticeSuccess, "Connected to "+data.Database)
	return c.Redirect(http.StatusSeeOther, "/database")
}

func DisconnectDatabaseHandler(c echo.Context) error {
	type disconnectParams struct {
		ConnectionID string `param:"id" validate:"required"`
	}

	params := new(disconnectParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/database")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/database")
	}

	a := app(c)
	if err := a.API.SQLDisconnect(c.Request().Context(), params.ConnectionID); err != nil {
		logger.Warn("database disconnect failed", "connectionId", params.ConnectionID, "err", err)
	}

	// The local handle goes away regardless; a dead upstream connection is
	// of no use to the view.
	a.Store.RemoveConnection(params.ConnectionID)
	a.Store.PushNotice(state.NoticeInfo, "Disconnected")
	return c.Redirect(http.StatusSeeOther, "/database")
}

// AskDatabaseHandler translates a natural-language question to SQL upstream
// and renders the generated statement with its result rows.
func AskDatabaseHandler(c echo.Context) error {
	type askBody struct {
		ConnectionID string `form:"connection_id" validate:"required"`
		Question     string `form:"question" validate:"required"`
	}

	data := new(askBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/database")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Pick a connection and type a question")
		return c.Redirect(http.StatusSeeOther, "/database")
	}

	a := app(c)
	resp, err := a.API.SQLQuery(c.Request().Context(), api.SQLQueryRequest{
		ConnectionID: data.ConnectionID,
		Question:     data.Question,
	})
	if err != nil {
		logger.Error("nl2sql query failed", "connectionId", data.ConnectionID, "err", err)
		failNotice(a.Store, err, "The question could not be translated")
		return renderDatabasePage(c, nil)
	}

	vm := render.SQLTable(resp)
	return renderDatabasePage(c, &vm)
}

// ExecuteSQLHandler runs a raw statement on a registered connection and
// renders the result grid.
func ExecuteSQLHandler(c echo.Context) error {
	type executeBody struct {
		ConnectionID string `form:"connection_id" validate:"required"`
		SQL          string `form:"sql" validate:"required"`
	}

	data := new(executeBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/database")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Pick a connection and type a statement")
		return c.Redirect(http.StatusSeeOther, "/database")
	}

	a := app(c)
	rows, err := a.API.SQLExecute(c.Request().Context(), api.SQLExecuteRequest{
		ConnectionID: data.ConnectionID,
		SQL:          data.SQL,
	})
	if err != nil {
		logger.Error("sql execute failed", "connectionId", data.ConnectionID, "err", err)
		failNotice(a.Store, err, "The statement failed")
		return renderDatabasePage(c, nil)
	}

	vm := render.SQLTable(api.SQLQueryResponse{SQL: data.SQL, Result: rows})
	return renderDatabasePage(c, &vm)
}
