package routes

import (
	"context"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/render"
	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/internal/views"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

const visualizationLimit = 100

// defaultAlgorithms mirrors the platform's pipeline defaults.
func defaultAlgorithms() api.AlgorithmConfig {
	return api.AlgorithmConfig{
		Preprocess:          "simhash",
		EntityExtraction:    "bert",
		RelationExtraction:  "qwen",
		KnowledgeCompletion: "transe",
	}
}

// BuildKGHandler submits a build task and starts the progress poller.
func BuildKGHandler(c echo.Context) error {
	type buildBody struct {
		KGName  string   `form:"kg_name" validate:"required"`
		FileIDs []string `form:"file_ids" validate:"required,min=1"`
	}

	data := new(buildBody)
	if err := c.Bind(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Invalid build request")
		return c.Redirect(http.StatusSeeOther, "/files")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Pick a name and at least one file")
		return c.Redirect(http.StatusSeeOther, "/files")
	}

	a := app(c)
	ctx := c.Request().Context()
	resp, err := a.API.CreateKG(ctx, api.KGCreateRequest{
		FileIDs:             data.FileIDs,
		KGName:              data.KGName,
		Algorithms:          defaultAlgorithms(),
		EnableCompletion:    true,
		EnableVisualization: true,
	})
	if err != nil {
		logger.Error("kg create failed", "name", data.KGName, "err", err)
		failNotice(a.Store, err, "Failed to start the build")
		return c.Redirect(http.StatusSeeOther, "/files")
	}
	if !resp.Success {
		failNotice(a.Store, nil, resp.Message)
		return c.Redirect(http.StatusSeeOther, "/files")
	}

	a.Store.SetBuild(state.BuildSnapshot{
		TaskID: resp.TaskID,
		Stage:  "queued",
		Status: state.BuildRunning,
	})
	// Polling outlives this request.
	a.Poller.Start(context.Background(), resp.TaskID)
	logger.Info("kg build started", "taskId", resp.TaskID, "name", data.KGName)

	a.Store.PushNotice(state.NoticeInfo, "Build started: "+data.KGName)
	return c.Redirect(http.StatusSeeOther, "/files")
}

// CancelBuildHandler stops the poller and marks the snapshot cancelled.
func CancelBuildHandler(c echo.Context) error {
	a := app(c)
	if a.Poller.Cancel() {
		if snap, ok := a.Store.Build(); ok {
			snap.Status = state.BuildCancelled
			a.Store.SetBuild(snap)
		}
		a.Store.PushNotice(state.NoticeInfo, "Build tracking cancelled")
	}
	return c.Redirect(http.StatusSeeOther, "/files")
}

// GetBuildProgressHandler serves the current snapshot for the page script.
func GetBuildProgressHandler(c echo.Context) error {
	type progressResponse struct {
		Active  bool   `json:"active"`
		TaskID  string `json:"task_id,omitempty"`
		Percent int    `json:"percent"`
		Stage   string `json:"stage,omitempty"`
		Message string `json:"message,omitempty"`
		Status  string `json:"status,omitempty"`
	}

	a := app(c)
	snap, ok := a.Store.Build()
	if !ok {
		return c.JSON(http.StatusOK, progressResponse{Active: false})
	}
	return c.JSON(http.StatusOK, progressResponse{
		Active:  snap.Status == state.BuildRunning,
		TaskID:  snap.TaskID,
		Percent: snap.Percent,
		Stage:   snap.Stage,
		Message: snap.Message,
		Status:  snap.Status,
	})
}

// VisualizeKGHandler renders the graphs view with one graph's node/edge set.
func VisualizeKGHandler(c echo.Context) error {
	type visualizeParams struct {
		KGID string `param:"id" validate:"required"`
	}

	params := new(visualizeParams)
	if err := c.Bind(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	if err := c.Validate(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	a := app(c)
	ctx := c.Request().Context()
	a.Views.SwitchTo(ctx, views.ViewGraphs)

	viz, err := a.API.VisualizeKG(ctx, params.KGID, visualizationLimit)
	if err != nil {
		logger.Error("kg visualize failed", "kgId", params.KGID, "err", err)
		failNotice(a.Store, err, "Failed to load the visualization")
		return renderGraphsPage(c, nil, nil)
	}

	vm := render.Graph(viz)
	return renderGraphsPage(c, &vm, nil)
}

const kgQueryTopK = 10

// kgQueryVM is one structured-query result, answer already rendered.
type kgQueryVM struct {
	Query      string
	AnswerHTML template.HTML
	Total      int
	Entities   []map[string]any
	Relations  []map[string]any
}

// QueryKGHandler searches a graph's entities and relations and renders the
// matches inline on the graphs view.
func QueryKGHandler(c echo.Context) error {
	type queryBody struct {
		KGID  string `form:"kg_id" validate:"required"`
		Query string `form:"query" validate:"required"`
	}

	data := new(queryBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Pick a graph and type a query")
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}

	a := app(c)
	ctx := c.Request().Context()
	a.Views.SwitchTo(ctx, views.ViewGraphs)

	resp, err := a.API.QueryKG(ctx, api.KGQueryRequest{
		KGID:             data.KGID,
		Query:            data.Query,
		TopK:             kgQueryTopK,
		IncludeEntities:  true,
		IncludeRelations: true,
	})
	if err != nil {
		logger.Error("kg query failed", "kgId", data.KGID, "err", err)
		failNotice(a.Store, err, "The graph query failed")
		return renderGraphsPage(c, nil, nil)
	}

	vm := &kgQueryVM{
		Query:     data.Query,
		Total:     resp.Total,
		Entities:  resp.Entities,
		Relations: resp.Relations,
	}
	if resp.Answer != "" {
		vm.AnswerHTML = a.Markdown.Render(resp.Answer)
	}
	return renderGraphsPage(c, nil, vm)
}

// SelectKGHandler binds the QA chat to a graph and opens the chat view.
func SelectKGHandler(c echo.Context) error {
	type selectParams struct {
		KGID string `param:"id" validate:"required"`
	}

	params := new(selectParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}

	app(c).Store.SelectKG(params.KGID)
	return c.Redirect(http.StatusSeeOther, "/chat")
}

// RefreshKGHandler re-reads one graph's metadata and patches it in place.
func RefreshKGHandler(c echo.Context) error {
	type refreshParams struct {
		KGID string `param:"id" validate:"required"`
	}

	params := new(refreshParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}

	a := app(c)
	graph, err := a.API.RefreshKG(c.Request().Context(), params.KGID)
	if err != nil {
		logger.Error("kg refresh failed", "kgId", params.KGID, "err", err)
		failNotice(a.Store, err, "Refresh failed")
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}

	if !a.Store.UpdateGraph(graph) {
		logger.Debug("refreshed graph not in the cached listing", "kgId", params.KGID)
	}
	return c.Redirect(http.StatusSeeOther, "/graphs")
}

func DeleteKGHandler(c echo.Context) error {
	type deleteParams struct {
		KGID string `param:"id" validate:"required"`
	}

	params := new(deleteParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}

	a := app(c)
	ctx := c.Request().Context()
	if err := a.API.DeleteKG(ctx, params.KGID); err != nil {
		logger.Error("kg delete failed", "kgId", params.KGID, "err", err)
		failNotice(a.Store, err, "Delete failed")
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}

	if a.Store.SelectedKG() == params.KGID {
		a.Store.SelectKG("")
	}
	a.Store.PushNotice(state.NoticeSuccess, "Knowledge graph deleted")

	seq := a.Store.BeginFetch()
	if resp, err := a.API.ListKGs(ctx, 1, listPageSize); err == nil {
		a.Store.ApplyGraphs(seq, resp)
	}
	return c.Redirect(http.StatusSeeOther, "/graphs")
}

// ExportKGHandler proxies the platform export download.
func ExportKGHandler(c echo.Context) error {
	type exportParams struct {
		KGID string `param:"id" validate:"required"`
	}

	params := new(exportParams)
	if err := c.Bind(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	if err := c.Validate(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	a := app(c)
	body, contentType, err := a.API.ExportKG(c.Request().Context(), params.KGID)
	if err != nil {
		logger.Error("kg export failed", "kgId", params.KGID, "err", err)
		failNotice(a.Store, err, "Export failed")
		return c.Redirect(http.StatusSeeOther, "/graphs")
	}
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+params.KGID+`.json"`)
	return c.Blob(http.StatusOK, contentType, body)
}
