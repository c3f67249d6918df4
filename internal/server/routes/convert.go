package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

// RunConvertHandler kicks off a dataset conversion and renders the outcome.
func RunConvertHandler(c echo.Context) error {
	type convertBody struct {
		SourceType string `form:"source_type" validate:"required"`
		Source     string `form:"source" validate:"required"`
		OutputPath string `form:"output_path" validate:"required"`
	}

	data := new(convertBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/convert")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Fill in source and output path")
		return c.Redirect(http.StatusSeeOther, "/convert")
	}

	a := app(c)
	ctx := c.Request().Context()
	resp, err := a.API.Convert(ctx, api.ConvertRequest{
		SourceType: data.SourceType,
		SourceInfo: map[string]any{"source": data.Source},
		OutputPath: data.OutputPath,
	})
	if err != nil {
		logger.Error("conversion failed", "source", data.Source, "err", err)
		failNotice(a.Store, err, "Conversion failed")
		return c.Redirect(http.StatusSeeOther, "/convert")
	}

	a.Store.PushNotice(state.NoticeSuccess, "Conversion finished")

	var convertHealth *api.ConvertHealth
	if probe, err := a.API.ConvertHealth(ctx); err == nil {
		convertHealth = &probe
	}
	return renderConvertPage(c, convertHealth, &resp)
}
