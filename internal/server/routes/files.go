package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/pkg/logger"
)

// UploadFileHandler forwards a browser upload to the platform and refreshes
// the file list.
func UploadFileHandler(c echo.Context) error {
	a := app(c)

	upload, err := c.FormFile("file")
	if err != nil {
		a.Store.PushNotice(state.NoticeError, "No file selected")
		return c.Redirect(http.StatusSeeOther, "/files")
	}
	src, err := upload.Open()
	if err != nil {
		a.Store.PushNotice(state.NoticeError, "Could not read the selected file")
		return c.Redirect(http.StatusSeeOther, "/files")
	}
	defer src.Close()

	ctx := c.Request().Context()
	resp, err := a.API.UploadFile(ctx, upload.Filename, src)
	if err != nil {
		logger.Error("file upload failed", "file", upload.Filename, "err", err)
		failNotice(a.Store, err, "Upload failed")
		return c.Redirect(http.StatusSeeOther, "/files")
	}
	if !resp.Success {
		failNotice(a.Store, nil, resp.Message)
		return c.Redirect(http.StatusSeeOther, "/files")
	}

	a.Store.PushNotice(state.NoticeSuccess, "Uploaded "+upload.Filename)
	refreshFiles(c)
	return c.Redirect(http.StatusSeeOther, "/files")
}

func DeleteFileHandler(c echo.Context) error {
	type deleteFileParams struct {
		FileID string `param:"id" validate:"required"`
	}

	params := new(deleteFileParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/files")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/files")
	}

	a := app(c)
	ctx := c.Request().Context()
	if err := a.API.DeleteFile(ctx, params.FileID); err != nil {
		logger.Error("file delete failed", "fileId", params.FileID, "err", err)
		failNotice(a.Store, err, "Delete failed")
		return c.Redirect(http.StatusSeeOther, "/files")
	}

	a.Store.PushNotice(state.NoticeSuccess, "File deleted")
	refreshFiles(c)
	return c.Redirect(http.StatusSeeOther, "/files")
}

// DownloadFileHandler proxies the platform download so the browser never
// needs the upstream address or token.
func DownloadFileHandler(c echo.Context) error {
	type downloadFileParams struct {
		FileID string `param:"id" validate:"required"`
	}

	params := new(downloadFileParams)
	if err := c.Bind(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}
	if err := c.Validate(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	a := app(c)
	body, contentType, err := a.API.DownloadFile(c.Request().Context(), params.FileID)
	if err != nil {
		logger.Error("file download failed", "fileId", params.FileID, "err", err)
		failNotice(a.Store, err, "Download failed")
		return c.Redirect(http.StatusSeeOther, "/files")
	}
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Blob(http.StatusOK, contentType, body)
}

func refreshFiles(c echo.Context) {
	a := app(c)
	seq := a.Store.BeginFetch()
	files, err := a.API.ListFiles(c.Request().Context())
	if err != nil {
		logger.Warn("file list refresh failed", "err", err)
		return
	}
	a.Store.ApplyFiles(seq, files)
}
