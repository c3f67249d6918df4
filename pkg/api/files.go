package api

import (
	"context"
	"fmt"
	"io"
)

// UploadFile streams one document to the platform as multipart/form-data.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader) (UploadFileResponse, error) {
	var result UploadFileResponse
	req := c.request(ctx).
		SetFileReader("file", name, content).
		SetResult(&result)
	resp, err := req.Post("/file/upload")
	if err := c.finish(resp, err); err != nil {
		return UploadFileResponse{}, err
	}
	return result, nil
}

// ListFiles returns all uploaded files for the current user.
func (c *Client) ListFiles(ctx context.Context) ([]FileInfo, error) {
	var files []FileInfo
	if err := c.get(ctx, "/file/list", nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// DownloadFile fetches a file's raw bytes plus its content type.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, string, error) {
	resp, err := c.request(ctx).Get(fmt.Sprintf("/file/%s/download", fileID))
	if err != nil {
		return nil, "", err
	}
	if resp.IsError() {
		return nil, "", normalizeError(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

// DeleteFile removes an uploaded file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.del(ctx, fmt.Sprintf("/file/%s", fileID), nil)
}
