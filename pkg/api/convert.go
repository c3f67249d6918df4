package api

import "context"

// Convert turns a data source into a fine-tuning dataset on the server.
func (c *Client) Convert(ctx context.Context, req ConvertRequest) (ConvertResponse, error) {
	var result ConvertResponse
	if err := c.post(ctx, "/convert/convert", req, &result); err != nil {
		return ConvertResponse{}, err
	}
	return result, nil
}

// ConvertHealth probes the convert service.
func (c *Client) ConvertHealth(ctx context.Context) (ConvertHealth, error) {
	var result ConvertHealth
	if err := c.get(ctx, "/convert/health", nil, &result); err != nil {
		return ConvertHealth{}, err
	}
	return result, nil
}
