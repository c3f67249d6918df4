package api

import "context"

// SQLConnect registers a database connection with the NL2SQL service and
// returns its server-assigned connection id.
func (c *Client) SQLConnect(ctx context.Context, req SQLConnectRequest) (SQLConnectResponse, error) {
	var result SQLConnectResponse
	if err := c.post(ctx, "/dataset/connect", req, &result); err != nil {
		return SQLConnectResponse{}, err
	}
	return result, nil
}

// SQLQuery translates a natural-language question into SQL and executes it.
func (c *Client) SQLQuery(ctx context.Context, req SQLQueryRequest) (SQLQueryResponse, error) {
	var result SQLQueryResponse
	if err := c.post(ctx, "/dataset/query", req, &result); err != nil {
		return SQLQueryResponse{}, err
	}
	return result, nil
}

// SQLExecute runs a raw SQL statement on a registered connection.
func (c *Client) SQLExecute(ctx context.Context, req SQLExecuteRequest) ([]map[string]any, error) {
	var rows []map[string]any
	if err := c.post(ctx, "/dataset/execute", req, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SQLDisconnect drops a registered connection.
func (c *Client) SQLDisconnect(ctx context.Context, connectionID string) error {
	body := map[string]string{"connection_id": connectionID}
	return c.post(ctx, "/dataset/disconnect", body, nil)
}
