package api

import (
	"context"
	"fmt"
	"strconv"
)

// CreateKG submits a build task for a new knowledge graph.
func (c *Client) CreateKG(ctx context.Context, req KGCreateRequest) (KGCreateResponse, error) {
	var result KGCreateResponse
	if err := c.post(ctx, "/kg/create", req, &result); err != nil {
		return KGCreateResponse{}, err
	}
	return result, nil
}

// FetchProgress fetches one progress snapshot for a build task.
func (c *Client) FetchProgress(ctx context.Context, taskID string) (KGProgress, error) {
	var progress KGProgress
	if err := c.get(ctx, fmt.Sprintf("/kg/progress/%s", taskID), nil, &progress); err != nil {
		return KGProgress{}, err
	}
	return progress, nil
}

// ListKGs returns a page of the user's knowledge graphs.
func (c *Client) ListKGs(ctx context.Context, page, pageSize int) (KGListResponse, error) {
	var result KGListResponse
	query := map[string]string{
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	}
	if err := c.get(ctx, "/kg/list", query, &result); err != nil {
		return KGListResponse{}, err
	}
	return result, nil
}

// QueryKG runs a natural-language or structured query against a graph.
func (c *Client) QueryKG(ctx context.Context, req KGQueryRequest) (KGQueryResponse, error) {
	var result KGQueryResponse
	if err := c.post(ctx, "/kg/query", req, &result); err != nil {
		return KGQueryResponse{}, err
	}
	return result, nil
}

// VisualizeKG fetches the node/edge payload for the graph view. The limit
// caps the number of returned elements so the view stays responsive.
func (c *Client) VisualizeKG(ctx context.Context, kgID string, limit int) (KGVisualization, error) {
	var result KGVisualization
	query := map[string]string{"limit": strconv.Itoa(limit)}
	if err := c.get(ctx, fmt.Sprintf("/kg/%s/visualize", kgID), query, &result); err != nil {
		return KGVisualization{}, err
	}
	return result, nil
}

// DeleteKG removes a graph and its server-side data.
func (c *Client) DeleteKG(ctx context.Context, kgID string) error {
	return c.del(ctx, fmt.Sprintf("/kg/%s", kgID), nil)
}

// RefreshKG asks the server to recompute a graph's metadata.
func (c *Client) RefreshKG(ctx context.Context, kgID string) (KnowledgeGraph, error) {
	var graph KnowledgeGraph
	if err := c.post(ctx, fmt.Sprintf("/kg/%s/refresh", kgID), nil, &graph); err != nil {
		return KnowledgeGraph{}, err
	}
	return graph, nil
}

// ExportKG downloads a graph's data as a raw document.
func (c *Client) ExportKG(ctx context.Context, kgID string) ([]byte, string, error) {
	resp, err := c.request(ctx).Get(fmt.Sprintf("/kg/%s/export", kgID))
	if err != nil {
		return nil, "", err
	}
	if resp.IsError() {
		return nil, "", normalizeError(resp.StatusCode(), resp.Body())
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}
