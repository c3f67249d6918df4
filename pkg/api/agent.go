package api

import "context"

// AgentQuery sends one turn to the conversational agent.
func (c *Client) AgentQuery(ctx context.Context, req AgentQueryRequest) (AgentResponse, error) {
	var result AgentResponse
	if err := c.post(ctx, "/agent/query", req, &result); err != nil {
		return AgentResponse{}, err
	}
	return result, nil
}

// AgentTools lists the tools registered with the agent.
func (c *Client) AgentTools(ctx context.Context) (AgentToolsResponse, error) {
	var result AgentToolsResponse
	if err := c.get(ctx, "/agent/tools", nil, &result); err != nil {
		return AgentToolsResponse{}, err
	}
	return result, nil
}

// ClearAgentMemory drops the agent's short-term memory. An empty sessionID
// clears everything.
func (c *Client) ClearAgentMemory(ctx context.Context, sessionID string) error {
	req := c.request(ctx)
	if sessionID != "" {
		req.SetQueryParam("session_id", sessionID)
	}
	resp, err := req.Post("/agent/clear-memory")
	return c.finish(resp, err)
}
