package api

import (
	"context"
	"strconv"
)

// Chat sends one question to the QA service.
func (c *Client) Chat(ctx context.Context, query QAQuery) (QAAnswer, error) {
	var answer QAAnswer
	if err := c.post(ctx, "/qa/chat", query, &answer); err != nil {
		return QAAnswer{}, err
	}
	return answer, nil
}

// QAHistory returns a page of past turns for a graph and session.
func (c *Client) QAHistory(ctx context.Context, kgID, sessionID string, page, pageSize int) (QAHistoryResponse, error) {
	var history QAHistoryResponse
	query := map[string]string{
		"kg_id":     kgID,
		"page":      strconv.Itoa(page),
		"page_size": strconv.Itoa(pageSize),
	}
	if sessionID != "" {
		query["session_id"] = sessionID
	}
	if err := c.get(ctx, "/qa/history", query, &history); err != nil {
		return QAHistoryResponse{}, err
	}
	return history, nil
}
