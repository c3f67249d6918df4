package api

import (
	"context"
	"fmt"
	"io"
)

// CreateCollection creates a named retrieval corpus.
func (c *Client) CreateCollection(ctx context.Context, req RAGCollectionCreate) (RAGCollection, error) {
	var result RAGCollection
	if err := c.post(ctx, "/rag/collections", req, &result); err != nil {
		return RAGCollection{}, err
	}
	return result, nil
}

// ListCollections returns all collections.
func (c *Client) ListCollections(ctx context.Context) ([]RAGCollection, error) {
	var collections []RAGCollection
	if err := c.get(ctx, "/rag/collections", nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// DeleteCollection removes a collection and its documents.
func (c *Client) DeleteCollection(ctx context.Context, collectionID int) error {
	return c.del(ctx, fmt.Sprintf("/rag/collections/%d", collectionID), nil)
}

// AddDocument uploads a document into a collection. Indexing happens
// asynchronously server-side; the document's status reflects it.
func (c *Client) AddDocument(ctx context.Context, collectionID int, name string, content io.Reader) error {
	req := c.request(ctx).SetFileReader("file", name, content)
	resp, err := req.Post(fmt.Sprintf("/rag/collections/%d/documents", collectionID))
	return c.finish(resp, err)
}

// ListDocuments returns the documents of one collection.
func (c *Client) ListDocuments(ctx context.Context, collectionID int) ([]RAGDocument, error) {
	var documents []RAGDocument
	if err := c.get(ctx, fmt.Sprintf("/rag/collections/%d/documents", collectionID), nil, &documents); err != nil {
		return nil, err
	}
	return documents, nil
}

// DeleteDocument removes one document from a collection.
func (c *Client) DeleteDocument(ctx context.Context, collectionID, documentID int) error {
	return c.del(ctx, fmt.Sprintf("/rag/collections/%d/documents/%d", collectionID, documentID), nil)
}

// RAGQuery runs a retrieval-augmented query; CollectionID scopes it when set.
func (c *Client) RAGQuery(ctx context.Context, req RAGQueryRequest) (RAGQueryResponse, error) {
	var result RAGQueryResponse
	path := "/rag/query"
	if req.CollectionID != 0 {
		path = fmt.Sprintf("/rag/collections/%d/query", req.CollectionID)
	}
	if err := c.post(ctx, path, req, &result); err != nil {
		return RAGQueryResponse{}, err
	}
	return result, nil
}
