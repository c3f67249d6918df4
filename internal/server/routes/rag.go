package routes

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/state"
	"github.com/cognigraph/console/internal/views"
	"github.com/cognigraph/console/pkg/api"
	"github.com/cognigraph/console/pkg/logger"
)

const ragTopK = 5

type collectionDetailVM struct {
	ID        int
	Name      string
	Documents []api.RAGDocument
}

type ragAnswerVM struct {
	AnswerHTML template.HTML
	Sources    []api.RAGSource
}

func GetCollectionsPageHandler(c echo.Context) error {
	a := app(c)
	if !a.Views.SwitchTo(c.Request().Context(), views.ViewCollections) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return renderCollectionsPage(c, nil, nil)
}

// GetCollectionDetailHandler shows one collection with its documents.
func GetCollectionDetailHandler(c echo.Context) error {
	type detailParams struct {
		ID int `param:"id" validate:"required"`
	}

	params := new(detailParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a := app(c)
	ctx := c.Request().Context()
	a.Views.SwitchTo(ctx, views.ViewCollections)

	docs, err := a.API.ListDocuments(ctx, params.ID)
	if err != nil {
		logger.Error("document listing failed", "collectionId", params.ID, "err", err)
		failNotice(a.Store, err, "Failed to load documents")
		return renderCollectionsPage(c, nil, nil)
	}

	detail := &collectionDetailVM{ID: params.ID, Documents: docs}
	if collections, err := a.API.ListCollections(ctx); err == nil {
		for _, col := range collections {
			if col.ID == params.ID {
				detail.Name = col.Name
				break
			}
		}
	}
	return renderCollectionsPage(c, detail, nil)
}

func renderCollectionsPage(c echo.Context, selected *collectionDetailVM, answer *ragAnswerVM) error {
	a := app(c)
	var collections []api.RAGCollection
	if list, err := a.API.ListCollections(c.Request().Context()); err != nil {
		logger.Warn("collection listing failed", "err", err)
		failNotice(a.Store, err, "Failed to load collections")
	} else {
		collections = list
	}
	return renderPage(c, views.ViewCollections, "RAG Collections", map[string]any{
		"Collections": collections,
		"Selected":    selected,
		"Answer":      answer,
	})
}

func CreateCollectionHandler(c echo.Context) error {
	type createBody struct {
		Name        string `form:"name" validate:"required"`
		Description string `form:"description"`
	}

	data := new(createBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Collection name is required")
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a := app(c)
	if _, err := a.API.CreateCollection(c.Request().Context(), api.RAGCollectionCreate{
		Name:        data.Name,
		Description: data.Description,
	}); err != nil {
		logger.Error("collection create failed", "name", data.Name, "err", err)
		failNotice(a.Store, err, "Failed to create the collection")
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a.Store.PushNotice(state.NoticeSuccess, "Collection created")
	return c.Redirect(http.StatusSeeOther, "/collections")
}

func DeleteCollectionHandler(c echo.Context) error {
	type deleteParams struct {
		ID int `param:"id" validate:"required"`
	}

	params := new(deleteParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a := app(c)
	if err := a.API.DeleteCollection(c.Request().Context(), params.ID); err != nil {
		logger.Error("collection delete failed", "collectionId", params.ID, "err", err)
		failNotice(a.Store, err, "Failed to delete the collection")
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a.Store.PushNotice(state.NoticeSuccess, "Collection deleted")
	return c.Redirect(http.StatusSeeOther, "/collections")
}

func AddDocumentHandler(c echo.Context) error {
	type addParams struct {
		ID int `param:"id" validate:"required"`
	}

	params := new(addParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a := app(c)
	upload, err := c.FormFile("file")
	if err != nil {
		a.Store.PushNotice(state.NoticeError, "No file selected")
		return c.Redirect(http.StatusSeeOther, "/collections")
	}
	src, err := upload.Open()
	if err != nil {
		a.Store.PushNotice(state.NoticeError, "Could not read the selected file")
		return c.Redirect(http.StatusSeeOther, "/collections")
	}
	defer src.Close()

	if err := a.API.AddDocument(c.Request().Context(), params.ID, upload.Filename, src); err != nil {
		logger.Error("document add failed", "collectionId", params.ID, "err", err)
		failNotice(a.Store, err, "Failed to add the document")
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a.Store.PushNotice(state.NoticeSuccess, "Document added: "+upload.Filename)
	return c.Redirect(http.StatusSeeOther, "/collections/"+c.Param("id"))
}

func DeleteDocumentHandler(c echo.Context) error {
	type deleteParams struct {
		CollectionID int `param:"id" validate:"required"`
		DocumentID   int `param:"doc_id" validate:"required"`
	}

	params := new(deleteParams)
	if err := c.Bind(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}
	if err := c.Validate(params); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a := app(c)
	if err := a.API.DeleteDocument(c.Request().Context(), params.CollectionID, params.DocumentID); err != nil {
		logger.Error("document delete failed", "documentId", params.DocumentID, "err", err)
		failNotice(a.Store, err, "Failed to delete the document")
	} else {
		a.Store.PushNotice(state.NoticeSuccess, "Document deleted")
	}
	return c.Redirect(http.StatusSeeOther, "/collections/"+c.Param("id"))
}

// QueryCollectionsHandler runs a retrieval query and renders the answer
// inline with its sources.
func QueryCollectionsHandler(c echo.Context) error {
	type queryBody struct {
		Query        string `form:"query" validate:"required"`
		CollectionID int    `form:"collection_id"`
	}

	data := new(queryBody)
	if err := c.Bind(data); err != nil {
		return c.Redirect(http.StatusSeeOther, "/collections")
	}
	if err := c.Validate(data); err != nil {
		app(c).Store.PushNotice(state.NoticeError, "Type a query first")
		return c.Redirect(http.StatusSeeOther, "/collections")
	}

	a := app(c)
	resp, err := a.API.RAGQuery(c.Request().Context(), api.RAGQueryRequest{
		CollectionID: data.CollectionID,
		Query:        data.Query,
		TopK:         ragTopK,
	})
	if err != nil {
		logger.Error("rag query failed", "err", err)
		failNotice(a.Store, err, "The query could not be answered")
		return renderCollectionsPage(c, nil, nil)
	}

	answer := &ragAnswerVM{
		AnswerHTML: a.Markdown.Render(resp.Answer),
		Sources:    resp.Sources,
	}
	return renderCollectionsPage(c, nil, answer)
}
