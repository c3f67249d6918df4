package server

import (
	"github.com/labstack/echo/v4"

	"github.com/cognigraph/console/internal/server/middleware"
	"github.com/cognigraph/console/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Liveness probe for the console itself
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.GET("/login", routes.GetLoginPageHandler)
	e.POST("/login", routes.PostLoginHandler)
	e.POST("/logout", routes.PostLogoutHandler)

	pages := e.Group("", middleware.RequireAuth)

	pages.GET("/", routes.GetRootHandler)

	// File routes
	pages.GET("/files", routes.GetFilesPageHandler)
	pages.POST("/files/upload", routes.UploadFileHandler)
	pages.GET("/files/:id/download", routes.DownloadFileHandler)
	pages.POST("/files/:id/delete", routes.DeleteFileHandler)

	// Knowledge graph routes
	pages.GET("/graphs", routes.GetGraphsPageHandler)
	pages.GET("/graphs/:id", routes.VisualizeKGHandler)
	pages.POST("/graphs/query", routes.QueryKGHandler)
	pages.POST("/graphs/build", routes.BuildKGHandler)
	pages.POST("/graphs/build/cancel", routes.CancelBuildHandler)
	pages.GET("/graphs/build/progress", routes.GetBuildProgressHandler)
	pages.POST("/graphs/:id/select", routes.SelectKGHandler)
	pages.POST("/graphs/:id/refresh", routes.RefreshKGHandler)
	pages.POST("/graphs/:id/delete", routes.DeleteKGHandler)
	pages.GET("/graphs/:id/export", routes.ExportKGHandler)

	// QA chat routes
	pages.GET("/chat", routes.GetChatPageHandler)
	pages.POST("/chat/ask", routes.AskQAHandler)
	pages.POST("/chat/clear", routes.ClearQAHandler)

	// Agent routes
	pages.GET("/agent", routes.GetAgentPageHandler)
	pages.POST("/agent/ask", routes.AskAgentHandler)
	pages.POST("/agent/clear", routes.ClearAgentHandler)

	// RAG collection routes
	pages.GET("/collections", routes.GetCollectionsPageHandler)
	pages.POST("/collections/create", routes.CreateCollectionHandler)
	pages.POST("/collections/query", routes.QueryCollectionsHandler)
	pages.GET("/collections/:id", routes.GetCollectionDetailHandler)
	pages.POST("/collections/:id/delete", routes.DeleteCollectionHandler)
	pages.POST("/collections/:id/documents", routes.AddDocumentHandler)
	pages.POST("/collections/:id/documents/:doc_id/delete", routes.DeleteDocumentHandler)

	// NL2SQL routes
	pages.GET("/database", routes.GetDatabasePageHandler)
	pages.POST("/database/connect", routes.ConnectDatabaseHandler)
	pages.POST("/database/:id/disconnect", routes.DisconnectDatabaseHandler)
	pages.POST("/database/ask", routes.AskDatabaseHandler)
	pages.POST("/database/execute", routes.ExecuteSQLHandler)

	// Convert routes
	pages.GET("/convert", routes.GetConvertPageHandler)
	pages.POST("/convert/run", routes.RunConvertHandler)

	// Health routes
	pages.GET("/health", routes.GetHealthPageHandler)
	pages.POST("/health/monitor/toggle", routes.ToggleMonitorHandler)
}
