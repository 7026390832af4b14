package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, identifierHandler *IdentifierHandler, batchHandler *BatchHandler) {
	if identifierHandler != nil {
		server.POST("/api/v1/identifiers", identifierHandler.GenerateIdentifier)
	}
	if batchHandler != nil {
		server.POST("/api/v1/identifiers/batch", batchHandler.GenerateBatch)
	}
}
