package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDocumentHandler returns one resume of the served corpus.
func (api *API) GetDocumentHandler(c *gin.Context) {
	if api.documents == nil {
		SendNotSupportedError(c, "Document lookup")
		return
	}

	documentID := c.Param("documentId")
	if result := ValidateDocumentID(documentID); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	doc, ok := api.documents.GetDocument(documentID)
	if !ok {
		SendDocumentNotFoundError(c, documentID)
		return
	}
	c.JSON(http.StatusOK, doc)
}
