package handler

import (
	benefitsapp "github.com/benefits/backend/internal/application/benefits"
	domain "github.com/benefits/backend/internal/domain/benefits"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles review document HTTP requests
type DocumentHandler struct {
	BaseHandler
	documentService *benefitsapp.DocumentService
}

// NewDocumentHandler creates a new review document handler
func NewDocumentHandler(documentService *benefitsapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// Attach godoc
// @Summary      Attach a review document
// @Description  Attach supporting evidence to a benefit request. The file itself is uploaded separately; this records its metadata and storage key.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Param        request body AttachDocumentRequest true "Document metadata"
// @Success      201 {object} APIResponse[DocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/{id}/documents [post]
func (h *DocumentHandler) Attach(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	doc, err := h.documentService.AttachDocument(c.Request.Context(), benefitsapp.AttachDocumentInput{
		RequestID:   requestID,
		Kind:        domain.DocumentKind(req.Kind),
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toDocumentResponse(doc))
}

// GetByID godoc
// @Summary      Get a review document
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[DocumentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDocumentResponse(doc))
}

// ListByRequest godoc
// @Summary      List documents of a request
// @Tags         documents
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} APIResponse[[]DocumentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/{id}/documents [get]
func (h *DocumentHandler) ListByRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	docs, err := h.documentService.ListDocuments(c.Request.Context(), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDocumentResponses(docs))
}

// Verify godoc
// @Summary      Mark a review document as verified
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[DocumentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/documents/{id}/verify [post]
func (h *DocumentHandler) Verify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.documentService.VerifyDocument(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toDocumentResponse(doc))
}

// Remove godoc
// @Summary      Remove a review document
// @Tags         documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/documents/{id} [delete]
func (h *DocumentHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.documentService.RemoveDocument(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
