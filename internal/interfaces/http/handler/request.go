package handler

import (
	benefitsapp "github.com/benefits/backend/internal/application/benefits"
	domain "github.com/benefits/backend/internal/domain/benefits"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestHandler handles benefit request HTTP requests
type RequestHandler struct {
	BaseHandler
	requestService *benefitsapp.RequestService
}

// NewRequestHandler creates a new benefit request handler
func NewRequestHandler(requestService *benefitsapp.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
	}
}

// Create godoc
// @Summary      File a benefit request
// @Description  Create a draft benefit request owned by the caller
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        request body CreateRequestRequest true "Benefit request"
// @Success      201 {object} APIResponse[RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.requestService.CreateRequest(c.Request.Context(), benefitsapp.CreateRequestInput{
		Type:            domain.BenefitType(req.Type),
		Summary:         req.Summary,
		RequestedAmount: toDecimal(req.RequestedAmount),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toRequestResponse(request))
}

// GetByID godoc
// @Summary      Get a benefit request
// @Tags         requests
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} APIResponse[RequestResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/{id} [get]
func (h *RequestHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.requestService.GetRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(request))
}

// List godoc
// @Summary      List benefit requests
// @Description  List requests visible to the caller, optionally filtered by status and type
// @Tags         requests
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status" Enums(draft, submitted, in_review, approved, rejected, paid)
// @Param        type query string false "Filter by benefit type" Enums(housing, heating, childcare, transport)
// @Success      200 {object} APIResponse[[]RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	var query RequestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.requestService.ListRequests(c.Request.Context(), benefitsapp.ListRequestsInput{
		Status: domain.RequestStatus(query.Status),
		Type:   domain.BenefitType(query.Type),
		Filter: shared.Filter{
			Page:     query.Page,
			PageSize: query.PageSize,
			OrderBy:  query.OrderBy,
			OrderDir: query.OrderDir,
			Search:   query.Search,
		},
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toRequestResponses(result.Items), result.Total, result.Page, result.PageSize)
}

// Submit godoc
// @Summary      Submit a benefit request
// @Description  Move a draft request into the review queue
// @Tags         requests
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} APIResponse[RequestResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/{id}/submit [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.requestService.SubmitRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(request))
}

// StartReview godoc
// @Summary      Start reviewing a benefit request
// @Tags         requests
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      200 {object} APIResponse[RequestResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/{id}/review [post]
func (h *RequestHandler) StartReview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.requestService.StartReview(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(request))
}

// Approve godoc
// @Summary      Approve a benefit request
// @Description  Approve a request under review, fixing the granted amount
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Param        request body ApproveRequestRequest true "Approval decision"
// @Success      200 {object} APIResponse[RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req ApproveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.requestService.ApproveRequest(c.Request.Context(), benefitsapp.DecideRequestInput{
		RequestID: id,
		Amount:    toDecimal(req.Amount),
		Note:      req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(request))
}

// Reject godoc
// @Summary      Reject a benefit request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Param        request body RejectRequestRequest true "Rejection decision"
// @Success      200 {object} APIResponse[RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req RejectRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.requestService.RejectRequest(c.Request.Context(), benefitsapp.DecideRequestInput{
		RequestID: id,
		Note:      req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponse(request))
}

// Delete godoc
// @Summary      Delete a benefit request
// @Description  Delete a draft request. Submitted requests cannot be deleted.
// @Tags         requests
// @Produce      json
// @Param        id path string true "Request ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/{id} [delete]
func (h *RequestHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	if err := h.requestService.DeleteRequest(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// StatusBreakdown godoc
// @Summary      Request totals per status
// @Description  Aggregate count and requested amount per status within the caller's scope
// @Tags         requests
// @Produce      json
// @Success      200 {object} APIResponse[[]StatusBreakdownResponse]
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/stats/status-breakdown [get]
func (h *RequestHandler) StatusBreakdown(c *gin.Context) {
	rows, err := h.requestService.StatusBreakdown(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStatusBreakdownResponses(rows))
}

// Export godoc
// @Summary      Export benefit requests program-wide
// @Description  Return requests across all units regardless of the caller's scope. The stated reason is written to the audit log.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        request body ExportRequestsRequest true "Export reason"
// @Success      200 {object} APIResponse[[]RequestResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/requests/export [post]
func (h *RequestHandler) Export(c *gin.Context) {
	var req ExportRequestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	requests, err := h.requestService.ExportRequests(c.Request.Context(), benefitsapp.ExportRequestsInput{
		Reason: req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRequestResponses(requests))
}
