package handler

import (
	benefitsapp "github.com/benefits/backend/internal/application/benefits"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles payment order HTTP requests
type PaymentHandler struct {
	BaseHandler
	paymentService *benefitsapp.PaymentService
}

// NewPaymentHandler creates a new payment order handler
func NewPaymentHandler(paymentService *benefitsapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Issue godoc
// @Summary      Issue a payment order
// @Description  Issue a payment order for an approved benefit request. The amount is taken from the approval decision.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body IssuePaymentRequest true "Payment order"
// @Success      201 {object} APIResponse[PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/payments [post]
func (h *PaymentHandler) Issue(c *gin.Context) {
	var req IssuePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	payment, err := h.paymentService.IssuePayment(c.Request.Context(), benefitsapp.IssuePaymentInput{
		RequestID: requestID,
		IBAN:      req.IBAN,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPaymentResponse(payment))
}

// GetByID godoc
// @Summary      Get a payment order
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPaymentResponse(payment))
}

// List godoc
// @Summary      List payment orders
// @Tags         payments
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status" Enums(pending, cleared, cancelled)
// @Param        request_id query string false "Filter by benefit request"
// @Success      200 {object} APIResponse[[]PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var query PaymentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Filters:  map[string]interface{}{},
	}
	if query.Status != "" {
		filter.Filters["status"] = query.Status
	}
	if query.RequestID != "" {
		filter.Filters["request_id"] = query.RequestID
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toPaymentResponses(result.Items), result.Total, result.Page, result.PageSize)
}

// Clear godoc
// @Summary      Clear a payment order
// @Description  Mark a pending payment as cleared and the underlying request as paid
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/payments/{id}/clear [post]
func (h *PaymentHandler) Clear(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.ClearPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPaymentResponse(payment))
}

// Cancel godoc
// @Summary      Cancel a payment order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Param        request body CancelPaymentRequest true "Cancellation note"
// @Success      200 {object} APIResponse[PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /benefits/payments/{id}/cancel [post]
func (h *PaymentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	var req CancelPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.paymentService.CancelPayment(c.Request.Context(), id, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPaymentResponse(payment))
}
