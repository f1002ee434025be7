package handler

import (
	identityapp "github.com/benefits/backend/internal/application/identity"
	"github.com/benefits/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UnitHandler handles district office HTTP requests
type UnitHandler struct {
	BaseHandler
	unitService *identityapp.UnitService
}

// NewUnitHandler creates a new unit handler
func NewUnitHandler(unitService *identityapp.UnitService) *UnitHandler {
	return &UnitHandler{
		unitService: unitService,
	}
}

// Create godoc
// @Summary      Create a district office
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body CreateUnitRequest true "Unit creation request"
// @Success      201 {object} APIResponse[UnitResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), identityapp.CreateUnitInput{
		Name:     req.Name,
		Code:     req.Code,
		District: req.District,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toUnitResponse(unit))
}

// GetByID godoc
// @Summary      Get a district office
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      200 {object} APIResponse[UnitResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/units/{id} [get]
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	unit, err := h.unitService.GetUnit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponse(unit))
}

// GetByCode godoc
// @Summary      Get a district office by code
// @Tags         units
// @Produce      json
// @Param        code path string true "Unit code"
// @Success      200 {object} APIResponse[UnitResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/units/code/{code} [get]
func (h *UnitHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Unit code is required")
		return
	}

	unit, err := h.unitService.GetUnitByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponse(unit))
}

// List godoc
// @Summary      List district offices
// @Tags         units
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status" Enums(active, inactive)
// @Success      200 {object} APIResponse[[]UnitResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/units [get]
func (h *UnitHandler) List(c *gin.Context) {
	var query UnitListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := shared.Filter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Search:   query.Search,
		Filters:  map[string]interface{}{},
	}
	if query.Status != "" {
		filter.Filters["status"] = query.Status
	}

	result, err := h.unitService.ListUnits(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toUnitResponses(result.Items), result.Total, result.Page, result.PageSize)
}

// Rename godoc
// @Summary      Rename a district office
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Param        request body RenameUnitRequest true "New name"
// @Success      200 {object} APIResponse[UnitResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/units/{id}/rename [post]
func (h *UnitHandler) Rename(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	var req RenameUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	unit, err := h.unitService.RenameUnit(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponse(unit))
}

// Activate godoc
// @Summary      Activate a district office
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/units/{id}/activate [post]
func (h *UnitHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	if err := h.unitService.ActivateUnit(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Unit activated"})
}

// Deactivate godoc
// @Summary      Deactivate a district office
// @Description  Deactivated units stop accepting new caseworkers and requests
// @Tags         units
// @Produce      json
// @Param        id path string true "Unit ID" format(uuid)
// @Success      200 {object} SuccessResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /identity/units/{id}/deactivate [post]
func (h *UnitHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID")
		return
	}

	if err := h.unitService.DeactivateUnit(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Unit deactivated"})
}
