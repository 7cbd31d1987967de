package handler

import (
	apptenancy "github.com/bizsuite/backend/internal/application/tenancy"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantHandler handles tenant directory and settings HTTP requests
type TenantHandler struct {
	BaseHandler
	directoryService *apptenancy.DirectoryService
	gate             *apptenancy.AccessGate
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(directoryService *apptenancy.DirectoryService, gate *apptenancy.AccessGate) *TenantHandler {
	return &TenantHandler{
		directoryService: directoryService,
		gate:             gate,
	}
}

// List godoc
// @Summary      List accessible tenants
// @Description  List the tenants the principal may use, in grant order
// @Tags         tenants
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tenancy.TenantDTO}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	tenants, err := h.directoryService.ListAccessibleTenants(c.Request.Context(), principalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenants)
}

// GetByID godoc
// @Summary      Get a tenant by ID
// @Description  Retrieve a tenant. The protection secret is never included; only the protected flag is.
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Success      200 {object} dto.Response{data=tenancy.TenantDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/{id} [get]
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.directoryService.GetTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// UpdateSettings godoc
// @Summary      Update tenant settings
// @Description  Update a tenant's configuration. Absent fields keep their current value; protection_secret enables or disables the switch challenge.
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID" format(uuid)
// @Param        request body UpdateTenantSettingsRequest true "Settings update request"
// @Success      200 {object} dto.Response{data=tenancy.TenantDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/{id}/settings [put]
func (h *TenantHandler) UpdateSettings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req UpdateTenantSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	input := apptenancy.UpdateSettingsInput{
		ID:               id,
		Name:             req.Name,
		Country:          req.Country,
		Currency:         req.Currency,
		Timezone:         req.Timezone,
		FiscalYearStart:  req.FiscalYearStart,
		FiscalYearEnd:    req.FiscalYearEnd,
		TaxRegistration:  req.TaxRegistration,
		DefaultTaxRate:   req.DefaultTaxRate,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
		ContactEmail:     req.ContactEmail,
		Address:          req.Address,
		ProtectionSecret: req.ProtectionSecret,
	}

	tenant, err := h.directoryService.UpdateSettings(c.Request.Context(), h.gate, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}
