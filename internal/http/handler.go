package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pavetrack/billing-service/internal/http/middleware"
	"github.com/pavetrack/billing-service/internal/model"
	"github.com/pavetrack/billing-service/internal/repository"
	"github.com/pavetrack/billing-service/internal/service"
	"github.com/pavetrack/billing-service/internal/taxid"
)

type Handler struct {
	catalog     *service.CatalogService
	commitments *service.CommitmentService
	billing     *service.BillingService
	fuel        *service.FuelService
	progress    *service.ProgressService
	log         zerolog.Logger
}

func NewHandler(
	catalog *service.CatalogService,
	commitments *service.CommitmentService,
	billing *service.BillingService,
	fuel *service.FuelService,
	progress *service.ProgressService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		catalog:     catalog,
		commitments: commitments,
		billing:     billing,
		fuel:        fuel,
		progress:    progress,
		log:         log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/validate/tax-id", h.validateTaxID)

	protected.GET("/catalog/services", h.listServices)
	protected.GET("/catalog/services/:id", h.getService)
	protected.POST("/catalog/services", h.createService)
	protected.PATCH("/catalog/services/:id", h.updateService)
	protected.DELETE("/catalog/services/:id", h.deactivateService)

	protected.GET("/projects/:id/commitments", h.listCommitments)
	protected.POST("/projects/:id/commitments", h.attachCommitment)
	protected.PATCH("/commitments/:id", h.editCommitment)
	protected.DELETE("/commitments/:id", h.removeCommitment)
	protected.POST("/projects/:id/recalculate", h.recalculateProject)
	protected.GET("/projects/:id/progress", h.projectProgress)

	protected.GET("/projects/:id/billing", h.projectBilling)
	protected.GET("/projects/:id/billing/export", h.exportBilling)
	protected.GET("/projects/:id/billing/export/pdf", h.exportBillingPDF)

	protected.POST("/fuel-purchases", h.recordFuelPurchase)
	protected.GET("/fuel-purchases/unlinked", h.listUnlinkedFuelPurchases)
	protected.PATCH("/fuel-purchases/:id", h.updateFuelPurchase)
	protected.POST("/fuel-purchases/:id/relink", h.relinkFuelPurchase)
}

type validateTaxIDRequest struct {
	Digits string `json:"digits" binding:"required"`
}

func (h *Handler) validateTaxID(c *gin.Context) {
	var req validateTaxIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": taxid.Valid(strings.TrimSpace(req.Digits))})
}

func (h *Handler) listServices(c *gin.Context) {
	defs, err := h.catalog.ListActive(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": defs})
}

func (h *Handler) getService(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	def, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, def)
}

type createServiceRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required"`
	DefaultUnit string   `json:"default_unit" binding:"required"`
	BasePrice   *float64 `json:"base_price"`
}

func (h *Handler) createService(c *gin.Context) {
	if !h.requireCatalogManager(c) {
		return
	}

	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	def, err := h.catalog.Create(c.Request.Context(), service.CreateDefinitionInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    model.ServiceCategory(strings.ToUpper(req.Category)),
		DefaultUnit: model.UnitKind(strings.ToUpper(req.DefaultUnit)),
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, def)
}

type updateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	DefaultUnit *string  `json:"default_unit"`
	BasePrice   *float64 `json:"base_price"`
}

func (h *Handler) updateService(c *gin.Context) {
	if !h.requireCatalogManager(c) {
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := repository.ServiceDefinitionPatch{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
	}
	if req.Category != nil {
		category := model.ServiceCategory(strings.ToUpper(*req.Category))
		patch.Category = &category
	}
	if req.DefaultUnit != nil {
		unit := model.UnitKind(strings.ToUpper(*req.DefaultUnit))
		patch.DefaultUnit = &unit
	}

	if err := h.catalog.Update(c.Request.Context(), id, patch); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deactivateService(c *gin.Context) {
	if !h.requireCatalogManager(c) {
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.catalog.Deactivate(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listCommitments(c *gin.Context) {
	projectID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}
	commitments, err := h.commitments.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commitments": commitments})
}

type attachCommitmentRequest struct {
	ServiceID    string   `json:"service_id" binding:"required"`
	UnitKind     *string  `json:"unit_kind"`
	UnitPrice    *float64 `json:"unit_price"`
	Quantity     float64  `json:"quantity"`
	Observations *string  `json:"observations"`
}

func (h *Handler) attachCommitment(c *gin.Context) {
	projectID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req attachCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceID, err := uuid.Parse(strings.TrimSpace(req.ServiceID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_id"})
		return
	}

	input := service.AttachInput{
		ProjectID:    projectID,
		ServiceID:    serviceID,
		UnitPrice:    req.UnitPrice,
		Quantity:     req.Quantity,
		Observations: req.Observations,
	}
	if req.UnitKind != nil {
		kind := model.UnitKind(strings.ToUpper(*req.UnitKind))
		input.UnitKind = &kind
	}

	commitment, err := h.commitments.Attach(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commitment)
}

type editCommitmentRequest struct {
	Quantity     *float64 `json:"quantity"`
	UnitPrice    *float64 `json:"unit_price"`
	Observations *string  `json:"observations"`
}

func (h *Handler) editCommitment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req editCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	commitment, err := h.commitments.Edit(c.Request.Context(), id, service.EditInput{
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Observations: req.Observations,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, commitment)
}

func (h *Handler) removeCommitment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.commitments.Remove(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) recalculateProject(c *gin.Context) {
	projectID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	updated, err := h.commitments.SyncProject(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *Handler) projectProgress(c *gin.Context) {
	projectID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	progress, err := h.progress.ProjectProgress(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *Handler) projectBilling(c *gin.Context) {
	projectID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	summary, err := h.billing.ProjectSummary(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) exportBilling(c *gin.Context) {
	projectID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	result, err := h.billing.ExportSummary(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) exportBillingPDF(c *gin.Context) {
	projectID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	result, err := h.billing.ExportSummaryPDF(c.Request.Context(), projectID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

type recordFuelPurchaseRequest struct {
	EquipmentID   string   `json:"equipment_id" binding:"required"`
	ProjectID     *string  `json:"project_id"`
	Liters        float64  `json:"liters" binding:"required"`
	PricePerLiter float64  `json:"price_per_liter" binding:"required"`
	PurchaseDate  string   `json:"purchase_date"`
	GasStation    string   `json:"gas_station" binding:"required"`
	Odometer      *float64 `json:"odometer"`
	Observations  *string  `json:"observations"`
}

func (h *Handler) recordFuelPurchase(c *gin.Context) {
	var req recordFuelPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	equipmentID, err := uuid.Parse(strings.TrimSpace(req.EquipmentID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid equipment_id"})
		return
	}

	input := service.RecordFuelPurchaseInput{
		EquipmentID:   equipmentID,
		Liters:        req.Liters,
		PricePerLiter: req.PricePerLiter,
		GasStation:    req.GasStation,
		Odometer:      req.Odometer,
		Observations:  req.Observations,
	}

	if req.ProjectID != nil && strings.TrimSpace(*req.ProjectID) != "" {
		projectID, err := uuid.Parse(strings.TrimSpace(*req.ProjectID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}
		input.ProjectID = &projectID
	}

	if req.PurchaseDate != "" {
		date, err := parseDate(req.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase_date"})
			return
		}
		input.PurchaseDate = date
	}

	purchase, err := h.fuel.RecordFuelPurchase(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrExpenseLinkFailed) {
			// purchase stands, the ledger side did not sync
			c.JSON(http.StatusCreated, gin.H{
				"fuel_purchase": purchase,
				"warning":       "expense was not created; run relink to repair",
			})
			return
		}
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"fuel_purchase": purchase})
}

type updateFuelPurchaseRequest struct {
	Liters        *float64 `json:"liters"`
	PricePerLiter *float64 `json:"price_per_liter"`
}

func (h *Handler) updateFuelPurchase(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateFuelPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.fuel.UpdateFuelPurchase(c.Request.Context(), id, service.UpdateFuelPurchaseInput{
		Liters:        req.Liters,
		PricePerLiter: req.PricePerLiter,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fuel_purchase": purchase})
}

func (h *Handler) listUnlinkedFuelPurchases(c *gin.Context) {
	purchases, err := h.fuel.ListUnlinked(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fuel_purchases": purchases})
}

func (h *Handler) relinkFuelPurchase(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	purchase, err := h.fuel.RelinkExpense(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExpenseLinkFailed) {
			c.JSON(http.StatusBadGateway, gin.H{
				"fuel_purchase": purchase,
				"error":         "expense creation failed again",
			})
			return
		}
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fuel_purchase": purchase})
}

func (h *Handler) requireCatalogManager(c *gin.Context) bool {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return false
	}
	if !principal.CanManageCatalog() {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return false
	}
	return true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Param("id")))
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
