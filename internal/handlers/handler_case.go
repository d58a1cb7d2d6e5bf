package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	"github.com/opsdesk/caseflow_app/internal/core/domain"
	portssvc "github.com/opsdesk/caseflow_app/internal/core/ports/services"
	"github.com/opsdesk/caseflow_app/internal/dto"
	"github.com/opsdesk/caseflow_app/internal/middleware"
)

// caseHandler handles HTTP requests related to cases.
type caseHandler struct {
	caseService portssvc.CaseSvcFacade
}

// newCaseHandler creates a new caseHandler.
func newCaseHandler(caseService portssvc.CaseSvcFacade) *caseHandler {
	return &caseHandler{
		caseService: caseService,
	}
}

// registerCaseRoutes sets up the routes for case management.
func registerCaseRoutes(rg *gin.RouterGroup, caseService portssvc.CaseSvcFacade) {
	h := newCaseHandler(caseService)

	cases := rg.Group("/cases")
	{
		cases.POST("", h.createCase)
		cases.GET("", h.listCases)
		cases.GET("/:caseID", h.getCase)
		cases.PUT("/:caseID", h.updateCase)
		cases.POST("/:caseID/documents", h.addDocument)
		cases.POST("/:caseID/actions", h.applyAction)
	}
}

// respondCaseError maps the service error taxonomy to HTTP responses.
// Order matters: the retryable errors are checked before the catch-all.
func respondCaseError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Action forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		// The wrapped message distinguishes a missing case from a missing
		// forward target; pass it through rather than flattening both.
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		logger.Warn("Invalid transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": false})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent update conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, apperrors.ErrUnavailable):
		logger.Error("Case store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable", "retryable": true})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// createCase godoc
// @Summary Create a new case
// @Description Opens a new client case in state created. Agent OPS only.
// @Tags cases
// @Accept json
// @Produce json
// @Param case body dto.CreateCaseRequest true "Case details"
// @Success 201 {object} dto.CaseResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Role not permitted"
// @Router /cases [post]
func (h *caseHandler) createCase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	kase, err := h.caseService.CreateCase(c.Request.Context(), identity, req)
	if err != nil {
		respondCaseError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCaseResponse(kase))
}

// listCases godoc
// @Summary List the caller's case queue
// @Description Returns the role-scoped case queue, token-paginated, newest first.
// @Tags cases
// @Produce json
// @Param includeCompleted query bool false "Trade Desk only: include completed cases"
// @Param limit query int false "Page size (default 20)"
// @Param nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListCasesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /cases [get]
func (h *caseHandler) listCases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListCasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.caseService.ListForRole(c.Request.Context(), identity, params)
	if err != nil {
		respondCaseError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCase godoc
// @Summary Get a case
// @Description Retrieves a case with documents and full audit trail, subject to role visibility.
// @Tags cases
// @Produce json
// @Param caseID path string true "Case ID"
// @Success 200 {object} dto.CaseResponse
// @Failure 404 {object} map[string]string "Case not found"
// @Router /cases/{caseID} [get]
func (h *caseHandler) getCase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caseID := c.Param("caseID")

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	kase, err := h.caseService.GetCase(c.Request.Context(), caseID, identity)
	if err != nil {
		respondCaseError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseResponse(kase))
}

// updateCase godoc
// @Summary Update case details
// @Description Edits descriptive fields. Creator only, before the case leaves its hands.
// @Tags cases
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param case body dto.UpdateCaseRequest true "Fields to update"
// @Success 200 {object} dto.CaseResponse
// @Failure 403 {object} map[string]string "Not the creating agent"
// @Failure 409 {object} map[string]string "Case no longer editable"
// @Router /cases/{caseID} [put]
func (h *caseHandler) updateCase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caseID := c.Param("caseID")

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	kase, err := h.caseService.UpdateCaseDetails(c.Request.Context(), caseID, identity, req)
	if err != nil {
		respondCaseError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseResponse(kase))
}

// addDocument godoc
// @Summary Attach document metadata to a case
// @Description Appends document metadata. Creator only, same window as detail edits.
// @Tags cases
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param document body dto.AddDocumentRequest true "Document metadata"
// @Success 201 {object} dto.CaseResponse
// @Failure 403 {object} map[string]string "Not the creating agent"
// @Router /cases/{caseID}/documents [post]
func (h *caseHandler) addDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caseID := c.Param("caseID")

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	kase, err := h.caseService.AddDocument(c.Request.Context(), caseID, identity, req)
	if err != nil {
		respondCaseError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCaseResponse(kase))
}

// applyAction godoc
// @Summary Apply a workflow action to a case
// @Description Runs one workflow transition (submit, send_back, forward_to_officer, resubmit, forward_to_trade_desk, complete, delete, add_note) under the role policy.
// @Tags cases
// @Accept json
// @Produce json
// @Param caseID path string true "Case ID"
// @Param action body dto.CaseActionRequest true "Requested action with payload"
// @Success 200 {object} dto.CaseResponse
// @Success 204 "Case deleted"
// @Failure 400 {object} map[string]string "Payload validation failed"
// @Failure 403 {object} map[string]string "Transition denied for role"
// @Failure 409 {object} map[string]string "State moved or concurrent update"
// @Failure 503 {object} map[string]string "Case store unavailable"
// @Router /cases/{caseID}/actions [post]
func (h *caseHandler) applyAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caseID := c.Param("caseID")

	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CaseActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyAction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	kase, err := h.caseService.ApplyAction(c.Request.Context(), caseID, identity, req)
	if err != nil {
		respondCaseError(c, logger, err)
		return
	}

	if req.Action == domain.ActionDelete {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseResponse(kase))
}
