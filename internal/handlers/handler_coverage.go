package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldserve/booking_backend/internal/apperrors"
	portssvc "github.com/fieldserve/booking_backend/internal/core/ports/services"
	"github.com/fieldserve/booking_backend/internal/dto"
	"github.com/fieldserve/booking_backend/internal/middleware"
)

// coverageHandler handles HTTP requests related to coverage lookups.
type coverageHandler struct {
	coverageService portssvc.CoverageSvcFacade
}

// newCoverageHandler creates a new coverageHandler.
func newCoverageHandler(cs portssvc.CoverageSvcFacade) *coverageHandler {
	return &coverageHandler{
		coverageService: cs,
	}
}

// registerCoverageRoutes registers routes related to coverage lookups.
func registerCoverageRoutes(rg *gin.RouterGroup, coverageService portssvc.CoverageSvcFacade) {
	h := newCoverageHandler(coverageService)

	coverage := rg.Group("/coverage")
	{
		coverage.GET("/:locationCode", h.getCoverageSummary)
		coverage.GET("/:locationCode/candidates", h.listCandidates)
	}
}

// getCoverageSummary godoc
// @Summary Get coverage for a location code
// @Description Validates the location code and reports whether any agent actively covers it
// @Tags coverage
// @Produce  json
// @Param   locationCode path string true "Five-digit area code"
// @Success 200 {object} dto.CoverageSummaryResponse
// @Failure 500 {object} map[string]string "Lookup failed"
// @Router /coverage/{locationCode} [get]
func (h *coverageHandler) getCoverageSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	locationCode := c.Param("locationCode")

	info, err := h.coverageService.Validate(c.Request.Context(), locationCode)
	if err != nil {
		logger.Error("Coverage lookup failed", slog.String("location_code", locationCode), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Coverage lookup failed"})
		return
	}

	resp := dto.CoverageSummaryResponse{
		IsValid:         info.IsValid,
		NormalizedCode:  info.NormalizedCode,
		Region:          info.Region,
		HasBoundaryData: info.HasBoundaryData,
	}
	if info.IsValid {
		covered, err := h.coverageService.HasActiveCoverage(c.Request.Context(), info.NormalizedCode)
		if err != nil {
			logger.Error("Coverage lookup failed", slog.String("location_code", locationCode), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Coverage lookup failed"})
			return
		}
		resp.HasActiveCoverage = covered
	}

	c.JSON(http.StatusOK, resp)
}

// listCandidates godoc
// @Summary List coverage candidates for a location code
// @Description Returns agents with active coverage on the code, ordered by priority
// @Tags coverage
// @Produce  json
// @Param   locationCode path string true "Five-digit area code"
// @Success 200 {object} dto.ListCandidatesResponse
// @Failure 400 {object} map[string]string "Malformed location code"
// @Failure 500 {object} map[string]string "Lookup failed"
// @Router /coverage/{locationCode}/candidates [get]
func (h *coverageHandler) listCandidates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	locationCode := c.Param("locationCode")

	candidates, err := h.coverageService.FindCandidates(c.Request.Context(), locationCode, time.Now().UTC(), 0)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Location code must be exactly five digits"})
			return
		}
		logger.Error("Candidate lookup failed", slog.String("location_code", locationCode), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Candidate lookup failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCandidatesResponse{
		LocationCode: locationCode,
		Candidates:   dto.ToCandidateResponses(candidates),
	})
}
