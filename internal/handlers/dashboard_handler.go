package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/services"
)

// DashboardHandler handles the reporting endpoints.
type DashboardHandler struct {
	reportService services.ReportServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportService services.ReportServicer) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// SeriesQuery holds the query parameters of the rental series.
type SeriesQuery struct {
	Range string `form:"range" binding:"omitempty,oneof=7d 1m all"`
}

// TopUnitsQuery holds the query parameters of the top units report.
type TopUnitsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// Summary handles the headline figures
// @Summary     Dashboard summary
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.Summary(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Series handles the rentals-over-time chart
// @Summary     Rental series
// @Description 7d: seven zero-filled days ending today. 1m: days with rentals in the last 30 days. all: per month.
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       range query string false "7d, 1m or all (default 7d)"
// @Success     200 {array} services.SeriesPoint "Series"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Router      /dashboard/series [get]
func (h *DashboardHandler) Series(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q SeriesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	rng := services.SeriesRange(q.Range)
	if rng == "" {
		rng = services.Range7Days
	}

	points, err := h.reportService.RentalSeries(c.Request.Context(), actor, rng)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"range": rng, "data": points})
}

// TopUnits handles the most rented units
// @Summary     Top units
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Number of units (default 5)"
// @Success     200 {array} services.UnitCount "Units"
// @Router      /dashboard/top-units [get]
func (h *DashboardHandler) TopUnits(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q TopUnitsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	units, err := h.reportService.TopUnits(c.Request.Context(), actor, q.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": units})
}

// Agents handles the per-agent performance report
// @Summary     Agent performance
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.AgentPerformance "Agents"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /dashboard/agents [get]
func (h *DashboardHandler) Agents(c *gin.Context) {
	rows, err := h.reportService.AgentPerformance(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// DuplicateNIKs handles the duplicate national ID report
// @Summary     Duplicate NIKs
// @Tags        rentals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.DuplicateNIK "NIKs on more than one rental"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /rentals/duplicate-nik [get]
func (h *DashboardHandler) DuplicateNIKs(c *gin.Context) {
	dups, err := h.reportService.DuplicateNIKs(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dups})
}
