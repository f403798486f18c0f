package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/services"
)

// UnitHandler handles the unit registry and occupancy.
type UnitHandler struct {
	unitService services.UnitServicer
}

// NewUnitHandler creates a new UnitHandler.
func NewUnitHandler(unitService services.UnitServicer) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// ListUnits handles the retrieval of units with their occupancy
// @Summary     List units
// @Description Agents see their own units, administrators see all
// @Tags        units
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.UnitStatus "Units"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /units [get]
func (h *UnitHandler) ListUnits(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	units, err := h.unitService.ListUnits(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": units})
}

// OccupiedUnits handles the occupancy lookup
// @Summary     Occupied units
// @Description Keys (tower-lantai-unit) of units with a stay checking out today or later
// @Tags        units
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} string "Unit keys"
// @Router      /units/occupied [get]
func (h *UnitHandler) OccupiedUnits(c *gin.Context) {
	keys, err := h.unitService.OccupiedUnits(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": keys})
}

// CreateUnit handles unit registration
// @Summary     Register a unit
// @Tags        units
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.CreateUnitInput true "Unit data"
// @Success     201 {object} models.Unit "Unit created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Agent not found"
// @Failure     409 {object} ErrorResponse "Unit already exists"
// @Router      /units [post]
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req services.CreateUnitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, unit)
}

// DeleteUnit handles unit removal
// @Summary     Delete a unit
// @Tags        units
// @Security    BearerAuth
// @Param       id path int true "Unit ID"
// @Success     204 "Deleted"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Unit not found"
// @Router      /units/{id} [delete]
func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.unitService.DeleteUnit(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAgents handles the agent directory
// @Summary     List agents
// @Tags        units
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Agent "Agents with their units"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /agents [get]
func (h *UnitHandler) ListAgents(c *gin.Context) {
	agents, err := h.unitService.ListAgents(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": agents})
}
