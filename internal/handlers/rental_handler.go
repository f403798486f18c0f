package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rentalog/internal/csvexport"
	apperrors "rentalog/internal/errors"
	"rentalog/internal/models"
	"rentalog/internal/services"
)

const rentalsCSVFilename = "data_penyewa.csv"

// rentalColumns is the column layout of the rentals export.
var rentalColumns = []csvexport.Column[models.Rental]{
	{Header: "Nama Penyewa", Value: func(r models.Rental) string { return r.Name }},
	{Header: "Jenis Sewa", Value: func(r models.Rental) string { return string(r.RentalType) }},
	{Header: "Status Kewarganegaraan", Value: func(r models.Rental) string { return r.CitizenshipStatus }},
	{Header: "Tower", Value: func(r models.Rental) string { return r.Tower }},
	{Header: "Lantai", Value: func(r models.Rental) string { return r.Floor }},
	{Header: "Unit", Value: func(r models.Rental) string { return r.Unit }},
	{Header: "Metode Pembayaran", Value: func(r models.Rental) string { return r.PaymentMethod }},
	{Header: "Tanggal Check-In", Value: func(r models.Rental) string { return r.CheckinDate.String() }},
	{Header: "Waktu Check-In", Value: func(r models.Rental) string { return r.CheckinTime.String() }},
	{Header: "Tanggal Check-Out", Value: func(r models.Rental) string { return r.CheckoutDate.String() }},
	{Header: "Waktu Check-Out", Value: func(r models.Rental) string { return r.CheckoutTime.String() }},
	{Header: "Lama Menginap (hari)", Value: func(r models.Rental) string { return strconv.Itoa(r.DurationDays) }},
	{Header: "Komentar", Value: func(r models.Rental) string { return strings.Join(r.Comments, ", ") }},
	{Header: "Agen", Value: func(r models.Rental) string { return r.AgentEmail }},
	{Header: "Diedit Oleh", Value: func(r models.Rental) string { return r.LastEditor }},
}

// RentalHandler handles rental records and their change history.
type RentalHandler struct {
	rentalService    services.RentalServicer
	changeLogService services.ChangeLogServicer
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rentalService services.RentalServicer, changeLogService services.ChangeLogServicer) *RentalHandler {
	return &RentalHandler{rentalService: rentalService, changeLogService: changeLogService}
}

// CheckoutTimeRequest represents the request payload for setting the checkout time.
type CheckoutTimeRequest struct {
	CheckoutTime string `json:"waktu_checkout" binding:"omitempty,hhmm"`
}

// ReplaceCommentsRequest represents the request payload for replacing comments.
type ReplaceCommentsRequest struct {
	Comments []string `json:"komentar"`
}

// AppendCommentRequest represents the request payload for adding one comment.
type AppendCommentRequest struct {
	Comment string `json:"komentar" binding:"required"`
}

// CreateRental handles rental registration
// @Summary     Register a rental
// @Description Register a tenant stay. Duration and, for Bulanan, the checkout date are computed by the server.
// @Tags        rentals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body services.CreateRentalInput true "Rental data"
// @Success     201 {object} models.Rental "Rental created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rentals [post]
func (h *RentalHandler) CreateRental(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req services.CreateRentalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rental, err := h.rentalService.CreateRental(c.Request.Context(), actor, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rental)
}

// ListRentals handles the retrieval of visible rentals
// @Summary     List rentals
// @Description List the rentals visible to the caller with their logs, newest check-in first
// @Tags        rentals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Rental "Rentals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rentals [get]
func (h *RentalHandler) ListRentals(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rentals, err := h.rentalService.ListRentals(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rentals})
}

// GetRental handles the retrieval of one rental
// @Summary     Get rental by ID
// @Tags        rentals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Rental ID"
// @Success     200 {object} models.Rental "Rental"
// @Failure     400 {object} ErrorResponse "Invalid rental ID"
// @Failure     404 {object} ErrorResponse "Rental not found"
// @Router      /rentals/{id} [get]
func (h *RentalHandler) GetRental(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rental, err := h.rentalService.GetRental(c.Request.Context(), actor, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rental)
}

// UpdateRental handles edits to the mutable rental fields
// @Summary     Update rental
// @Description Update jenis_sewa, metode_pembayaran, metode_lain, waktu_checkout or komentar. One log entry is written per changed field.
// @Tags        rentals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Rental ID"
// @Param       request body services.RentalUpdate true "Proposed values"
// @Success     200 {object} services.UpdateResult "Number of changed fields"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Rental not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /rentals/{id} [patch]
func (h *RentalHandler) UpdateRental(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}

	var req services.RentalUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.changeLogService.ApplyRentalUpdate(c.Request.Context(), actor, id, req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SetCheckoutTime handles the checkout time shortcut
// @Summary     Set checkout time
// @Description Set waktu_checkout (HH:MM) or clear it with an empty value
// @Tags        rentals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                 true "Rental ID"
// @Param       request body CheckoutTimeRequest true "Checkout time"
// @Success     200 {object} services.UpdateResult "Number of changed fields"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Rental not found"
// @Router      /rentals/{id}/checkout-time [put]
func (h *RentalHandler) SetCheckoutTime(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}

	var req CheckoutTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.changeLogService.SetCheckoutTime(c.Request.Context(), actor, id, req.CheckoutTime)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReplaceComments handles overwriting the comment list
// @Summary     Replace comments
// @Tags        rentals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                    true "Rental ID"
// @Param       request body ReplaceCommentsRequest true "Comments"
// @Success     200 {object} services.UpdateResult "Number of changed fields"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Rental not found"
// @Router      /rentals/{id}/comments [put]
func (h *RentalHandler) ReplaceComments(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}

	var req ReplaceCommentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.changeLogService.ReplaceComments(c.Request.Context(), actor, id, req.Comments)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AppendComment handles adding one comment
// @Summary     Add comment
// @Tags        rentals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Rental ID"
// @Param       request body AppendCommentRequest true "Comment"
// @Success     200 {object} services.UpdateResult "Number of changed fields"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Rental not found"
// @Router      /rentals/{id}/comments [post]
func (h *RentalHandler) AppendComment(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}

	var req AppendCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.changeLogService.AppendComment(c.Request.Context(), actor, id, req.Comment)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListRentalLogs handles the retrieval of one rental's history
// @Summary     Rental history
// @Tags        rentals
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Rental ID"
// @Success     200 {array} models.RentalLog "Log entries, newest first"
// @Failure     404 {object} ErrorResponse "Rental not found"
// @Router      /rentals/{id}/logs [get]
func (h *RentalHandler) ListRentalLogs(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}

	logs, err := h.rentalService.ListRentalLogs(c.Request.Context(), actor, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logs})
}

// ExportCSV handles the rentals CSV download
// @Summary     Export rentals
// @Description Download the visible rentals as CSV
// @Tags        rentals
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {file} file "data_penyewa.csv"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /rentals/export.csv [get]
func (h *RentalHandler) ExportCSV(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rentals, err := h.rentalService.ListRentals(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithCSV(c, rentalsCSVFilename, func(buf *bytes.Buffer) error {
		return csvexport.Write(buf, rentalColumns, rentals)
	})
}

// target resolves the actor and the :id parameter, writing the error
// response itself when either is missing.
func (h *RentalHandler) target(c *gin.Context) (*models.Actor, uint, bool) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return nil, 0, false
	}
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return nil, 0, false
	}
	return actor, id, true
}
