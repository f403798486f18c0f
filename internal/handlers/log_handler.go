package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rentalog/internal/csvexport"
	apperrors "rentalog/internal/errors"
	"rentalog/internal/models"
	"rentalog/internal/pagination"
	"rentalog/internal/services"
)

const logsCSVFilename = "rental_logs.csv"

var logColumns = []csvexport.Column[models.RentalLog]{
	{Header: "Rental ID", Value: func(l models.RentalLog) string { return strconv.FormatUint(uint64(l.RentalID), 10) }},
	{Header: "Aksi", Value: func(l models.RentalLog) string { return string(l.Action) }},
	{Header: "Field", Value: func(l models.RentalLog) string { return l.FieldChanged }},
	{Header: "Nilai Lama", Value: func(l models.RentalLog) string { return l.OldValue }},
	{Header: "Nilai Baru", Value: func(l models.RentalLog) string { return l.NewValue }},
	{Header: "Email", Value: func(l models.RentalLog) string { return l.Email }},
	{Header: "Waktu", Value: func(l models.RentalLog) string { return l.Timestamp.UTC().Format(time.RFC3339) }},
}

// LogHandler handles the cross-rental change history.
type LogHandler struct {
	rentalService services.RentalServicer
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(rentalService services.RentalServicer) *LogHandler {
	return &LogHandler{rentalService: rentalService}
}

// ListLogs handles the paginated history of every visible rental
// @Summary     List all logs
// @Tags        logs
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.RentalLog] "Paginated log entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /logs [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.rentalService.ListAllLogs(c.Request.Context(), actor, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportCSV handles the log CSV download
// @Summary     Export logs
// @Tags        logs
// @Produce     text/csv
// @Security    BearerAuth
// @Success     200 {file} file "rental_logs.csv"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /logs/export.csv [get]
func (h *LogHandler) ExportCSV(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logs, err := h.rentalService.ExportLogs(c.Request.Context(), actor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithCSV(c, logsCSVFilename, func(buf *bytes.Buffer) error {
		return csvexport.Write(buf, logColumns, logs)
	})
}
