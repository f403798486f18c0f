package handlers

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/models"
	"rentalog/internal/services"
)

const photoField = "photo"

// ViolationHandler handles violation reports.
type ViolationHandler struct {
	violationService services.ViolationServicer
	maxUploadBytes   int64
}

// NewViolationHandler creates a new ViolationHandler. Photos larger than
// maxUploadBytes are rejected.
func NewViolationHandler(violationService services.ViolationServicer, maxUploadBytes int64) *ViolationHandler {
	return &ViolationHandler{violationService: violationService, maxUploadBytes: maxUploadBytes}
}

// ViolationListQuery holds the query parameters of the violation list.
type ViolationListQuery struct {
	RentalID uint `form:"rental_id"`
}

// ViolationForm holds the multipart fields of a violation.
type ViolationForm struct {
	RentalID    uint   `form:"rental_id"`
	Description string `form:"description" binding:"required,max=1000"`
	RemovePhoto bool   `form:"remove_photo"`
}

// ListViolations handles the retrieval of violations
// @Summary     List violations
// @Description Agents see violations on their own rentals only
// @Tags        violations
// @Produce     json
// @Security    BearerAuth
// @Param       rental_id query int false "Only violations of this rental"
// @Success     200 {array} models.Violation "Violations, newest first"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /violations [get]
func (h *ViolationHandler) ListViolations(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ViolationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	var rentalID *uint
	if q.RentalID != 0 {
		rentalID = &q.RentalID
	}

	violations, err := h.violationService.ListViolations(c.Request.Context(), actor, rentalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": violations})
}

// Catalog returns the standard violation descriptions
// @Summary     Violation catalog
// @Tags        violations
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} string "Descriptions"
// @Router      /violations/catalog [get]
func (h *ViolationHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.ViolationCatalog})
}

// CreateViolation handles filing a violation
// @Summary     Report a violation
// @Tags        violations
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       rental_id   formData int    true  "Rental ID"
// @Param       description formData string true  "Description"
// @Param       photo       formData file   false "Photo"
// @Success     201 {object} models.Violation "Violation created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "Rental not found"
// @Router      /violations [post]
func (h *ViolationHandler) CreateViolation(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	input, err := h.bindForm(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	violation, err := h.violationService.CreateViolation(c.Request.Context(), actor, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, violation)
}

// UpdateViolation handles editing a violation
// @Summary     Update a violation
// @Description A new photo replaces the old one; remove_photo=true deletes it
// @Tags        violations
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id           path     int    true  "Violation ID"
// @Param       description  formData string true  "Description"
// @Param       rental_id    formData int    false "Move to another rental"
// @Param       remove_photo formData bool   false "Delete the current photo"
// @Param       photo        formData file   false "Replacement photo"
// @Success     200 {object} models.Violation "Violation updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Violation not found"
// @Router      /violations/{id} [put]
func (h *ViolationHandler) UpdateViolation(c *gin.Context) {
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

	input, err := h.bindForm(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	violation, err := h.violationService.UpdateViolation(c.Request.Context(), actor, id, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, violation)
}

// DeleteViolation handles removing a violation and its photo
// @Summary     Delete a violation
// @Tags        violations
// @Security    BearerAuth
// @Param       id path int true "Violation ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Violation not found"
// @Router      /violations/{id} [delete]
func (h *ViolationHandler) DeleteViolation(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.violationService.DeleteViolation(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ViolationHandler) bindForm(c *gin.Context) (services.ViolationInput, error) {
	if h.maxUploadBytes > 0 {
		// Leave room for the non-file fields and multipart framing.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	}

	var form ViolationForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return services.ViolationInput{}, h.tooLarge()
		}
		return services.ViolationInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	input := services.ViolationInput{
		RentalID:    form.RentalID,
		Description: form.Description,
		RemovePhoto: form.RemovePhoto,
	}

	fh, err := c.FormFile(photoField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return input, nil
	case err != nil:
		return services.ViolationInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "photo could not be read")
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return services.ViolationInput{}, h.tooLarge()
	}
	input.Photo = uploadFrom(fh)
	return input, nil
}

func (h *ViolationHandler) tooLarge() error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput,
		"photo must not exceed "+strconv.FormatInt(h.maxUploadBytes, 10)+" bytes")
}

func uploadFrom(fh *multipart.FileHeader) *services.Upload {
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(fh.Filename)); byExt != "" {
			contentType = byExt
		}
	}
	return &services.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
