package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"rentalog/internal/blob"
	apperrors "rentalog/internal/errors"
	"rentalog/internal/logger"
	"rentalog/internal/models"
	"rentalog/internal/uuid"
)

const violationPhotoPrefix = "violations"

// violationService handles violation reports and their photos.
type violationService struct {
	db    *gorm.DB
	store blob.Store
}

// NewViolationService creates a new ViolationServicer backed by store for photos.
func NewViolationService(db *gorm.DB, store blob.Store) ViolationServicer {
	return &violationService{db: db, store: store}
}

// ListViolations returns violations newest first, optionally for one rental.
// Agents only see violations on their own rentals.
func (s *violationService) ListViolations(ctx context.Context, actor *models.Actor, rentalID *uint) ([]models.Violation, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	db := s.db.WithContext(ctx)
	q := db.Model(&models.Violation{})
	if !actor.IsAdmin() {
		q = q.Where("rental_id IN (?)", db.Model(&models.Rental{}).Select("id").Where("email_agent = ?", actor.Email))
	}
	if rentalID != nil {
		q = q.Where("rental_id = ?", *rentalID)
	}

	violations := []models.Violation{}
	if err := q.Order("created_at DESC, id DESC").Find(&violations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return violations, nil
}

// CreateViolation files a violation against a visible rental, uploading the
// photo first when one is attached.
func (s *violationService) CreateViolation(ctx context.Context, actor *models.Actor, input ViolationInput) (*models.Violation, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if err := s.checkRental(ctx, actor, input.RentalID); err != nil {
		return nil, err
	}

	violation := &models.Violation{
		RentalID:    input.RentalID,
		Description: description,
		UploadedBy:  actor.Email,
	}

	var uploaded string
	if input.Photo != nil {
		info, err := s.upload(ctx, input.Photo)
		if err != nil {
			return nil, err
		}
		uploaded = info.Key
		violation.PhotoKey = info.Key
		violation.PhotoURL = &info.URL
	}

	if err := s.db.WithContext(ctx).Create(violation).Error; err != nil {
		s.discard(ctx, uploaded)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return violation, nil
}

// UpdateViolation edits the description and photo. A new photo or
// RemovePhoto deletes the previous blob once the row is saved.
func (s *violationService) UpdateViolation(ctx context.Context, actor *models.Actor, id uint, input ViolationInput) (*models.Violation, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}

	violation, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.RentalID != 0 && input.RentalID != violation.RentalID {
		if err := s.checkRental(ctx, actor, input.RentalID); err != nil {
			return nil, err
		}
		violation.RentalID = input.RentalID
	}
	violation.Description = description

	previous := violation.PhotoKey
	var uploaded string
	switch {
	case input.Photo != nil:
		info, err := s.upload(ctx, input.Photo)
		if err != nil {
			return nil, err
		}
		uploaded = info.Key
		violation.PhotoKey = info.Key
		violation.PhotoURL = &info.URL
	case input.RemovePhoto:
		violation.PhotoKey = ""
		violation.PhotoURL = nil
	}

	err = s.db.WithContext(ctx).Model(violation).Select("rental_id", "description", "photo_url", "photo_key").Updates(violation).Error
	if err != nil {
		s.discard(ctx, uploaded)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if previous != "" && previous != violation.PhotoKey {
		s.discard(ctx, previous)
	}
	return violation, nil
}

// DeleteViolation removes the report and then its photo.
func (s *violationService) DeleteViolation(ctx context.Context, id uint) error {
	violation, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Violation{}, violation.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.discard(ctx, violation.PhotoKey)
	return nil
}

func (s *violationService) find(ctx context.Context, id uint) (*models.Violation, error) {
	var violation models.Violation
	if err := s.db.WithContext(ctx).First(&violation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrViolationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &violation, nil
}

// checkRental verifies rentalID exists and is visible to actor.
func (s *violationService) checkRental(ctx context.Context, actor *models.Actor, rentalID uint) error {
	if rentalID == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "rental_id is required")
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Rental{}).
		Scopes(visibleTo(actor)).
		Where("id = ?", rentalID).
		Count(&count).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrRentalNotFound
	}
	return nil
}

func (s *violationService) upload(ctx context.Context, photo *Upload) (blob.Info, error) {
	if !strings.HasPrefix(photo.ContentType, "image/") {
		return blob.Info{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "photo must be an image")
	}
	r, err := photo.Open()
	if err != nil {
		return blob.Info{}, apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	defer r.Close()

	key := uuid.ObjectKey(violationPhotoPrefix, filepath.Ext(photo.Filename))
	info, err := s.store.Put(ctx, key, r, blob.PutOptions{ContentType: photo.ContentType})
	if err != nil {
		return blob.Info{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return info, nil
}

// discard deletes a blob on a best-effort basis.
func (s *violationService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Get().Warnw("failed to delete violation photo", "key", key, "error", err)
	}
}
