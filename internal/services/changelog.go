package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/logger"
	"rentalog/internal/models"
)

// trackedField is one column of the update allow-list. text returns the
// canonical string form used for diffing and for log values; value returns
// what is written to the column.
type trackedField struct {
	column string
	text   func(*models.Rental) string
	value  func(*models.Rental) any
}

var trackedFields = []trackedField{
	{
		column: "jenis_sewa",
		text:   func(r *models.Rental) string { return string(r.RentalType) },
		value:  func(r *models.Rental) any { return r.RentalType },
	},
	{
		column: "metode_pembayaran",
		text:   func(r *models.Rental) string { return r.PaymentMethod },
		value:  func(r *models.Rental) any { return r.PaymentMethod },
	},
	{
		column: "metode_lain",
		text:   func(r *models.Rental) string { return r.PaymentMethodOther },
		value:  func(r *models.Rental) any { return r.PaymentMethodOther },
	},
	{
		column: "waktu_checkout",
		text:   func(r *models.Rental) string { return r.CheckoutTime.String() },
		value:  func(r *models.Rental) any { return r.CheckoutTime },
	},
	{
		column: "komentar",
		text:   func(r *models.Rental) string { return r.Comments.Canonical() },
		value:  func(r *models.Rental) any { return r.Comments },
	},
}

// changeLogService applies field updates to rentals and records one log
// entry per changed field.
type changeLogService struct {
	db       *gorm.DB
	recorder LogRecorder
}

// NewChangeLogService creates a new ChangeLogServicer. recorder may be nil.
func NewChangeLogService(db *gorm.DB, recorder LogRecorder) ChangeLogServicer {
	return &changeLogService{db: db, recorder: recorder}
}

// ApplyRentalUpdate diffs the proposed values against the locked current row
// and commits the changed fields together with their log entries.
func (s *changeLogService) ApplyRentalUpdate(ctx context.Context, actor *models.Actor, rentalID uint, update RentalUpdate) (*UpdateResult, error) {
	return s.apply(ctx, actor, rentalID, func(*models.Rental) (RentalUpdate, error) {
		return update, nil
	})
}

// SetCheckoutTime sets or, with an empty clock, clears waktu_checkout.
func (s *changeLogService) SetCheckoutTime(ctx context.Context, actor *models.Actor, rentalID uint, clock string) (*UpdateResult, error) {
	return s.ApplyRentalUpdate(ctx, actor, rentalID, RentalUpdate{CheckoutTime: &clock})
}

// ReplaceComments overwrites the comment list.
func (s *changeLogService) ReplaceComments(ctx context.Context, actor *models.Actor, rentalID uint, comments []string) (*UpdateResult, error) {
	if comments == nil {
		comments = []string{}
	}
	return s.ApplyRentalUpdate(ctx, actor, rentalID, RentalUpdate{Comments: &comments})
}

// AppendComment adds one comment to the list read inside the transaction.
func (s *changeLogService) AppendComment(ctx context.Context, actor *models.Actor, rentalID uint, comment string) (*UpdateResult, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "komentar must not be empty")
	}
	return s.apply(ctx, actor, rentalID, func(current *models.Rental) (RentalUpdate, error) {
		list := append(slices.Clone([]string(current.Comments)), comment)
		return RentalUpdate{Comments: &list}, nil
	})
}

// apply runs the read-diff-write-log sequence in one transaction. propose
// builds the update from the row as read under the lock.
func (s *changeLogService) apply(
	ctx context.Context,
	actor *models.Actor,
	rentalID uint,
	propose func(current *models.Rental) (RentalUpdate, error),
) (*UpdateResult, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	var staged []models.RentalLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Rental
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(visibleTo(actor)).
			First(&current, rentalID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRentalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		update, err := propose(&current)
		if err != nil {
			return err
		}
		next := current
		if err := update.applyTo(&next); err != nil {
			return err
		}
		if err := validatePayment(next.PaymentMethod, next.PaymentMethodOther); err != nil {
			return err
		}

		now := time.Now().UTC()
		changes := make(map[string]any, len(trackedFields)+1)
		for _, f := range trackedFields {
			before, after := f.text(&current), f.text(&next)
			if before == after {
				continue
			}
			changes[f.column] = f.value(&next)
			staged = append(staged, models.RentalLog{
				RentalID:     current.ID,
				Action:       models.LogActionUpdate,
				FieldChanged: f.column,
				OldValue:     before,
				NewValue:     after,
				Email:        actor.Email,
				Timestamp:    now,
			})
		}
		if len(staged) == 0 {
			return nil
		}
		changes["diedit_oleh"] = actor.Email

		if err := tx.Model(&models.Rental{}).Where("id = ?", current.ID).Updates(changes).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Create(&staged).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(err, rentalID)
	}

	if s.recorder != nil {
		s.recorder.RecordLogEntries(models.LogActionUpdate, len(staged))
	}
	return &UpdateResult{UpdatedFieldCount: len(staged)}, nil
}

// fail normalises a transaction error after rollback. Storage errors are
// logged and surfaced as INTERNAL_ERROR.
func (s *changeLogService) fail(err error, rentalID uint) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if appErr.Code == apperrors.ErrInternalServer.Code {
		logger.Get().Errorw("rental update rolled back", "rental_id", rentalID, "error", appErr.Internal)
	}
	return appErr
}

// applyTo validates the proposal and writes the normalised values onto r.
func (u RentalUpdate) applyTo(r *models.Rental) error {
	if u.RentalType != nil {
		t := models.RentalType(strings.TrimSpace(*u.RentalType))
		if !t.Valid() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "jenis_sewa must be one of Harian, Mingguan, Bulanan")
		}
		r.RentalType = t
	}
	if u.PaymentMethod != nil {
		method := strings.TrimSpace(*u.PaymentMethod)
		if method == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "metode_pembayaran must not be empty")
		}
		r.PaymentMethod = method
	}
	if u.PaymentMethodOther != nil {
		r.PaymentMethodOther = strings.TrimSpace(*u.PaymentMethodOther)
	}
	if u.CheckoutTime != nil {
		raw := strings.TrimSpace(*u.CheckoutTime)
		if raw == "" {
			r.CheckoutTime = models.NullClockTime{}
		} else {
			clock, err := models.ParseClockTime(raw)
			if err != nil {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "waktu_checkout must be HH:MM")
			}
			r.CheckoutTime = models.SomeClock(clock)
		}
	}
	if u.Comments != nil {
		r.Comments = normalizeComments(*u.Comments)
	}
	return nil
}

// validatePayment enforces that metode_lain is filled exactly when the
// payment method is not one of the standard ones.
func validatePayment(method, other string) error {
	if models.IsStandardPaymentMethod(method) {
		if other != "" {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				"metode_lain must be empty when metode_pembayaran is "+method)
		}
		return nil
	}
	if other == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "metode_lain is required for this payment method")
	}
	return nil
}

// normalizeComments trims every comment and drops blank ones.
func normalizeComments(list []string) models.Comments {
	out := make(models.Comments, 0, len(list))
	for _, c := range list {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// visibleTo limits a rentals query to the rows the actor may see.
func visibleTo(actor *models.Actor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsAdmin() {
			return db
		}
		return db.Where("email_agent = ?", actor.Email)
	}
}
