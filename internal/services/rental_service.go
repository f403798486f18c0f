package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/logger"
	"rentalog/internal/models"
	"rentalog/internal/pagination"
)

var nikRegex = regexp.MustCompile(`^[0-9]{16}$`)

const logOrder = "time_stamp DESC, id DESC"

// rentalService handles rental records and their log history.
type rentalService struct {
	db       *gorm.DB
	recorder LogRecorder
}

// NewRentalService creates a new RentalServicer. recorder may be nil.
func NewRentalService(db *gorm.DB, recorder LogRecorder) RentalServicer {
	return &rentalService{db: db, recorder: recorder}
}

// rentalSnapshot is the normalised payload stored in the creation log entry.
type rentalSnapshot struct {
	Name               string            `json:"nama"`
	NIK                string            `json:"nik"`
	MaritalStatus      string            `json:"status_pasutri"`
	Tower              string            `json:"tower"`
	Floor              string            `json:"lantai"`
	Unit               string            `json:"unit"`
	CitizenshipStatus  string            `json:"status_kewarganegaraan"`
	RentalType         models.RentalType `json:"jenis_sewa"`
	LeaseMonths        int               `json:"lama_sewa_bulan,omitempty"`
	PaymentMethod      string            `json:"metode_pembayaran"`
	PaymentMethodOther string            `json:"metode_lain"`
	CheckinDate        string            `json:"tanggal_checkin"`
	CheckinTime        string            `json:"waktu_checkin"`
	CheckoutDate       string            `json:"tanggal_checkout"`
	DurationDays       int               `json:"lama_menginap"`
	Comments           models.Comments   `json:"komentar"`
	AgentEmail         string            `json:"email_agent"`
}

// CreateRental validates and stores a new rental together with its creation
// log entry. Duration and, for monthly rentals, the checkout date are always
// computed here.
func (s *rentalService) CreateRental(ctx context.Context, actor *models.Actor, input CreateRentalInput) (*models.Rental, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	rental, err := buildRental(input, actor.Email)
	if err != nil {
		return nil, err
	}

	snapshot := rentalSnapshot{
		Name:               rental.Name,
		NIK:                rental.NIKString(),
		MaritalStatus:      rental.MaritalStatus,
		Tower:              rental.Tower,
		Floor:              rental.Floor,
		Unit:               rental.Unit,
		CitizenshipStatus:  rental.CitizenshipStatus,
		RentalType:         rental.RentalType,
		PaymentMethod:      rental.PaymentMethod,
		PaymentMethodOther: rental.PaymentMethodOther,
		CheckinDate:        rental.CheckinDate.String(),
		CheckinTime:        rental.CheckinTime.String(),
		CheckoutDate:       rental.CheckoutDate.String(),
		DurationDays:       rental.DurationDays,
		Comments:           rental.Comments,
		AgentEmail:         rental.AgentEmail,
	}
	if rental.RentalType == models.RentalTypeMonthly {
		snapshot.LeaseMonths = input.LeaseMonths
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rental).Error; err != nil {
			return err
		}
		entry := models.RentalLog{
			RentalID:     rental.ID,
			Action:       models.LogActionCreate,
			FieldChanged: models.FieldAll,
			OldValue:     "",
			NewValue:     string(payload),
			Email:        actor.Email,
			Timestamp:    time.Now().UTC(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		rental.Logs = []models.RentalLog{entry}
		return nil
	})
	if err != nil {
		logger.Get().Errorw("failed to create rental", "email_agent", actor.Email, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if s.recorder != nil {
		s.recorder.RecordLogEntries(models.LogActionCreate, 1)
	}
	return rental, nil
}

// requiredRentalFields lists the mandatory fields in reporting order.
func requiredRentalFields(in CreateRentalInput) [][2]string {
	return [][2]string{
		{"nama", in.Name},
		{"tower", in.Tower},
		{"lantai", in.Floor},
		{"unit", in.Unit},
		{"status_kewarganegaraan", in.CitizenshipStatus},
		{"metode_pembayaran", in.PaymentMethod},
		{"tanggal_checkin", in.CheckinDate},
		{"waktu_checkin", in.CheckinTime},
	}
}

// buildRental validates input and returns the normalised row.
func buildRental(input CreateRentalInput, agentEmail string) (*models.Rental, error) {
	in := trimRentalInput(input)

	for _, field := range requiredRentalFields(in) {
		if field[1] == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, field[0]+" is required")
		}
	}

	rentalType := models.RentalType(in.RentalType)
	if rentalType == "" {
		rentalType = models.RentalTypeDaily
	}
	if !rentalType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "jenis_sewa must be one of Harian, Mingguan, Bulanan")
	}

	var nik *string
	if in.NIK != "" {
		if !nikRegex.MatchString(in.NIK) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nik must be 16 digits")
		}
		nik = &in.NIK
	}

	checkin, err := models.ParseDate(in.CheckinDate)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tanggal_checkin must be YYYY-MM-DD")
	}
	checkinTime, err := models.ParseClockTime(in.CheckinTime)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "waktu_checkin must be HH:MM")
	}

	var checkout models.Date
	if rentalType == models.RentalTypeMonthly {
		if in.LeaseMonths <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "lama_sewa_bulan is required for monthly rentals")
		}
		checkout = checkin.AddDate(0, in.LeaseMonths, -1)
	} else {
		if in.CheckoutDate == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tanggal_checkout is required for daily and weekly rentals")
		}
		checkout, err = models.ParseDate(in.CheckoutDate)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tanggal_checkout must be YYYY-MM-DD")
		}
		if checkout.Before(checkin) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tanggal_checkout must not be before tanggal_checkin")
		}
	}

	if err := validatePayment(in.PaymentMethod, in.PaymentMethodOther); err != nil {
		return nil, err
	}

	return &models.Rental{
		Name:               in.Name,
		NIK:                nik,
		MaritalStatus:      in.MaritalStatus,
		Tower:              in.Tower,
		Floor:              in.Floor,
		Unit:               in.Unit,
		CitizenshipStatus:  in.CitizenshipStatus,
		RentalType:         rentalType,
		PaymentMethod:      in.PaymentMethod,
		PaymentMethodOther: in.PaymentMethodOther,
		CheckinDate:        checkin,
		CheckinTime:        checkinTime,
		CheckoutDate:       checkout,
		DurationDays:       checkin.DaysUntil(checkout),
		Comments:           normalizeComments(in.Comments),
		AgentEmail:         agentEmail,
	}, nil
}

func trimRentalInput(in CreateRentalInput) CreateRentalInput {
	for _, f := range []*string{
		&in.Name, &in.NIK, &in.MaritalStatus, &in.Tower, &in.Floor, &in.Unit,
		&in.CitizenshipStatus, &in.RentalType, &in.PaymentMethod, &in.PaymentMethodOther,
		&in.CheckinDate, &in.CheckinTime, &in.CheckoutDate,
	} {
		*f = strings.TrimSpace(*f)
	}
	return in
}

// ListRentals returns the rentals visible to actor, newest check-in first,
// each with its log history.
func (s *rentalService) ListRentals(ctx context.Context, actor *models.Actor) ([]models.Rental, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	var rentals []models.Rental
	err := s.db.WithContext(ctx).
		Scopes(visibleTo(actor)).
		Preload("Logs", orderLogs).
		Order("tanggal_checkin DESC, id DESC").
		Find(&rentals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if rentals == nil {
		rentals = []models.Rental{}
	}
	for i := range rentals {
		ensureLogs(&rentals[i])
	}
	return rentals, nil
}

// GetRental returns one rental with its log history.
func (s *rentalService) GetRental(ctx context.Context, actor *models.Actor, id uint) (*models.Rental, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	var rental models.Rental
	err := s.db.WithContext(ctx).
		Scopes(visibleTo(actor)).
		Preload("Logs", orderLogs).
		First(&rental, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRentalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	ensureLogs(&rental)
	return &rental, nil
}

// ListRentalLogs returns the log history of one visible rental.
func (s *rentalService) ListRentalLogs(ctx context.Context, actor *models.Actor, rentalID uint) ([]models.RentalLog, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Rental{}).Scopes(visibleTo(actor)).Where("id = ?", rentalID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return nil, apperrors.ErrRentalNotFound
	}

	logs := []models.RentalLog{}
	if err := db.Where("rental_id = ?", rentalID).Order(logOrder).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return logs, nil
}

// ListAllLogs returns one page of every log entry visible to actor.
func (s *rentalService) ListAllLogs(ctx context.Context, actor *models.Actor, page pagination.PageRequest) (*pagination.PageResponse[models.RentalLog], error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	page.Defaults()

	var totalItems int64
	if err := s.visibleLogs(ctx, actor).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.RentalLog
	if err := s.visibleLogs(ctx, actor).Scopes(pagination.Paginate(page)).Order(logOrder).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page, totalItems)
	return &result, nil
}

// ExportLogs returns every log entry visible to actor.
func (s *rentalService) ExportLogs(ctx context.Context, actor *models.Actor) ([]models.RentalLog, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	logs := []models.RentalLog{}
	if err := s.visibleLogs(ctx, actor).Order(logOrder).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return logs, nil
}

func (s *rentalService) visibleLogs(ctx context.Context, actor *models.Actor) *gorm.DB {
	db := s.db.WithContext(ctx)
	q := db.Model(&models.RentalLog{})
	if !actor.IsAdmin() {
		q = q.Where("rental_id IN (?)", db.Model(&models.Rental{}).Select("id").Where("email_agent = ?", actor.Email))
	}
	return q
}

func orderLogs(db *gorm.DB) *gorm.DB {
	return db.Order(logOrder)
}

func ensureLogs(r *models.Rental) {
	if r.Logs == nil {
		r.Logs = []models.RentalLog{}
	}
}
