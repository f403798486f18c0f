package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/models"
)

const (
	defaultTopUnits = 5
	monthLayout     = "2006-01"
)

// reportService computes read-only dashboard aggregations.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

func (s *reportService) rentals(ctx context.Context, actor *models.Actor) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Rental{}).Scopes(visibleTo(actor))
}

// Summary returns totals, the active rental count and counts per rental type.
func (s *reportService) Summary(ctx context.Context, actor *models.Actor) (*Summary, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	today := models.Today()
	summary := &Summary{ByRentalType: map[models.RentalType]int64{}}

	if err := s.rentals(ctx, actor).Count(&summary.TotalRentals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.rentals(ctx, actor).Where("tanggal_checkout >= ?", today).Count(&summary.ActiveRentals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var locations []unitLocation
	if err := s.rentals(ctx, actor).Distinct("tower", "lantai", "unit").Where("tanggal_checkout >= ?", today).Find(&locations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	summary.OccupiedUnits = len(locations)

	var byType []struct {
		RentalType models.RentalType `gorm:"column:jenis_sewa"`
		Total      int64             `gorm:"column:total"`
	}
	if err := s.rentals(ctx, actor).Select("jenis_sewa, COUNT(*) AS total").Group("jenis_sewa").Scan(&byType).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, t := range []models.RentalType{models.RentalTypeDaily, models.RentalTypeWeekly, models.RentalTypeMonthly} {
		summary.ByRentalType[t] = 0
	}
	for _, row := range byType {
		summary.ByRentalType[row.RentalType] = row.Total
	}
	return summary, nil
}

// RentalSeries buckets visible rentals by check-in date.
//
//	7d  seven daily buckets ending today, zero-filled
//	1m  daily buckets over the last 30 days, only days with rentals
//	all monthly (YYYY-MM) buckets over all time
func (s *reportService) RentalSeries(ctx context.Context, actor *models.Actor, rng SeriesRange) ([]SeriesPoint, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	today := models.Today()

	var from models.Date
	switch rng {
	case Range7Days:
		from = today.AddDate(0, 0, -6)
	case Range1Month:
		from = today.AddDate(0, 0, -29)
	case RangeAll:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "range must be one of 7d, 1m, all")
	}

	q := s.rentals(ctx, actor)
	if rng != RangeAll {
		q = q.Where("tanggal_checkin >= ? AND tanggal_checkin <= ?", from, today)
	}
	var dates []models.Date
	if err := q.Pluck("tanggal_checkin", &dates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	counts := make(map[string]int64)
	for _, d := range dates {
		key := d.String()
		if rng == RangeAll {
			key = d.Time().Format(monthLayout)
		}
		counts[key]++
	}

	if rng == Range7Days {
		points := make([]SeriesPoint, 0, 7)
		for d := from; !today.Before(d); d = d.AddDate(0, 0, 1) {
			points = append(points, SeriesPoint{Period: d.String(), Count: counts[d.String()]})
		}
		return points, nil
	}

	points := make([]SeriesPoint, 0, len(counts))
	for period, count := range counts {
		points = append(points, SeriesPoint{Period: period, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points, nil
}

// TopUnits returns the most rented units. Ties are broken by location.
func (s *reportService) TopUnits(ctx context.Context, actor *models.Actor, limit int) ([]UnitCount, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if limit <= 0 {
		limit = defaultTopUnits
	}

	units := []UnitCount{}
	err := s.rentals(ctx, actor).
		Select("tower, lantai, unit, COUNT(*) AS rental_count").
		Group("tower, lantai, unit").
		Order("rental_count DESC, tower, lantai, unit").
		Limit(limit).
		Scan(&units).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range units {
		units[i].Key = models.UnitKey(units[i].Tower, units[i].Floor, units[i].Unit)
	}
	return units, nil
}

// AgentPerformance returns rentals and nights per agent, busiest first.
func (s *reportService) AgentPerformance(ctx context.Context) ([]AgentPerformance, error) {
	rows := []AgentPerformance{}
	err := s.db.WithContext(ctx).
		Model(&models.Rental{}).
		Select("email_agent, COUNT(*) AS rental_count, COALESCE(SUM(lama_menginap), 0) AS nights").
		Group("email_agent").
		Order("rental_count DESC, email_agent").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// DuplicateNIKs returns national IDs recorded on more than one rental with
// the tenant names and rental IDs they appear on.
func (s *reportService) DuplicateNIKs(ctx context.Context) ([]DuplicateNIK, error) {
	db := s.db.WithContext(ctx)

	dups := []DuplicateNIK{}
	err := db.Model(&models.Rental{}).
		Select("nik, COUNT(*) AS rental_count").
		Where("nik IS NOT NULL AND nik <> ''").
		Group("nik").
		Having("COUNT(*) > 1").
		Order("nik").
		Scan(&dups).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(dups) == 0 {
		return dups, nil
	}

	niks := make([]string, len(dups))
	index := make(map[string]int, len(dups))
	for i, d := range dups {
		niks[i] = d.NIK
		index[d.NIK] = i
		dups[i].Names = []string{}
		dups[i].Rentals = []uint{}
	}

	var rentals []models.Rental
	if err := db.Select("id", "nik", "nama").Where("nik IN ?", niks).Order("id").Find(&rentals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, r := range rentals {
		i := index[r.NIKString()]
		dups[i].Names = append(dups[i].Names, r.Name)
		dups[i].Rentals = append(dups[i].Rentals, r.ID)
	}
	return dups, nil
}
