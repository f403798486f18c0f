package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/models"
)

// unitLocation is a distinct tower/floor/unit triple read from rentals.
type unitLocation struct {
	Tower string `gorm:"column:tower"`
	Floor string `gorm:"column:lantai"`
	Unit  string `gorm:"column:unit"`
}

// unitService handles the unit registry and occupancy.
type unitService struct {
	db *gorm.DB
}

// NewUnitService creates a new UnitServicer.
func NewUnitService(db *gorm.DB) UnitServicer {
	return &unitService{db: db}
}

// OccupiedUnits returns the sorted keys of units with a rental whose checkout
// date is today or later. It is recomputed on every call.
func (s *unitService) OccupiedUnits(ctx context.Context) ([]string, error) {
	var locations []unitLocation
	err := s.db.WithContext(ctx).
		Model(&models.Rental{}).
		Distinct("tower", "lantai", "unit").
		Where("tanggal_checkout >= ?", models.Today()).
		Find(&locations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	keys := make([]string, 0, len(locations))
	for _, l := range locations {
		keys = append(keys, models.UnitKey(l.Tower, l.Floor, l.Unit))
	}
	sort.Strings(keys)
	return keys, nil
}

// ListUnits returns units with their occupancy. Agents only see the units of
// their own agent record.
func (s *unitService) ListUnits(ctx context.Context, actor *models.Actor) ([]UnitStatus, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	db := s.db.WithContext(ctx)
	q := db.Model(&models.Unit{})
	if !actor.IsAdmin() {
		q = q.Where("agent_id IN (?)", db.Model(&models.User{}).Select("agent_id").Where("id = ?", actor.UserID))
	}

	var units []models.Unit
	if err := q.Order("tower, floor, number").Find(&units).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	occupied, err := s.OccupiedUnits(ctx)
	if err != nil {
		return nil, err
	}
	occupiedSet := make(map[string]bool, len(occupied))
	for _, key := range occupied {
		occupiedSet[key] = true
	}

	result := make([]UnitStatus, 0, len(units))
	for _, u := range units {
		result = append(result, UnitStatus{Unit: u, Key: u.Key(), Occupied: occupiedSet[u.Key()]})
	}
	return result, nil
}

// CreateUnit registers a unit for an existing agent.
func (s *unitService) CreateUnit(ctx context.Context, input CreateUnitInput) (*models.Unit, error) {
	unit := &models.Unit{
		AgentID: input.AgentID,
		Tower:   strings.TrimSpace(input.Tower),
		Floor:   strings.TrimSpace(input.Floor),
		Number:  strings.TrimSpace(input.Number),
	}
	if unit.Tower == "" || unit.Floor == "" || unit.Number == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tower, floor and number are required")
	}

	db := s.db.WithContext(ctx)

	var agent models.Agent
	if err := db.First(&agent, input.AgentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAgentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	err := db.Model(&models.Unit{}).
		Where("tower = ? AND floor = ? AND number = ?", unit.Tower, unit.Floor, unit.Number).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUnit
	}

	if err := db.Create(unit).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUnit
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return unit, nil
}

// DeleteUnit removes a unit from the registry.
func (s *unitService) DeleteUnit(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Unit{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUnitNotFound
	}
	return nil
}

// ListAgents returns every agent with its units.
func (s *unitService) ListAgents(ctx context.Context) ([]models.Agent, error) {
	agents := []models.Agent{}
	err := s.db.WithContext(ctx).
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("tower, floor, number") }).
		Order("name").
		Find(&agents).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return agents, nil
}
