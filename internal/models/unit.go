package models

import "fmt"

// Unit is a rentable apartment unit owned by an agent.
type Unit struct {
	Base
	AgentID uint   `gorm:"not null;index" json:"agent_id"`
	Tower   string `gorm:"not null;size:10;uniqueIndex:idx_units_location" json:"tower"`
	Floor   string `gorm:"not null;size:10;uniqueIndex:idx_units_location" json:"floor"`
	Number  string `gorm:"not null;size:10;uniqueIndex:idx_units_location" json:"number"`
}

// Key returns the natural tower-floor-number key used for occupancy lookups.
func (u Unit) Key() string {
	return UnitKey(u.Tower, u.Floor, u.Number)
}

// UnitKey joins a unit location into its natural key.
func UnitKey(tower, floor, number string) string {
	return fmt.Sprintf("%s-%s-%s", tower, floor, number)
}
