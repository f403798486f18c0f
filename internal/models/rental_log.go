package models

import "time"

// LogAction classifies a rental log entry.
type LogAction string

const (
	LogActionCreate LogAction = "create"
	LogActionUpdate LogAction = "update"

	// LogActionEdited marks edits recorded before "update" existed. Rows
	// carrying it are still listed and exported; nothing writes it anymore.
	LogActionEdited LogAction = "edited"
)

// FieldAll is the field_changed value of creation entries.
const FieldAll = "all"

// RentalLog is one append-only change record of a rental. Entries are
// written in the same transaction as the change they describe.
type RentalLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RentalID     uint      `gorm:"not null;index" json:"rental_id"`
	Action       LogAction `gorm:"type:varchar(20);not null" json:"action"`
	FieldChanged string    `gorm:"size:50;not null" json:"field_changed"`
	OldValue     string    `gorm:"type:text" json:"old_value"`
	NewValue     string    `gorm:"type:text" json:"new_value"`
	Email        string    `gorm:"size:255;not null" json:"email"`
	Timestamp    time.Time `gorm:"column:time_stamp;not null;index" json:"time_stamp"`
}
