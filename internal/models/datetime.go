package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DateLayout is the wire and CSV format of calendar dates.
const DateLayout = "2006-01-02"

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// Date is a calendar date without time of day, persisted as SQL DATE.
// Dates are normalised to midnight UTC so comparisons are pure date
// comparisons.
type Date struct {
	datatypes.Date
}

// NewDate truncates t to its calendar date in t's own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))}
}

// Today returns the server's current local date.
func Today() Date {
	return NewDate(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Time(d.Date)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Time().IsZero()
}

// AddDate mirrors time.Time.AddDate, including its month overflow
// normalisation.
func (d Date) AddDate(years, months, days int) Date {
	return NewDate(d.Time().AddDate(years, months, days))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// DaysUntil returns ceil(other - d) in days.
func (d Date) DaysUntil(other Date) int {
	return int(math.Ceil(other.Time().Sub(d.Time()).Hours() / 24))
}

// String formats the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD" or an empty string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is a time of day at minute precision, persisted as SQL TIME.
type ClockTime struct {
	datatypes.Time
}

// NewClockTime builds a ClockTime from hours and minutes.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{datatypes.NewTime(hour, minute, 0, 0)}
}

// ParseClockTime parses an H:MM or HH:MM string (24h clock).
func ParseClockTime(s string) (ClockTime, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ClockTime{}, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return NewClockTime(hour, minute), nil
}

// ValidClock reports whether s is a valid HH:MM time of day.
func ValidClock(s string) bool {
	return clockPattern.MatchString(strings.TrimSpace(s))
}

// String formats the time as HH:MM.
func (t ClockTime) String() string {
	d := time.Duration(t.Time)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// MarshalJSON renders the time as "HH:MM".
func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts "HH:MM".
func (t *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NullClockTime is an optional ClockTime. The zero value is NULL.
type NullClockTime struct {
	Clock ClockTime
	Valid bool
}

// SomeClock wraps t as a present value.
func SomeClock(t ClockTime) NullClockTime {
	return NullClockTime{Clock: t, Valid: true}
}

// Scan implements sql.Scanner.
func (n *NullClockTime) Scan(src any) error {
	if src == nil {
		*n = NullClockTime{}
		return nil
	}
	if err := n.Clock.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value implements driver.Valuer.
func (n NullClockTime) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Clock.Value()
}

// GormDataType stores the value in a TIME column.
func (NullClockTime) GormDataType() string {
	return "time"
}

// GormDBDataType uses the same column type as ClockTime, TIME on Postgres
// and TEXT on SQLite, so "HH:MM:SS" values scan back unchanged.
func (NullClockTime) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return datatypes.Time(0).GormDBDataType(db, field)
}

// String formats the time as HH:MM, or "" when NULL.
func (n NullClockTime) String() string {
	if !n.Valid {
		return ""
	}
	return n.Clock.String()
}

// MarshalJSON renders NULL as null.
func (n NullClockTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Clock.MarshalJSON()
}

// UnmarshalJSON accepts null, "" or "HH:MM".
func (n *NullClockTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullClockTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*n = NullClockTime{}
		return nil
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*n = SomeClock(parsed)
	return nil
}
