package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// Comments is the ordered list of remarks attached to a rental.
//
// The stored form is a compact JSON array of strings. Absent or malformed
// stored data decodes to an empty list instead of failing the read.
type Comments []string

// ParseComments decodes the stored form of a comment list.
func ParseComments(raw string) Comments {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Comments{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
		return Comments{}
	}
	return Comments(list)
}

// Canonical returns the stored form. An empty or nil list encodes as "[]".
func (c Comments) Canonical() string {
	if len(c) == 0 {
		return "[]"
	}
	b, err := json.Marshal([]string(c))
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Scan implements sql.Scanner and never fails.
func (c *Comments) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		*c = ParseComments(string(v))
	case string:
		*c = ParseComments(v)
	default:
		*c = Comments{}
	}
	return nil
}

// Value implements driver.Valuer.
func (c Comments) Value() (driver.Value, error) {
	return c.Canonical(), nil
}

// GormDataType stores comments in a text column.
func (Comments) GormDataType() string {
	return "text"
}

// MarshalJSON renders a nil list as [] rather than null.
func (c Comments) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(c))
}
