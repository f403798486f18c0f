// Package uuid generates the time-ordered identifiers used for stored objects.
package uuid

import (
	"path"
	"strings"

	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Keys created later sort after earlier ones,
// which keeps blob listings in upload order.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// ObjectKey returns "<prefix>/<uuidv7><ext>". The extension is lower-cased
// and anything that is not a plain ".ext" suffix is dropped.
func ObjectKey(prefix, ext string) string {
	ext = strings.ToLower(ext)
	if !validExt(ext) {
		ext = ""
	}
	return path.Join(prefix, New()+ext)
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 8 || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
