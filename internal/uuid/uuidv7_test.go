package uuid

import (
	"strings"
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNew(t *testing.T) {
	id := New()
	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
	if !IsValid(id) {
		t.Error("IsValid should accept generated ids")
	}
	if IsValid("not-a-uuid") {
		t.Error("IsValid should reject garbage")
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{"keeps extension", ".JPG", ".jpg"},
		{"no extension", "", ""},
		{"drops path tricks", "./../x", ""},
		{"drops long extension", ".averyverylongext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ObjectKey("violations", tt.ext)
			if !strings.HasPrefix(key, "violations/") {
				t.Fatalf("expected violations/ prefix, got %q", key)
			}
			name := strings.TrimPrefix(key, "violations/")
			id := strings.TrimSuffix(name, tt.want)
			if tt.want != "" && !strings.HasSuffix(name, tt.want) {
				t.Errorf("expected suffix %q, got %q", tt.want, name)
			}
			if !IsValid(id) {
				t.Errorf("expected uuid in key, got %q", key)
			}
		})
	}

	t.Run("unique", func(t *testing.T) {
		if ObjectKey("violations", ".png") == ObjectKey("violations", ".png") {
			t.Error("expected distinct keys")
		}
	})
}
